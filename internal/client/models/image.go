package models

// Image is a binary attachment of a pack. Data travels base64-encoded in
// JSON and is opaque to the console apart from thumbnail rendering.
type Image struct {
	ID     int64  `json:"id"`
	PackID int64  `json:"pack_id"`
	Data   []byte `json:"data"`
}

func (i Image) Key() int64 { return i.ID }

// Blob is an upload payload supplied by the caller, usually read from a
// local file.
type Blob struct {
	Name string
	Data []byte
}
