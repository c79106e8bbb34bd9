package common

// WipeByteArray overwrites b with zeros. Used to drop typed credentials
// from memory once a guarded delete has been dispatched. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
