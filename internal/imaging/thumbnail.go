// Package imaging renders pack images as small JPEG thumbnails for the
// console and checks upload candidates before they are sent.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"golang.org/x/image/draw"
)

// ThumbnailSize bounds the longer edge of a rendered thumbnail.
const ThumbnailSize = 64

const jpegQuality = 80

// AllowedMIME lists the accepted upload types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Thumb is an encoded thumbnail and its source dimensions.
type Thumb struct {
	Data             []byte
	Width, Height    int
	SourceW, SourceH int
}

// Sniff detects the MIME type from the bytes and rejects anything that is
// not an accepted image.
func Sniff(data []byte) (string, error) {
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return detected, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}
	return detected, nil
}

// Thumbnail decodes data and re-encodes it as a JPEG no larger than
// maxDim on either edge. Images already within bounds are re-encoded at
// their own size.
func Thumbnail(data []byte, maxDim int) (Thumb, error) {
	if maxDim <= 0 {
		maxDim = ThumbnailSize
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Thumb{}, fmt.Errorf("decoding image: %w", err)
	}
	src := img.Bounds()

	img = downscale(img, maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Thumb{}, fmt.Errorf("encoding JPEG: %w", err)
	}

	b := img.Bounds()
	return Thumb{
		Data:    buf.Bytes(),
		Width:   b.Dx(),
		Height:  b.Dy(),
		SourceW: src.Dx(),
		SourceH: src.Dy(),
	}, nil
}

// downscale keeps the aspect ratio and uses Catmull-Rom interpolation.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	newW = max(newW, 1)
	newH = max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
