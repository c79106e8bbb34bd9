package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnail_DownscalesKeepingAspect(t *testing.T) {
	th, err := Thumbnail(makePNG(t, 200, 100), 64)
	require.NoError(t, err)

	assert.Equal(t, 64, th.Width)
	assert.Equal(t, 32, th.Height)
	assert.Equal(t, 200, th.SourceW)
	assert.Equal(t, 100, th.SourceH)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(th.Data))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
}

func TestThumbnail_PortraitAndSmall(t *testing.T) {
	th, err := Thumbnail(makePNG(t, 10, 300), 30)
	require.NoError(t, err)
	assert.Equal(t, 1, th.Width)
	assert.Equal(t, 30, th.Height)

	th, err = Thumbnail(makePNG(t, 20, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, 20, th.Width, "small images keep their size")
}

func TestThumbnail_Garbage(t *testing.T) {
	_, err := Thumbnail([]byte("not an image"), 64)
	require.Error(t, err)
}

func TestSniff(t *testing.T) {
	mime, err := Sniff(makePNG(t, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, err = Sniff([]byte("%PDF-1.4 ..."))
	require.Error(t, err)
}
