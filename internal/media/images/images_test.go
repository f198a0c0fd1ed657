package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStorageRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	data := pngBytes(t, 8, 8)

	require.NoError(t, s.Save("upl-1.png", data))
	assert.True(t, s.Exists("upl-1.png"))

	got, err := s.Get("upl-1.png")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStorageDeleteIdempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Save("upl-1.png", pngBytes(t, 4, 4)))
	require.NoError(t, s.Delete("upl-1.png"))
	require.NoError(t, s.Delete("upl-1.png"))
	assert.False(t, s.Exists("upl-1.png"))
}

func TestStorageRejectsPathTraversal(t *testing.T) {
	s := newTestStorage(t)
	assert.Error(t, s.Save("../escape.png", pngBytes(t, 4, 4)))
	_, err := s.Get("a/b.png")
	assert.Error(t, err)
}

func TestComputeBlurHash(t *testing.T) {
	hash, err := ComputeBlurHash(pngBytes(t, 100, 80))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestComputeBlurHashRejectsGarbage(t *testing.T) {
	_, err := ComputeBlurHash([]byte("not an image"))
	assert.Error(t, err)
}

func TestProcessorStoresWithDetectedExtension(t *testing.T) {
	s := newTestStorage(t)
	p := NewProcessor(s, slog.New(slog.NewTextHandler(io.Discard, nil)))

	processed, err := p.Process("upl-abc", pngBytes(t, 20, 10))
	require.NoError(t, err)
	assert.Equal(t, "upl-abc.png", processed.Name)
	assert.Equal(t, "png", processed.Format)
	assert.Equal(t, 20, processed.Width)
	assert.Equal(t, 10, processed.Height)
	assert.NotEmpty(t, processed.BlurHash)
	assert.True(t, s.Exists("upl-abc.png"))
}

func TestProcessorRejectsNonImage(t *testing.T) {
	s := newTestStorage(t)
	p := NewProcessor(s, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := p.Process("upl-bad", []byte("definitely a virus"))
	assert.Error(t, err)
	assert.False(t, s.Exists("upl-bad"))
}
