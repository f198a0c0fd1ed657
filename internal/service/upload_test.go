package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/curioapp/curio-server/internal/errors"
)

func TestUploadService_UploadImage(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	upload, err := svc.Uploads.UploadImage(ctx, "usr-alice", "image/png", pngBytes(t, 32, 24))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.URL, "/uploads/upl-"))
	assert.True(t, strings.HasSuffix(upload.Name, ".png"), "extension follows decoded format")
	assert.Equal(t, "png", upload.Format)
	assert.Equal(t, 32, upload.Width)
	assert.Equal(t, 24, upload.Height)
	assert.Positive(t, upload.Size)
	assert.NotEmpty(t, upload.BlurHash)
}

func TestUploadService_Rejections(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{name: "empty body", contentType: "image/png", data: nil},
		{name: "non-image content type", contentType: "application/pdf", data: pngBytes(t, 4, 4)},
		{name: "not actually an image", contentType: "image/png", data: []byte("plain text")},
		{name: "oversized", contentType: "image/png", data: make([]byte, 6<<20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Uploads.UploadImage(ctx, "usr-alice", tt.contentType, tt.data)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		})
	}
}

func TestUploadService_UploadImages(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	uploads, err := svc.Uploads.UploadImages(ctx, "usr-alice", []UploadFile{
		{Name: "a.png", ContentType: "image/png", Data: pngBytes(t, 8, 8)},
		{Name: "b.png", ContentType: "image/png", Data: pngBytes(t, 16, 16)},
	})
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	assert.NotEqual(t, uploads[0].Name, uploads[1].Name)
}

func TestUploadService_UploadImagesAllOrNothing(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Uploads.UploadImages(ctx, "usr-alice", []UploadFile{
		{Name: "good.png", ContentType: "image/png", Data: pngBytes(t, 8, 8)},
		{Name: "bad.txt", ContentType: "image/png", Data: []byte("not an image")},
	})
	require.Error(t, err)

	derr, ok := domainerrors.AsError(err)
	require.True(t, ok)
	details, ok := derr.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, details["file_index"])
	assert.Equal(t, "bad.txt", details["file_name"])
}
