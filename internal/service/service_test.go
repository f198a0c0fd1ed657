package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/curioapp/curio-server/internal/auth"
	"github.com/curioapp/curio-server/internal/media/images"
	"github.com/curioapp/curio-server/internal/schema"
	"github.com/curioapp/curio-server/internal/search"
	"github.com/curioapp/curio-server/internal/store"
)

const testKeyHex = "abababababababababababababababababababababababababababababababab"

// newTestServices wires the full service stack against temp storage.
func newTestServices(t *testing.T) *Services {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	idx, err := search.NewIndex(search.Options{DataPath: t.TempDir(), Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	tokens, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	storage, err := images.NewStorage(t.TempDir())
	require.NoError(t, err)
	processor := images.NewProcessor(storage, logger)

	searchSvc := NewSearchService(idx, st, logger)
	return &Services{
		Auth:       NewAuthService(st, tokens, logger),
		Categories: NewCategoryService(st, searchSvc, logger),
		Items:      NewItemService(st, searchSvc, logger),
		Uploads:    NewUploadService(processor, 5<<20, logger),
		Search:     searchSvc,
	}
}

// registerTestUser creates an account and returns its user ID.
func registerTestUser(t *testing.T, svc *Services, email string) string {
	t.Helper()
	resp, err := svc.Auth.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return resp.User.ID
}

// bookSchema is a small field config used across item tests.
func bookSchema(t *testing.T) schema.Schema {
	t.Helper()
	author, err := schema.NewField("Author", schema.TypeText, true, schema.Options{})
	require.NoError(t, err)
	pages, err := schema.NewField("Pages", schema.TypeNumber, false, schema.Options{Min: floatPtr(1)})
	require.NoError(t, err)
	tags, err := schema.NewField("Tags", schema.TypeTags, false, schema.Options{})
	require.NoError(t, err)
	return schema.Schema{author, pages, tags}
}

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

// pngBytes encodes a solid-color PNG of the given dimensions.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// searchParams builds default search params with a query string.
func searchParams(userID, query string) search.Params {
	p := search.DefaultParams(userID)
	p.Query = query
	return p
}

// fieldID finds a field's ID by name within a schema.
func fieldID(t *testing.T, s schema.Schema, name string) string {
	t.Helper()
	for _, f := range s {
		if strings.EqualFold(f.Name, name) {
			return f.ID
		}
	}
	t.Fatalf("field %q not in schema", name)
	return ""
}
