package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage_Success(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "png@example.com")

	resp := ts.api.Post("/api/v1/uploads/image",
		"Authorization: Bearer "+user.AccessToken,
		"Content-Type: image/png",
		bytes.NewReader(pngBytes(t, 64, 48)))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[UploadResponse](t, resp)
	assert.True(t, envelope.Success)
	assert.True(t, strings.HasPrefix(envelope.Data.URL, "/uploads/"), "url: %s", envelope.Data.URL)
	assert.Equal(t, "png", envelope.Data.Format)
	assert.Equal(t, 64, envelope.Data.Width)
	assert.Equal(t, 48, envelope.Data.Height)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "pdf@example.com")

	resp := ts.api.Post("/api/v1/uploads/image",
		"Authorization: Bearer "+user.AccessToken,
		"Content-Type: application/pdf",
		bytes.NewReader([]byte("%PDF-1.4")))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	envelope := decodeEnvelope[struct{}](t, resp)
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestUploadImage_RejectsGarbageBytes(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "garbage@example.com")

	resp := ts.api.Post("/api/v1/uploads/image",
		"Authorization: Bearer "+user.AccessToken,
		"Content-Type: image/png",
		bytes.NewReader([]byte("definitely not a png")))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUploadImages_Batch(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "batch@example.com")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, name := range []string{"first.png", "second.png"} {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(pngBytes(t, 16, 16))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	resp := ts.api.Post("/api/v1/uploads/images",
		"Authorization: Bearer "+user.AccessToken,
		"Content-Type: "+writer.FormDataContentType(),
		bytes.NewReader(body.Bytes()))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[UploadsResponse](t, resp)
	require.Len(t, envelope.Data.Uploads, 2)
	assert.NotEqual(t, envelope.Data.Uploads[0].Name, envelope.Data.Uploads[1].Name)
}

func TestUploadImages_AllOrNothing(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "rollback@example.com")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("images", "good.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes(t, 16, 16))
	require.NoError(t, err)

	part, err = writer.CreateFormFile("images", "bad.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("not an image"))
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	resp := ts.api.Post("/api/v1/uploads/images",
		"Authorization: Bearer "+user.AccessToken,
		"Content-Type: "+writer.FormDataContentType(),
		bytes.NewReader(body.Bytes()))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	envelope := decodeEnvelope[struct{}](t, resp)
	assert.Equal(t, "VALIDATION", envelope.Code)

	details, ok := envelope.Details.(map[string]any)
	require.True(t, ok, "details must identify the failing file, got %T", envelope.Details)
	assert.Equal(t, float64(1), details["file_index"])
	assert.Equal(t, "bad.txt", details["file_name"])
}

func TestUploadImage_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/uploads/image",
		"Content-Type: image/png",
		bytes.NewReader(pngBytes(t, 8, 8)))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestParseMultipartImages_RejectsNonMultipart(t *testing.T) {
	_, err := parseMultipartImages("application/json", []byte("{}"))
	assert.Error(t, err)
}
