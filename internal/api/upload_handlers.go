package api

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/curioapp/curio-server/internal/service"
)

func (s *Server) registerUploadRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "uploadImage",
		Method:      http.MethodPost,
		Path:        "/api/v1/uploads/image",
		Summary:     "Upload image",
		Description: "Accepts a raw image body and returns its public URL",
		Tags:        []string{"Uploads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUploadImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "uploadImages",
		Method:      http.MethodPost,
		Path:        "/api/v1/uploads/images",
		Summary:     "Upload images",
		Description: "Accepts a multipart form of image files; the batch is all or nothing",
		Tags:        []string{"Uploads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUploadImages)
}

// === DTOs ===

// UploadImageInput carries a raw image body.
type UploadImageInput struct {
	Authorization string `header:"Authorization"`
	ContentType   string `header:"Content-Type"`
	RawBody       []byte
}

// UploadResponse describes one stored image.
type UploadResponse struct {
	URL      string `json:"url" doc:"Public URL of the stored image"`
	Name     string `json:"name" doc:"Stored file name"`
	Format   string `json:"format" doc:"Decoded image format"`
	Width    int    `json:"width" doc:"Pixel width"`
	Height   int    `json:"height" doc:"Pixel height"`
	Size     int64  `json:"size" doc:"Size in bytes"`
	BlurHash string `json:"blur_hash,omitempty" doc:"Placeholder hash for progressive loading"`
}

// UploadOutput wraps the upload response for Huma.
type UploadOutput struct {
	Body UploadResponse
}

// UploadImagesInput carries a multipart form of image files.
type UploadImagesInput struct {
	Authorization string `header:"Authorization"`
	ContentType   string `header:"Content-Type"`
	RawBody       []byte
}

// UploadsResponse contains the stored batch.
type UploadsResponse struct {
	Uploads []UploadResponse `json:"uploads" doc:"Stored images in request order"`
}

// UploadsOutput wraps the uploads response for Huma.
type UploadsOutput struct {
	Body UploadsResponse
}

// === Handlers ===

func (s *Server) handleUploadImage(ctx context.Context, input *UploadImageInput) (*UploadOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	upload, err := s.services.Uploads.UploadImage(ctx, userID, input.ContentType, input.RawBody)
	if err != nil {
		return nil, err
	}

	return &UploadOutput{Body: mapUploadResponse(upload)}, nil
}

func (s *Server) handleUploadImages(ctx context.Context, input *UploadImagesInput) (*UploadsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	files, err := parseMultipartImages(input.ContentType, input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid multipart form", err)
	}

	uploads, err := s.services.Uploads.UploadImages(ctx, userID, files)
	if err != nil {
		return nil, err
	}

	resp := make([]UploadResponse, len(uploads))
	for i, u := range uploads {
		resp[i] = mapUploadResponse(u)
	}

	return &UploadsOutput{Body: UploadsResponse{Uploads: resp}}, nil
}

// === Helpers ===

// parseMultipartImages extracts file parts from a multipart body.
// Non-file parts are ignored.
func parseMultipartImages(contentType string, body []byte) ([]service.UploadFile, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, http.ErrNotMultipart
	}

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])

	var files []service.UploadFile
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if part.FileName() == "" {
			_ = part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, err
		}

		files = append(files, service.UploadFile{
			Name:        part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return files, nil
}

func mapUploadResponse(u *service.Upload) UploadResponse {
	return UploadResponse{
		URL:      u.URL,
		Name:     u.Name,
		Format:   u.Format,
		Width:    u.Width,
		Height:   u.Height,
		Size:     u.Size,
		BlurHash: u.BlurHash,
	}
}
