// Package upload is the artifact boundary: a raw file goes in, a stable URL
// comes out. The URL is what gets attached to inference requests.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/krishisahay/backend/internal/inference"
)

type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// HTTPUploader posts files to an external storage service that answers with
// {"file_url": "..."}.
type HTTPUploader struct {
	endpoint string
	client   *http.Client
}

func NewHTTPUploader(endpoint string) *HTTPUploader {
	return &HTTPUploader{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// Unique object name keeps repeated uploads of the same file distinct.
	ext := path.Ext(filename)
	part, err := writer.CreateFormFile("file", uuid.NewString()+ext)
	if err != nil {
		return "", uploadFailed(err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", uploadFailed(err)
	}
	if err := writer.Close(); err != nil {
		return "", uploadFailed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", uploadFailed(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", uploadFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", uploadFailed(fmt.Errorf("storage service returned %d", resp.StatusCode))
	}

	var payload struct {
		FileURL string `json:"file_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", uploadFailed(fmt.Errorf("decode upload response: %w", err))
	}
	if payload.FileURL == "" {
		return "", uploadFailed(fmt.Errorf("storage service returned no file_url"))
	}

	return payload.FileURL, nil
}

func uploadFailed(err error) error {
	return &inference.Error{Kind: inference.KindUploadFailed, Err: err}
}
