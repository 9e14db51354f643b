package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/krishisahay/backend/internal/inference"
)

func TestUpload_ReturnsFileURL(t *testing.T) {
	var gotName, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotContent = string(data)
		fmt.Fprint(w, `{"file_url": "https://files.example/stored.jpg"}`)
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL)
	url, err := u.Upload(context.Background(), "leaf.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if url != "https://files.example/stored.jpg" {
		t.Errorf("unexpected URL: %q", url)
	}
	if gotContent != "image-bytes" {
		t.Errorf("uploaded content %q", gotContent)
	}
	if !strings.HasSuffix(gotName, ".jpg") {
		t.Errorf("stored name %q should keep the extension", gotName)
	}
	if gotName == "leaf.jpg" {
		t.Error("stored name should be unique, not the original filename")
	}
}

func TestUpload_ServerErrorIsUploadFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage full", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPUploader(srv.URL).Upload(context.Background(), "leaf.jpg", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if inference.KindOf(err) != inference.KindUploadFailed {
		t.Errorf("expected upload_failed, got %v", inference.KindOf(err))
	}
}

func TestUpload_MissingFileURLIsUploadFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	_, err := NewHTTPUploader(srv.URL).Upload(context.Background(), "leaf.jpg", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if inference.KindOf(err) != inference.KindUploadFailed {
		t.Errorf("expected upload_failed, got %v", inference.KindOf(err))
	}
}

func TestUpload_UnreachableEndpointIsUploadFailed(t *testing.T) {
	_, err := NewHTTPUploader("http://127.0.0.1:1/upload").Upload(
		context.Background(), "leaf.jpg", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if inference.KindOf(err) != inference.KindUploadFailed {
		t.Errorf("expected upload_failed, got %v", inference.KindOf(err))
	}
}
