package ocr_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/validaeja/validaeja-backend/internal/ocr"
	"github.com/validaeja/validaeja-backend/pkg/config"
)

func newTestClient(url string) *ocr.Client {
	return ocr.NewClient(&config.OCRConfig{
		URL:      url,
		Language: "por",
		Timeout:  5 * time.Second,
	})
}

func TestClient_ImageToText(t *testing.T) {
	var gotLanguage string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/v1/ocr" {
			t.Errorf("path = %s, want /api/v1/ocr", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotLanguage = r.FormValue("language")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"text":       "LAUDO MÉDICO CID-10: J45.0",
			"confidence": 0.93,
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	text, err := client.ImageToText(context.Background(), []byte{0xFF, 0xD8, 0xFF, 0x01}, "por")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "LAUDO MÉDICO CID-10: J45.0" {
		t.Errorf("text = %q", text)
	}
	if gotLanguage != "por" {
		t.Errorf("language = %q, want por", gotLanguage)
	}
}

func TestClient_ImageToText_SidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	if _, err := client.ImageToText(context.Background(), []byte{0x01}, "por"); err == nil {
		t.Error("expected error on sidecar failure")
	}
}

func TestClient_ImageToText_Unreachable(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	if _, err := client.ImageToText(context.Background(), []byte{0x01}, "por"); err == nil {
		t.Error("expected error when sidecar is unreachable")
	}
}

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, true},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D}, true},
		{"pdf", []byte("%PDF-1.4"), false},
		{"text", []byte("laudo médico"), false},
		{"too short", []byte{0xFF, 0xD8}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ocr.IsSupportedImage(tt.data); got != tt.want {
				t.Errorf("IsSupportedImage() = %v, want %v", got, tt.want)
			}
		})
	}
}
