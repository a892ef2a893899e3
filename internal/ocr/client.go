package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/validaeja/validaeja-backend/pkg/config"
)

// JPEG and PNG magic bytes for image detection
var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47}
)

// Engine converts a document image into text. Implementations wrap an
// external OCR backend; extraction logic never sees the image itself.
type Engine interface {
	// ImageToText runs OCR on the image bytes using the given language
	// profile and returns the recognized text.
	ImageToText(ctx context.Context, image []byte, language string) (string, error)

	// Name returns the engine name for logging
	Name() string
}

// Client is an Engine backed by a Tesseract sidecar service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new OCR sidecar client
func NewClient(cfg *config.OCRConfig) *Client {
	return &Client{
		baseURL: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout, // OCR on a full page can take several seconds
		},
	}
}

func (c *Client) Name() string { return "tesseract-sidecar" }

// ImageToText sends the image to the sidecar and returns the recognized
// text. Any transport or sidecar failure is returned as an error; the
// caller surfaces it as an ingestion error without crashing the flow.
func (c *Client) ImageToText(ctx context.Context, image []byte, language string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "document.bin")
	if err != nil {
		return "", fmt.Errorf("ocr: create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("ocr: write image data: %w", err)
	}
	if err := writer.WriteField("language", language); err != nil {
		return "", fmt.Errorf("ocr: write language field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("ocr: close multipart writer: %w", err)
	}

	url := c.baseURL + "/api/v1/ocr"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("ocr: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr: sidecar request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ocr: read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr: sidecar returned %d: %s", resp.StatusCode, string(respBody))
	}

	var ocrResp textResponse
	if err := json.Unmarshal(respBody, &ocrResp); err != nil {
		return "", fmt.Errorf("ocr: parse response: %w", err)
	}

	return ocrResp.Text, nil
}

// IsSupportedImage checks for JPEG or PNG magic bytes at the start of
// the data. The upload allow-list is enforced on content, not filename.
func IsSupportedImage(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return bytes.HasPrefix(data, jpegMagic) || bytes.HasPrefix(data, pngMagic)
}

// textResponse mirrors the sidecar's OCR response body
type textResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	DurationMs int64   `json:"duration_ms"`
}
