package face

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const defaultExtractorURL = "http://localhost:8000"

// HTTPExtractor talks to a face-embedding service over HTTP. The service
// receives the image as a multipart upload and returns one embedding per
// detected face.
type HTTPExtractor struct {
	baseURL string
	client  *http.Client
}

// NewHTTPExtractor creates an extractor client for the given base URL.
func NewHTTPExtractor(baseURL string) *HTTPExtractor {
	if baseURL == "" {
		baseURL = defaultExtractorURL
	}
	return &HTTPExtractor{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
	}
}

// extractResponse represents the response from the embedding service.
type extractResponse struct {
	Faces []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"faces"`
}

// Extract posts the image to the service and returns the face embeddings.
func (c *HTTPExtractor) Extract(ctx context.Context, imageData []byte) ([][]float32, error) {
	// Downscale oversized uploads. Formats we cannot decode locally
	// (e.g. HEIC) are sent as-is and left to the service.
	upload := imageData
	if prepared, err := PrepareImage(imageData, MaxUploadDim); err == nil {
		upload = prepared
	}

	body, err := c.postMultipartImage(ctx, "/faces/embed", upload)
	if err != nil {
		return nil, err
	}

	var resp extractResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	vectors := make([][]float32, 0, len(resp.Faces))
	for _, f := range resp.Faces {
		if len(f.Embedding) == 0 {
			return nil, fmt.Errorf("service returned an empty embedding")
		}
		vectors = append(vectors, f.Embedding)
	}
	return vectors, nil
}

// postMultipartImage constructs a multipart form with the image data and
// posts it to the given endpoint.
func (c *HTTPExtractor) postMultipartImage(ctx context.Context, endpoint string, imageData []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "image.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extractor error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
