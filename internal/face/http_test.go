package face

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func extractorServer(t *testing.T, status int, response any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/faces/embed" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	}))
}

func TestHTTPExtractorParsesFaces(t *testing.T) {
	server := extractorServer(t, http.StatusOK, map[string]any{
		"faces": []map[string]any{
			{"embedding": []float32{1, 2, 3}},
			{"embedding": []float32{4, 5, 6}},
		},
	})
	defer server.Close()

	vectors, err := NewHTTPExtractor(server.URL).Extract(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 faces, got %d", len(vectors))
	}
	if vectors[0][0] != 1 || vectors[1][2] != 6 {
		t.Errorf("unexpected vectors %v", vectors)
	}
}

func TestHTTPExtractorZeroFaces(t *testing.T) {
	server := extractorServer(t, http.StatusOK, map[string]any{"faces": []any{}})
	defer server.Close()

	vectors, err := NewHTTPExtractor(server.URL).Extract(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected no faces, got %v", vectors)
	}
}

func TestHTTPExtractorServerError(t *testing.T) {
	server := extractorServer(t, http.StatusInternalServerError, map[string]string{"error": "boom"})
	defer server.Close()

	if _, err := NewHTTPExtractor(server.URL).Extract(context.Background(), []byte("img")); err == nil {
		t.Error("expected error for 500 response, got nil")
	}
}

func TestHTTPExtractorEmptyEmbedding(t *testing.T) {
	server := extractorServer(t, http.StatusOK, map[string]any{
		"faces": []map[string]any{{"embedding": []float32{}}},
	})
	defer server.Close()

	if _, err := NewHTTPExtractor(server.URL).Extract(context.Background(), []byte("img")); err == nil {
		t.Error("expected error for empty embedding, got nil")
	}
}

func TestHTTPExtractorSendsMultipartImage(t *testing.T) {
	imageData := []byte("raw-image-bytes")
	var received []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file field: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		received, _ = io.ReadAll(f)
		_ = json.NewEncoder(w).Encode(map[string]any{"faces": []any{}})
	}))
	defer server.Close()

	if _, err := NewHTTPExtractor(server.URL).Extract(context.Background(), imageData); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	// Bytes that cannot be decoded locally are forwarded unchanged.
	if string(received) != string(imageData) {
		t.Errorf("expected upload %q, got %q", imageData, received)
	}
}

func TestHTTPExtractorContextCancellation(t *testing.T) {
	server := extractorServer(t, http.StatusOK, map[string]any{"faces": []any{}})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHTTPExtractor(server.URL).Extract(ctx, []byte("img")); err == nil {
		t.Error("expected error for cancelled context, got nil")
	}
}
