package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/lakshayg/face-search/internal/face"
)

// maxUploadBytes bounds query image uploads.
const maxUploadBytes = 32 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.ListFilenames()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	files := make([]string, 0, len(names))
	for name := range names {
		files = append(files, name)
	}
	sort.Strings(files)

	writeJSON(w, http.StatusOK, map[string]any{
		"files": files,
		"count": len(files),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"files":      stats.Files,
		"embeddings": stats.Embeddings,
	})
}

// handleSearch accepts a multipart image upload in the "file" field and
// returns the indexed files containing the uploaded face.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer f.Close()

	imageData, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	result, err := s.matcher.Find(r.Context(), s.store, imageData)
	if err != nil {
		if errors.Is(err, face.ErrAmbiguousQuery) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	matches := result.Matches
	if matches == nil {
		matches = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"face_found": result.FaceFound,
		"matches":    matches,
		"count":      len(matches),
	})
}
