package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/docpeak/outline"
	"github.com/docpeak/outline/model"
)

// outlineResponse is the POST /v1/outline response body.
type outlineResponse struct {
	Title    string               `json:"title"`
	Outline  []model.HeadingEntry `json:"outline"`
	Stats    outline.Stats        `json:"stats"`
	Warnings []string             `json:"warnings,omitempty"`
}

// handleOutline accepts a document upload (multipart field "file") and
// returns its extracted outline. Optional form fields max_pages and
// title_pages override the server defaults for this request.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes()+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes()+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes() {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes()), http.StatusRequestEntityTooLarge)
		return
	}

	// The collectors work from the filesystem, so stage the upload in a
	// temp file carrying the original extension for format sniffing.
	tmp, err := os.CreateTemp("", "outline-*"+filepath.Ext(filename))
	if err != nil {
		jsonError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		jsonError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}
	tmp.Close()

	maxPages := s.cfg.MaxPages
	if v := r.FormValue("max_pages"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxPages = n
		}
	}
	titlePages := s.cfg.TitlePages
	if v := r.FormValue("title_pages"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			titlePages = n
		}
	}

	result, warnings, err := outline.Open(tmp.Name()).
		MaxPages(maxPages).
		TitlePages(titlePages).
		WithLogger(s.log).
		ExtractResult()
	if err != nil {
		jsonError(w, "extraction failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := outlineResponse{
		Title:   result.Outline.Title,
		Outline: result.Outline.Entries,
		Stats:   result.Stats,
	}
	for _, warning := range warnings {
		resp.Warnings = append(resp.Warnings, warning.String())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	return name
}
