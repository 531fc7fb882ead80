package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docpeak/outline/internal/config"
)

func testServer() *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(log, config.DefaultConfig())
}

// spanDump is a minimal pre-extracted span document: one 18pt bold heading
// over a column of 11pt body lines.
const spanDump = `{
	"metadata": {"title": "Quarterly Review"},
	"pages": [{
		"width": 612, "height": 792,
		"blocks": [{"lines": [
			{"text": "1. Summary", "font": {"name": "Helvetica-Bold", "size": 18}, "bbox": {"x": 72, "y": 682, "w": 120, "h": 18}},
			{"text": "Body paragraph text that fills the first line of the page.", "font": {"name": "Helvetica", "size": 11}, "bbox": {"x": 72, "y": 629, "w": 400, "h": 11}},
			{"text": "Body paragraph text that fills the second line of the page.", "font": {"name": "Helvetica", "size": 11}, "bbox": {"x": 72, "y": 615, "w": 400, "h": 11}},
			{"text": "Body paragraph text that fills the third line of the page.", "font": {"name": "Helvetica", "size": 11}, "bbox": {"x": 72, "y": 601, "w": 400, "h": 11}},
			{"text": "Body paragraph text that fills the fourth line of the page.", "font": {"name": "Helvetica", "size": 11}, "bbox": {"x": 72, "y": 587, "w": 400, "h": 11}},
			{"text": "Body paragraph text that fills the fifth line of the page.", "font": {"name": "Helvetica", "size": 11}, "bbox": {"x": 72, "y": 573, "w": 400, "h": 11}}
		]}]
	}]
}`

func uploadRequest(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/outline", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestOutlineUpload(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "review.json", spanDump, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp outlineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Title != "Quarterly Review" {
		t.Errorf("title = %q", resp.Title)
	}
	if len(resp.Outline) != 1 {
		t.Fatalf("got %d outline entries: %+v", len(resp.Outline), resp.Outline)
	}
	if resp.Outline[0].Text != "1. Summary " || resp.Outline[0].Page != 1 {
		t.Errorf("entry = %+v", resp.Outline[0])
	}
	if resp.Stats.HeadingsFound != 1 {
		t.Errorf("stats = %+v", resp.Stats)
	}
}

func TestOutlineMissingFile(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("max_pages", "10")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/outline", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOutlineUnsupportedContent(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "notes.txt", "plain text, not a document", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422, body = %s", rec.Code, rec.Body.String())
	}
}
