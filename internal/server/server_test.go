// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/pdfcheck/internal/extract"
	"github.com/pdiddy/pdfcheck/internal/history"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

type fakeExtractor struct {
	doc *types.Document
	err error
}

func (f *fakeExtractor) Extract(path string) (*types.Document, error) {
	return f.doc, f.err
}

// docWithSkillsPages builds a format-compliant document whose SKILLS
// section spans n pages.
func docWithSkillsPages(n int) *types.Document {
	doc := &types.Document{Pages: []types.Page{{
		Number: 1,
		Lines: []types.TextLine{
			{Text: "SKILLS", Top: 72},
			{Text: "Go and SQL.", Top: 90},
		},
		Fonts:   []types.FontSample{{Name: "TimesNewRomanPSMT", Size: 12}},
		Margins: &types.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
	}}}
	for i := 2; i <= n; i++ {
		doc.Pages = append(doc.Pages, types.Page{
			Number: i,
			Lines:  []types.TextLine{{Text: "more skill detail", Top: 72}},
		})
	}
	return doc
}

func newTestServer(t *testing.T, fake *fakeExtractor, store *history.Store) *Server {
	t.Helper()
	return NewServer(Config{
		Extractor: fake,
		Check:     types.DefaultCheckConfig(),
		Store:     store,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// uploadRequest builds a multipart POST to /api/analyze. An empty filename
// omits the document field.
func uploadRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("document", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)
	return rr
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{doc: docWithSkillsPages(1)}, nil)

	req := uploadRequest(t, map[string]string{"limits": `{"skills": 2}`}, "resume.pdf", []byte("%PDF-1.7"))
	rr := doRequest(srv, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var rep types.ComplianceReport
	if err := json.Unmarshal(rr.Body.Bytes(), &rep); err != nil {
		t.Fatalf("response is not a report: %v", err)
	}
	if !rep.Compliant() {
		t.Errorf("report should be compliant: %+v", rep)
	}
	sec, ok := rep.Section("skills")
	if !ok || sec.Status != types.StatusPass {
		t.Errorf("skills = %+v, want pass", sec)
	}
}

func TestAnalyzeEndpoint_ProfileLimitExceeded(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{doc: docWithSkillsPages(3)}, nil)

	req := uploadRequest(t, map[string]string{"profile": "resume"}, "resume.pdf", []byte("%PDF-1.7"))
	rr := doRequest(srv, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var rep types.ComplianceReport
	if err := json.Unmarshal(rr.Body.Bytes(), &rep); err != nil {
		t.Fatalf("response is not a report: %v", err)
	}
	if rep.Compliant() {
		t.Error("3 skills pages against the resume profile's 2 should fail")
	}
}

func TestAnalyzeEndpoint_LimitsOverrideProfile(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{doc: docWithSkillsPages(3)}, nil)

	fields := map[string]string{"profile": "resume", "limits": `{"skills": 5}`}
	rr := doRequest(srv, uploadRequest(t, fields, "resume.pdf", []byte("%PDF-1.7")))

	var rep types.ComplianceReport
	if err := json.Unmarshal(rr.Body.Bytes(), &rep); err != nil {
		t.Fatalf("response is not a report: %v", err)
	}
	sec, ok := rep.Section("skills")
	if !ok || sec.Status != types.StatusPass {
		t.Errorf("skills = %+v, want pass under the overriding limit of 5", sec)
	}
}

func TestAnalyzeEndpoint_UnparseableUpload(t *testing.T) {
	fake := &fakeExtractor{err: fmt.Errorf("%w: not a PDF", extract.ErrParse)}
	srv := newTestServer(t, fake, nil)

	rr := doRequest(srv, uploadRequest(t, nil, "junk.pdf", []byte("not a pdf")))

	if rr.Code != http.StatusOK {
		t.Fatalf("unparseable input is a verdict; status = %d", rr.Code)
	}
	var rep types.ComplianceReport
	if err := json.Unmarshal(rr.Body.Bytes(), &rep); err != nil {
		t.Fatalf("response is not a report: %v", err)
	}
	if rep.Compliant() || rep.Format.FileType != types.StatusFail {
		t.Errorf("report = %+v, want all format checks failing", rep)
	}
}

func TestAnalyzeEndpoint_MissingDocument(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{}, nil)

	rr := doRequest(srv, uploadRequest(t, map[string]string{"profile": "resume"}, "", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a missing document field", rr.Code)
	}
}

func TestAnalyzeEndpoint_MalformedLimits(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{doc: docWithSkillsPages(1)}, nil)

	fields := map[string]string{"limits": `{"skills": 0}`}
	rr := doRequest(srv, uploadRequest(t, fields, "resume.pdf", []byte("%PDF-1.7")))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed limits", rr.Code)
	}
}

func TestAnalyzeEndpoint_UnknownProfile(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{doc: docWithSkillsPages(1)}, nil)

	fields := map[string]string{"profile": "novel"}
	rr := doRequest(srv, uploadRequest(t, fields, "resume.pdf", []byte("%PDF-1.7")))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for an unknown profile", rr.Code)
	}
}

func TestAnalyzeEndpoint_OversizedUpload(t *testing.T) {
	srv := NewServer(Config{
		Extractor: &fakeExtractor{doc: docWithSkillsPages(1)},
		Check:     types.DefaultCheckConfig(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Server:    types.ServerConfig{MaxUploadMB: 1},
	})

	big := bytes.Repeat([]byte("x"), 1<<20+4096)
	rr := doRequest(srv, uploadRequest(t, nil, "big.pdf", big))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413 for an oversized upload", rr.Code)
	}
}

func TestAnalyzeEndpoint_SavesHistory(t *testing.T) {
	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	srv := newTestServer(t, &fakeExtractor{doc: docWithSkillsPages(1)}, store)

	rr := doRequest(srv, uploadRequest(t, nil, "resume.pdf", []byte("%PDF-1.7")))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("history has %d records, want 1", len(records))
	}
	if records[0].Source != "resume.pdf" || records[0].Pages != 1 {
		t.Errorf("record = %+v, want source resume.pdf with 1 page", records[0])
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{}, nil)

	rr := doRequest(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{}, nil)

	rr := doRequest(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("<form")) {
		t.Error("index page should contain the upload form")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	srv := NewServer(Config{
		Extractor: &fakeExtractor{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Server:    types.ServerConfig{Addr: "127.0.0.1:0"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx) }()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not stop after context cancel")
	}
}
