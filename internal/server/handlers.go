// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/pdfcheck/internal/analyze"
	"github.com/pdiddy/pdfcheck/internal/limits"
	"github.com/pdiddy/pdfcheck/internal/profiles"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>pdfcheck</title></head>
<body>
<h1>pdfcheck</h1>
<p>Upload a PDF to check formatting and section page limits.</p>
<form action="/api/analyze" method="post" enctype="multipart/form-data">
<p><input type="file" name="document" accept=".pdf" required></p>
<p><label>Profile: <input type="text" name="profile" placeholder="resume"></label></p>
<p><label>Limits JSON: <input type="text" name="limits" placeholder='{"skills": 2}'></label></p>
<p><button type="submit">Analyze</button></p>
</form>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexPage)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok\n")
}

// handleAnalyze accepts a multipart form with a "document" file field plus
// optional "limits" (JSON object) and "profile" fields, and responds with
// the report JSON. Unparseable uploads still produce a report; oversized
// or malformed requests do not.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d MB", s.maxUpload>>20))
			return
		}
		writeError(w, http.StatusBadRequest, "malformed multipart form")
		return
	}

	lim, err := s.requestLimits(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing document field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	res, err := analyze.AnalyzeBytes(s.extractor, data, lim, s.check, io.Discard)
	if err != nil {
		if errors.Is(err, analyze.ErrEmptyDocument) || errors.Is(err, limits.ErrMalformed) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("analysis failed", "source", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	s.logger.Info("analyzed upload",
		"source", header.Filename,
		"pages", res.Pages,
		"compliant", res.Report.Compliant(),
	)

	if s.store != nil {
		rec := types.AnalysisRecord{
			Source:    header.Filename,
			Pages:     res.Pages,
			Sections:  len(res.Report.Content),
			Compliant: res.Report.Compliant(),
			Report:    *res.Report,
		}
		if _, err := s.store.Save(r.Context(), rec); err != nil {
			s.logger.Error("history save failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, res.Report)
}

// requestLimits resolves the optional profile and limits form fields,
// explicit limits overriding profile entries.
func (s *Server) requestLimits(r *http.Request) (types.SectionLimits, error) {
	var lim types.SectionLimits

	if name := r.FormValue("profile"); name != "" {
		p, err := profiles.Get(s.profilesDir, name)
		if err != nil {
			return nil, err
		}
		lim = p
	}

	if raw := r.FormValue("limits"); raw != "" {
		over, err := limits.Parse([]byte(raw))
		if err != nil {
			return nil, err
		}
		lim = limits.Merge(lim, over)
	}

	return lim, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
