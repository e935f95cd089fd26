// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads documents over HTTP for analysis.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pdiddy/pdfcheck/internal/httputil"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

const bytesPerMB = 1 << 20

// IsURL reports whether the argument names an http or https resource
// rather than a local file.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Fetch downloads the document at rawURL into memory. It sets User-Agent,
// requests PDF via the Accept header, retries transient failures with
// backoff, and caps the download at cfg.MaxDownloadMB.
func Fetch(ctx context.Context, rawURL string, cfg types.FetchConfig) ([]byte, error) {
	def := types.DefaultFetchConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.MaxDownloadMB <= 0 {
		cfg.MaxDownloadMB = def.MaxDownloadMB
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	// Read one byte past the cap so an oversized body is detected
	// without buffering all of it.
	limit := cfg.MaxDownloadMB * bytesPerMB
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading download: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("download from %s exceeds %d MB cap", rawURL, cfg.MaxDownloadMB)
	}
	return data, nil
}
