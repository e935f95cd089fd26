package types

import "time"

// HTTPConfig holds shared HTTP client settings for components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdfcheck/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CheckConfig holds the formatting rules and segmentation bounds applied
// during analysis. The zero value of an individual field falls back to its
// default at the point of use.
type CheckConfig struct {
	// FontSizePoints is the required page-1 font size; every sample,
	// rounded to the nearest integer point, must equal it (default 12).
	FontSizePoints int `json:"font_size_points" yaml:"font_size_points"`

	// FontFamily is the substring every page-1 font name must contain
	// after lower-casing and whitespace removal (default "times").
	FontFamily string `json:"font_family" yaml:"font_family"`

	// MarginInches is the required margin on all four sides (default 1).
	MarginInches float64 `json:"margin_inches" yaml:"margin_inches"`

	// MarginToleranceInches is the allowed deviation per side (default
	// 0.05). Non-positive values are treated as the default.
	MarginToleranceInches float64 `json:"margin_tolerance_inches" yaml:"margin_tolerance_inches"`

	// MaxHeadingWords bounds the title-case heading heuristic (default 6).
	MaxHeadingWords int `json:"max_heading_words" yaml:"max_heading_words"`
}

// DefaultCheckConfig returns the standard compliance rules: 12 pt Times
// faces with one-inch margins (±0.05 in) and headings of at most six words.
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		FontSizePoints:        12,
		FontFamily:            "times",
		MarginInches:          1.0,
		MarginToleranceInches: 0.05,
		MaxHeadingWords:       6,
	}
}

// HistoryConfig holds settings for the analysis history store.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path" yaml:"path"`
}

// ServerConfig holds settings for the HTTP upload front end.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadMB caps the size of an uploaded document (default 32).
	MaxUploadMB int64 `json:"max_upload_mb" yaml:"max_upload_mb"`
}

// DefaultServerConfig returns the standard server settings.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:        ":8080",
		MaxUploadMB: 32,
	}
}

// FetchConfig holds settings for downloading documents by URL.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retry attempts for transient HTTP
	// failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxDownloadMB caps the size of a fetched document (default 32).
	MaxDownloadMB int64 `json:"max_download_mb" yaml:"max_download_mb"`
}

// DefaultFetchConfig returns the standard fetch settings.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "pdfcheck/0.1",
		},
		MaxRetries:    3,
		MaxDownloadMB: 32,
	}
}

// ProfilesConfig holds settings for user-defined limit profiles.
type ProfilesConfig struct {
	// Dir is a directory of <name>.yaml or <name>.json limit files.
	// Empty means built-in profiles only.
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all component configurations for the CLI and server.
type Config struct {
	Check    CheckConfig    `json:"check" yaml:"check"`
	History  HistoryConfig  `json:"history" yaml:"history"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Profiles ProfilesConfig `json:"profiles" yaml:"profiles"`
}

// DefaultConfig returns the full default configuration.
func DefaultConfig() Config {
	return Config{
		Check:  DefaultCheckConfig(),
		Server: DefaultServerConfig(),
		Fetch:  DefaultFetchConfig(),
	}
}
