// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfcheck CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfcheck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// exitCode is the process exit status for runs that complete but carry a
// failing verdict. analyze sets it to 1 for a non-compliant document; errors
// exit with 2 from main.
var exitCode int

// rootCmd is the base command for the pdfcheck CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfcheck",
	Short: "Check PDF documents against formatting and section limits",
	Long: `pdfcheck analyzes PDF documents for submission compliance: page-1 font
size and family, one-inch margins, and per-section page limits. Documents
come from local files, stdin, or URLs; limits come from flags, limit files,
or named profiles.

Each concern is a subcommand: analyze, profiles, history, and serve.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfcheck.yaml or ~/.config/pdfcheck/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfcheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfcheck"))
		}
	}

	viper.SetEnvPrefix("PDFCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	defaults := types.DefaultConfig()
	viper.SetDefault("check.font_size_points", defaults.Check.FontSizePoints)
	viper.SetDefault("check.font_family", defaults.Check.FontFamily)
	viper.SetDefault("check.margin_inches", defaults.Check.MarginInches)
	viper.SetDefault("check.margin_tolerance_inches", defaults.Check.MarginToleranceInches)
	viper.SetDefault("check.max_heading_words", defaults.Check.MaxHeadingWords)
	viper.SetDefault("history.path", "")
	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.max_upload_mb", defaults.Server.MaxUploadMB)
	viper.SetDefault("fetch.timeout", defaults.Fetch.Timeout)
	viper.SetDefault("fetch.user_agent", defaults.Fetch.UserAgent)
	viper.SetDefault("fetch.max_retries", defaults.Fetch.MaxRetries)
	viper.SetDefault("fetch.max_download_mb", defaults.Fetch.MaxDownloadMB)
	viper.SetDefault("profiles.dir", "")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from viper: defaults
// overlaid with the config file and PDFCHECK_* environment variables.
func loadConfig() types.Config {
	return types.Config{
		Check: types.CheckConfig{
			FontSizePoints:        viper.GetInt("check.font_size_points"),
			FontFamily:            viper.GetString("check.font_family"),
			MarginInches:          viper.GetFloat64("check.margin_inches"),
			MarginToleranceInches: viper.GetFloat64("check.margin_tolerance_inches"),
			MaxHeadingWords:       viper.GetInt("check.max_heading_words"),
		},
		History: types.HistoryConfig{
			Path: viper.GetString("history.path"),
		},
		Server: types.ServerConfig{
			Addr:        viper.GetString("server.addr"),
			MaxUploadMB: viper.GetInt64("server.max_upload_mb"),
		},
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			MaxRetries:    viper.GetInt("fetch.max_retries"),
			MaxDownloadMB: viper.GetInt64("fetch.max_download_mb"),
		},
		Profiles: types.ProfilesConfig{
			Dir: viper.GetString("profiles.dir"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
	os.Exit(exitCode)
}
