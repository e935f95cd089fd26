// Package main contains Mage build targets for pdfcheck developer tooling.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/pdfcheck/internal/history"
)

// projectDirs lists the working directories the tools expect.
var projectDirs = []string{
	"data",
	"profiles",
}

// Init creates the project directory structure: data/ for the history
// store and profiles/ for user-defined limit profiles.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "pdfcheck"
	cmdPkg  = "./cmd/pdfcheck"
)

// Build compiles the CLI binary into bin/ with the version stamped from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	cmd := exec.Command("go", "build", "-ldflags", "-X main.version="+buildVersion(), "-o", out, cmdPkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// buildVersion derives the build version from git, falling back to "dev"
// outside a repository.
func buildVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}
	if v := strings.TrimSpace(string(out)); v != "" {
		return v
	}
	return "dev"
}

// Stats prints history store metrics: saved analyses and the last run time.
// The store path comes from PDFCHECK_HISTORY_PATH, defaulting to
// data/history.db.
func Stats() error {
	path := os.Getenv("PDFCHECK_HISTORY_PATH")
	if path == "" {
		path = filepath.Join("data", "history.db")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no history store at %s", path)
	}

	store, err := history.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Saved analyses: %d\n", st.Runs)
	if st.Runs > 0 {
		fmt.Printf("Last run:       %s\n", st.LastRun.Format(time.RFC3339))
	}
	return nil
}
