package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfcheck/internal/extract"
	"github.com/pdiddy/pdfcheck/internal/history"
	"github.com/pdiddy/pdfcheck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload front end",
	Long: `Serve starts an HTTP server with a minimal upload page and a JSON
analysis endpoint. Uploads are checked with the same rules as the analyze
command, and recorded to history when a store is configured. The server
shuts down cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Int64("max-upload-mb", 0, "upload size cap in MB (default 32)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if mb, _ := cmd.Flags().GetInt64("max-upload-mb"); mb > 0 {
		cfg.Server.MaxUploadMB = mb
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var store *history.Store
	if cfg.History.Path != "" {
		s, err := history.NewStore(cfg.History.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	srv := server.NewServer(server.Config{
		Extractor:   extract.NewTabula(),
		Check:       cfg.Check,
		ProfilesDir: cfg.Profiles.Dir,
		Store:       store,
		Logger:      logger,
		Server:      cfg.Server,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		cancel()
	}()

	return srv.Serve(ctx)
}
