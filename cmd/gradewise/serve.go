package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gradewise/internal/config"
	"gradewise/internal/httpserver"
	"gradewise/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := logging.NewLogger(logging.Style(cfg.LogStyle), cfg.LogLevel)
		defer log.Sync()

		// Prefer platform PORT env var; fallback to cfg.Port.
		if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
			cfg.Port = p
		} else if strings.TrimSpace(cfg.Port) == "" {
			cfg.Port = "8000"
		}

		h, db, err := buildHandle(cfg, log)
		if err != nil {
			return err
		}
		if db != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return err
			}
			if err := h.Repo.Init(ctx); err != nil {
				return err
			}
			log.Info("db connected")
		}

		pdfDir := ""
		if cfg.StorageBackend == "dir" {
			pdfDir = cfg.PDFDir
		}
		mux := httpserver.New(httpserver.Options{
			Handle: h,
			PDFDir: pdfDir,
			DB:     db,
			Log:    log,
		})
		log.Info("gradewise api starting", zap.String("port", cfg.Port))
		return httpserver.Start(":"+cfg.Port, mux, log)
	},
}
