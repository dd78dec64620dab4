package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"go.uber.org/zap"

	"gradewise/internal/config"
	"gradewise/internal/convert"
	"gradewise/internal/handle"
	"gradewise/internal/llm"
	"gradewise/internal/llm/anthropic"
	"gradewise/internal/llm/gemini"
	"gradewise/internal/llm/openai"
	"gradewise/internal/report"
	"gradewise/internal/rubric"
	"gradewise/internal/standards"
	"gradewise/internal/storage"
	"gradewise/internal/store"
)

// buildEngines constructs the engine registry in the configured
// fallback order.
func buildEngines(cfg *config.Config) (*llm.Engines, error) {
	available := map[string]llm.Engine{
		"gpt":    openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		"gemini": gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		"claude": anthropic.New(cfg.AnthropicAPIKey, cfg.AnthropicModel),
	}
	var order []llm.Engine
	for _, name := range strings.Split(cfg.EngineOrder, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		eng, ok := available[name]
		if !ok {
			return nil, fmt.Errorf("unknown engine %q in ENGINE_ORDER", name)
		}
		order = append(order, eng)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("ENGINE_ORDER is empty")
	}
	return llm.NewEngines(order...), nil
}

func buildStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "dir":
		return storage.NewDir(cfg.PDFDir, cfg.BaseURL)
	case "s3":
		return storage.NewS3(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q: want dir or s3", cfg.StorageBackend)
	}
}

// buildHandle wires the full request pipeline. The returned DB is nil
// when history is disabled.
func buildHandle(cfg *config.Config, log *zap.Logger) (*handle.Handle, *sql.DB, error) {
	engines, err := buildEngines(cfg)
	if err != nil {
		return nil, nil, err
	}
	st, err := buildStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	rub, err := rubric.Load(cfg.RubricPath)
	if err != nil {
		return nil, nil, err
	}

	chain := llm.NewChain(engines, cfg.LLMRate, log)
	h := handle.New(chain, report.NewGenerator(st, log), rub, &standards.Dir{Path: cfg.StandardsDir}, log)
	h.MaxUpload = cfg.MaxUploadMB << 20
	h.Conv = &convert.Converter{Python: cfg.PythonBin, Script: cfg.ConvertScript}

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = openDB(cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		h.Repo = store.NewHistoryRepo(db)
	} else {
		log.Info("DATABASE_URL not set, history disabled")
	}
	return h, db, nil
}

func openDB(dsn string, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)
	log.Info("db configured")
	return db, nil
}
