package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	BaseURL string

	LogStyle string
	LogLevel string

	// Storage for finished reports: "dir" or "s3".
	StorageBackend string
	PDFDir         string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3UseSSL       bool

	DatabaseURL string

	OpenAIAPIKey    string
	OpenAIModel     string
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	// Comma-separated fallback order, e.g. "gpt,gemini,claude".
	EngineOrder string
	LLMRate     float64

	TelegramBotToken string
	WebhookURL       string

	RubricPath   string
	StandardsDir string

	ConvertScript string
	PythonBin     string
	MaxUploadMB   int64
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8000"),
		BaseURL: getEnv("BASE_URL", ""),

		LogStyle: getEnv("LOG_STYLE", "terminal"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageBackend: getEnv("STORAGE_BACKEND", "dir"),
		PDFDir:         getEnv("PDF_DIR", "pdfs"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3Bucket:       getEnv("S3_BUCKET", "gradewise-reports"),
		S3UseSSL:       getEnvBool("S3_USE_SSL", true),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		EngineOrder: getEnv("ENGINE_ORDER", "gpt,gemini,claude"),
		LLMRate:     getEnvFloat("LLM_RATE", 2),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),

		RubricPath:   getEnv("RUBRIC_PATH", "rubric.json"),
		StandardsDir: getEnv("STANDARDS_DIR", "standards"),

		ConvertScript: getEnv("CONVERT_SCRIPT", "scripts/convert_pdf.py"),
		PythonBin:     getEnv("PYTHON_BIN", "python3"),
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 10),
	}
}

// MustTelegram returns the bot token, exiting when it is not set. The
// bot subcommand cannot run without it.
func (c *Config) MustTelegram() string {
	if c.TelegramBotToken == "" {
		return mustEnv("TELEGRAM_BOT_TOKEN")
	}
	return c.TelegramBotToken
}
