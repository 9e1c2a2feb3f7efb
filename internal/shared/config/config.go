package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultGeminiModels   = "gemini-pro,gemini-1.5-pro,gemini-2.0-flash,gemini-2.5-flash"
	defaultMaxPromptChars = 30000
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	Version          string
	DatabaseURL      string
	CORSAllowOrigins []string
	GeminiAPIKey     string
	GeminiModels     []string
	GeminiTimeout    time.Duration
	MaxPromptChars   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		Version:          getEnv("APP_VERSION", "1.0.0"),
		DatabaseURL:      dbURL,
		CORSAllowOrigins: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModels:     splitAndTrim(getEnv("GEMINI_MODELS", defaultGeminiModels)),
		GeminiTimeout:    getEnvSeconds("GEMINI_TIMEOUT_SECONDS", 60*time.Second),
		MaxPromptChars:   getEnvInt("MAX_PROMPT_CHARS", defaultMaxPromptChars),
	}
}

// IsDevLike reports whether the environment tolerates missing external deps.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid int %q, using default", key, raw)
		return def
	}
	return val
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid seconds %q, using default", key, raw)
		return def
	}
	return time.Duration(val) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
