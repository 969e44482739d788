package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// Storage
	UploadDir   string
	VectorDBDir string
	MaxFileSize int64

	// Ingestion
	ChunkSize int

	// Gemini
	GeminiAPIKey          string
	GeminiModel           string
	GoogleEmbeddingsModel string
	GeminiTier            string

	// Optional features
	WebSearchEnabled bool
	TracingEnabled   bool
	OTLPEndpoint     string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ","),

		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		VectorDBDir: getEnv("VECTOR_DB_DIR", "chroma_db"),
		MaxFileSize: getEnvInt64("MAX_FILE_SIZE", 104857600), // 100MB

		ChunkSize: getEnvInt("CHUNK_SIZE", 1000),

		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GoogleEmbeddingsModel: getEnv("GOOGLE_EMBEDDINGS_MODEL", "text-embedding-004"),
		GeminiTier:            getEnv("GEMINI_TIER", "free"),

		WebSearchEnabled: getEnvBool("WEB_SEARCH_ENABLED", false),
		TracingEnabled:   getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:     getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
