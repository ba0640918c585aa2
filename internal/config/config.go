package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Document store connection
	DocstoreURL    string
	DocstoreAPIKey string

	// Auth
	FormsAPIKey string

	// Document limits
	MaxDocumentBytes int64
	MaxImportBytes   int64

	// Import
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocstoreURL:    envOr("DOCSTORE_URL", "http://localhost:8080"),
		DocstoreAPIKey: os.Getenv("DOCSTORE_API_KEY"),

		FormsAPIKey: os.Getenv("FORMS_API_KEY"),

		MaxDocumentBytes: envInt64("MAX_DOCUMENT_BYTES", 1048576),  // 1MB
		MaxImportBytes:   envInt64("MAX_IMPORT_BYTES", 52428800),   // 50MB

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = 1048576
	}
	if cfg.MaxImportBytes <= 0 {
		cfg.MaxImportBytes = 52428800
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocstoreAPIKey == "" {
		return fmt.Errorf("DOCSTORE_API_KEY is required")
	}
	if c.FormsAPIKey == "" {
		return fmt.Errorf("FORMS_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
