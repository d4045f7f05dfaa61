package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Extract ExtractConfig
	Batch   BatchConfig
	Log     LogConfig
}

// ExtractConfig holds text-acquisition and extraction configuration
type ExtractConfig struct {
	PDFBackend       string        `validate:"oneof=auto pdftotext pdfcpu"`
	Pdftotext        string        `validate:"required"`
	PDFTimeout       time.Duration `validate:"gt=0"`
	XLSConverter     string        `validate:"omitempty,oneof=libreoffice soffice ssconvert"`
	ArtifactCacheDir string

	ScriptMaxPages   int `validate:"gt=0"`
	BudgetMaxPages   int `validate:"gt=0"`
	ScheduleMaxPages int `validate:"gt=0"`
	MaxChars         int `validate:"gt=0"`
	BudgetMaxRows    int `validate:"gt=0"`
	ScheduleMaxRows  int `validate:"gt=0"`

	StageFiles bool
}

// BatchConfig holds batch-run and output configuration
type BatchConfig struct {
	OutputDir       string `validate:"required"`
	CheckpointEvery int    `validate:"gt=0"`
	CheckpointFile  string `validate:"required"`
	FinalFile       string `validate:"required"`
	RewriteFrom     string
	RewriteTo       string `validate:"required_with=RewriteFrom"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `validate:"oneof=debug info warn error"`
	Format     string `validate:"oneof=json text"`
	File       string
	MaxSizeMB  int `validate:"gte=0"`
	MaxBackups int `validate:"gte=0"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			PDFBackend:       strings.ToLower(getEnv("PDF_BACKEND", "auto")),
			Pdftotext:        getEnv("PDFTOTEXT_BIN", "pdftotext"),
			PDFTimeout:       getEnvAsDuration("PDF_TIMEOUT", 30*time.Second),
			XLSConverter:     getEnv("XLS_CONVERTER", ""),
			ArtifactCacheDir: getEnv("ARTIFACT_CACHE_DIR", "./tmp"),
			ScriptMaxPages:   getEnvAsInt("SCRIPT_MAX_PAGES", 20),
			BudgetMaxPages:   getEnvAsInt("BUDGET_MAX_PAGES", 15),
			ScheduleMaxPages: getEnvAsInt("SCHEDULE_MAX_PAGES", 20),
			MaxChars:         getEnvAsInt("MAX_CHARS", 50000),
			BudgetMaxRows:    getEnvAsInt("BUDGET_MAX_ROWS", 200),
			ScheduleMaxRows:  getEnvAsInt("SCHEDULE_MAX_ROWS", 100),
			StageFiles:       getEnvAsBool("STAGE_FILES", true),
		},
		Batch: BatchConfig{
			OutputDir:       getEnv("OUTPUT_DIR", "./training-data"),
			CheckpointEvery: getEnvAsInt("CHECKPOINT_EVERY", 5),
			CheckpointFile:  getEnv("CHECKPOINT_FILE", "training_data_checkpoint.json"),
			FinalFile:       getEnv("FINAL_FILE", "training_data_complete.json"),
			RewriteFrom:     getEnv("REWRITE_FROM", ""),
			RewriteTo:       getEnv("REWRITE_TO", ""),
		},
		Log: LogConfig{
			Level:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 20),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
