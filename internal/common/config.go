package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig
	PDF        PDFConfig
	LLM        LLMConfig
	History    HistoryConfig
}

// ExtractionConfig holds defaults for a single extraction run.
// CLI flags take precedence over these values.
type ExtractionConfig struct {
	Template       string
	CustomTemplate string
	Output         string
	Format         string
	Passes         int
	Workers        int
	Visualize      bool
	Verbose        bool
}

// PDFConfig holds text-extraction chain configuration
type PDFConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

// LLMConfig holds extraction-service configuration
type LLMConfig struct {
	Model         string
	OpenAIBaseURL string
	GeminiBaseURL string
	Temperature   float32
	Timeout       time.Duration
	MaxCharBuffer int
}

// HistoryConfig holds the run-history store configuration
type HistoryConfig struct {
	Path    string // sqlite file; empty disables history
	Enabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			Format: getEnv("PDFXTRACT_FORMAT", "json"),
			// zero means "inherit from the template settings"
			Passes:  getEnvAsInt("PDFXTRACT_PASSES", 0),
			Workers: getEnvAsInt("PDFXTRACT_WORKERS", 0),
		},
		PDF: PDFConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			MaxPages:  getEnvAsInt("PDFXTRACT_MAX_PAGES", 0),
		},
		LLM: LLMConfig{
			Model:         getEnv("PDFXTRACT_MODEL", "gemini-2.5-flash"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Temperature:   getEnvAsFloat32("PDFXTRACT_TEMPERATURE", 0.0),
			Timeout:       getEnvAsDuration("PDFXTRACT_TIMEOUT", 90*time.Second),
			MaxCharBuffer: getEnvAsInt("PDFXTRACT_MAX_CHAR_BUFFER", 1000),
		},
		History: HistoryConfig{
			Path:    getEnv("PDFXTRACT_HISTORY_DB", "pdfxtract-history.db"),
			Enabled: getEnv("PDFXTRACT_HISTORY", "1") != "0",
		},
	}
}

// fileConfig mirrors the YAML config file layout.
type fileConfig struct {
	Extraction struct {
		Template       string `yaml:"template"`
		CustomTemplate string `yaml:"custom_template"`
		Output         string `yaml:"output"`
		Format         string `yaml:"format"`
		Model          string `yaml:"model"`
		Passes         int    `yaml:"passes"`
		Workers        int    `yaml:"workers"`
		Visualize      bool   `yaml:"visualize"`
	} `yaml:"extraction"`
	Processing struct {
		Verbose       bool `yaml:"verbose"`
		MaxCharBuffer int  `yaml:"max_char_buffer"`
		MaxPages      int  `yaml:"max_pages"`
	} `yaml:"processing"`
	History struct {
		Path    string `yaml:"path"`
		Enabled *bool  `yaml:"enabled"`
	} `yaml:"history"`
}

// MergeConfigFile overlays a YAML config file onto c. Values present in the
// file replace the environment defaults; CLI flags are applied later and win.
func (c *Config) MergeConfigFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Extraction.Template != "" {
		c.Extraction.Template = fc.Extraction.Template
	}
	if fc.Extraction.CustomTemplate != "" {
		c.Extraction.CustomTemplate = fc.Extraction.CustomTemplate
	}
	if fc.Extraction.Output != "" {
		c.Extraction.Output = fc.Extraction.Output
	}
	if fc.Extraction.Format != "" {
		c.Extraction.Format = fc.Extraction.Format
	}
	if fc.Extraction.Model != "" {
		c.LLM.Model = fc.Extraction.Model
	}
	if fc.Extraction.Passes != 0 {
		c.Extraction.Passes = fc.Extraction.Passes
	}
	if fc.Extraction.Workers != 0 {
		c.Extraction.Workers = fc.Extraction.Workers
	}
	if fc.Extraction.Visualize {
		c.Extraction.Visualize = true
	}
	if fc.Processing.Verbose {
		c.Extraction.Verbose = true
	}
	if fc.Processing.MaxCharBuffer != 0 {
		c.LLM.MaxCharBuffer = fc.Processing.MaxCharBuffer
	}
	if fc.Processing.MaxPages != 0 {
		c.PDF.MaxPages = fc.Processing.MaxPages
	}
	if fc.History.Path != "" {
		c.History.Path = fc.History.Path
	}
	if fc.History.Enabled != nil {
		c.History.Enabled = *fc.History.Enabled
	}
	return nil
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

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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
