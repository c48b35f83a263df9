package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the full service configuration, loaded from the environment.
type Config struct {
	Source struct {
		// Directory watched for clinical documents; the patient
		// spreadsheet lives in the same directory.
		Directory string
		ExcelFile string
		Worksheet string
	}

	Database struct {
		Driver   string // "sqlite3" (embedded file) or "postgres"
		Path     string // sqlite database file, used when Driver == "sqlite3"
		DSN      string // connection string, used when Driver == "postgres"
		MaxConns int
		MaxIdle  int
	}

	Poll struct {
		IntervalSeconds int
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads the configuration from environment variables, falling back to
// the reference deployment's defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Source.Directory = getEnv("SOURCE_DIR", "fichiers source")
	cfg.Source.ExcelFile = getEnv("EXCEL_FILE", "export_patient.xlsx")
	cfg.Source.Worksheet = getEnv("WORKSHEET_NAME", "Export Worksheet")

	cfg.Database.Driver = getEnv("DB_DRIVER", "sqlite3")
	cfg.Database.Path = getEnv("DB_PATH", "drwh.db")
	cfg.Database.DSN = getEnv("DB_DSN", "")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 0)
	cfg.Database.MaxIdle = getEnvInt("DB_MAX_IDLE", 0)

	cfg.Poll.IntervalSeconds = getEnvInt("POLL_INTERVAL_SECONDS", 30)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	if cfg.Database.Driver != "sqlite3" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.Database.Driver)
	}
	if cfg.Database.Driver == "postgres" && cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is required when DB_DRIVER=postgres")
	}
	if cfg.Poll.IntervalSeconds <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL_SECONDS must be positive")
	}

	return cfg, nil
}

// ExcelPath returns the full path of the patient spreadsheet.
func (c *Config) ExcelPath() string {
	return filepath.Join(c.Source.Directory, c.Source.ExcelFile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}
