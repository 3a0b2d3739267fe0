package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Tracking sheet backends
	Sheets SheetsConfig

	// Gemini LLM
	Gemini GeminiConfig

	// Interpretation engine tuning
	Engine EngineConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// SheetsConfig selects and configures the tracking-sheet backend. When
// SpreadsheetID is set the Google Sheets backend is used; otherwise the
// service falls back to the local CSV file at CSVPath.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsPath string
	CSVPath         string
	BackupDir       string
}

type GeminiConfig struct {
	APIKey   string
	Model    string
	Timezone string
}

// EngineConfig tunes interpretation behavior. Zero values fall back to
// the engine's built-in defaults.
type EngineConfig struct {
	DefaultStatus   string
	MinEffort       float64
	MaxEffort       float64
	MatchThreshold  float64
	MatchEpsilon    float64
	RateLimitPerMin int
	PendingTTL      time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Sheets
	cfg.Sheets.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	cfg.Sheets.SheetName = viper.GetString("sheets.sheet_name")
	cfg.Sheets.CredentialsPath = viper.GetString("sheets.credentials_path")
	cfg.Sheets.CSVPath = viper.GetString("sheets.csv_path")
	cfg.Sheets.BackupDir = viper.GetString("sheets.backup_dir")
	if sheetID := viper.GetString("sheet_id"); sheetID != "" {
		cfg.Sheets.SpreadsheetID = sheetID
	}
	if creds := viper.GetString("google_credentials"); creds != "" {
		cfg.Sheets.CredentialsPath = creds
	}

	// Gemini
	cfg.Gemini.APIKey = viper.GetString("gemini.api_key")
	cfg.Gemini.Model = viper.GetString("gemini.model")
	cfg.Gemini.Timezone = viper.GetString("gemini.timezone")
	if geminiKey := viper.GetString("gemini_api_key"); geminiKey != "" {
		cfg.Gemini.APIKey = geminiKey
	}

	// Engine
	cfg.Engine.DefaultStatus = viper.GetString("engine.default_status")
	cfg.Engine.MinEffort = viper.GetFloat64("engine.min_effort")
	cfg.Engine.MaxEffort = viper.GetFloat64("engine.max_effort")
	cfg.Engine.MatchThreshold = viper.GetFloat64("engine.match_threshold")
	cfg.Engine.MatchEpsilon = viper.GetFloat64("engine.match_epsilon")
	cfg.Engine.RateLimitPerMin = viper.GetInt("engine.rate_limit_per_min")
	cfg.Engine.PendingTTL = viper.GetDuration("engine.pending_ttl")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sheets.SpreadsheetID == "" && c.Sheets.CSVPath == "" {
		return fmt.Errorf("no sheet backend configured: set sheets.spreadsheet_id or sheets.csv_path")
	}
	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return fmt.Errorf("sheets.credentials_path is required when sheets.spreadsheet_id is set")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("sheets.sheet_name", "Sheet1")
	viper.SetDefault("sheets.csv_path", "journey.csv")
	viper.SetDefault("sheets.backup_dir", "backups")

	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.timezone", "UTC")

	viper.SetDefault("engine.rate_limit_per_min", 60)
	viper.SetDefault("engine.pending_ttl", "15m")
}
