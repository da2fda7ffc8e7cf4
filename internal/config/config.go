// internal/config/config.go
package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type NotionConfig struct {
	APIKey            string `mapstructure:"api_key"`
	DatabaseID        string `mapstructure:"database_id"`
	BaseURL           string `mapstructure:"base_url"`
	Version           string `mapstructure:"version"`
	PageSize          int    `mapstructure:"page_size"`
	MultiplicityField string `mapstructure:"multiplicity_field"`
}

type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type QuizConfig struct {
	Words             int    `mapstructure:"words"`
	RecentWords       int    `mapstructure:"recent_words"`
	RecentDays        int    `mapstructure:"recent_days"`
	Mode              string `mapstructure:"mode"`
	DecreaseOnCorrect bool   `mapstructure:"decrease_on_correct"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type Config struct {
	Notion   NotionConfig   `mapstructure:"notion"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("notion.base_url", DefaultNotionBaseURL)
	v.SetDefault("notion.version", DefaultNotionVersion)
	v.SetDefault("notion.page_size", DefaultNotionPageSize)
	v.SetDefault("notion.multiplicity_field", "Multiplicity")
	v.SetDefault("gemini.model", DefaultGeminiModel)
	v.SetDefault("gemini.base_url", DefaultGeminiBaseURL)
	v.SetDefault("gemini.timeout", DefaultGeminiTimeout)
	v.SetDefault("quiz.words", DefaultQuizWords)
	v.SetDefault("quiz.recent_words", 0)
	v.SetDefault("quiz.recent_days", 0)
	v.SetDefault("quiz.mode", DefaultQuizMode)
	v.SetDefault("quiz.decrease_on_correct", false)
	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.dir", DefaultLogDir)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type"})
	v.SetDefault("cors.max_age", 300)
}

// LoadConfig reads config.yaml (or config.json) from path or the working
// directory, then applies environment overrides. A missing file is not an
// error. The bare credential variables NOTION_API_KEY, NOTION_DATABASE_ID
// and GEMINI_API_KEY are honoured next to their APP_ prefixed forms.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("notion.api_key", "NOTION_API_KEY", "APP_NOTION_API_KEY")
	_ = v.BindEnv("notion.database_id", "NOTION_DATABASE_ID", "APP_NOTION_DATABASE_ID")
	_ = v.BindEnv("gemini.api_key", "GEMINI_API_KEY", "APP_GEMINI_API_KEY")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("Error reading config file", slog.Any("error", err))
			return nil, err
		}
		slog.Warn("Config file not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("Error unmarshalling config", slog.Any("error", err))
		return nil, err
	}

	if cfg.Notion.PageSize <= 0 || cfg.Notion.PageSize > DefaultNotionPageSize {
		slog.Warn("Notion page size out of range, using default", slog.Int("page_size", cfg.Notion.PageSize))
		cfg.Notion.PageSize = DefaultNotionPageSize
	}
	if cfg.Quiz.Words <= 0 {
		cfg.Quiz.Words = DefaultQuizWords
	}
	if cfg.Notion.APIKey == "" || cfg.Notion.DatabaseID == "" {
		slog.Warn("Notion credentials are not set")
	}

	slog.Debug("Config loaded",
		slog.String("config_file", v.ConfigFileUsed()),
		slog.String("server_port", cfg.Server.Port),
		slog.String("database_url", cfg.Database.URL),
		slog.String("gemini_model", cfg.Gemini.Model),
	)
	return &cfg, nil
}
