package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string      `mapstructure:"env"`              // current application environment (local, dev, prod etc)
	LogLevel         string      `mapstructure:"log_level"`        // zap level, empty keeps the environment default
	TelegramAPIToken string      `mapstructure:"-"`                // Telegram API token loaded from environment
	TestsPath        string      `mapstructure:"tests_path"`       // path to YAML file with question sets
	PresentationURL  string      `mapstructure:"presentation_url"` // link offered on the registration form
	Quiz             Quiz        `mapstructure:"quiz"`             // screen flow settings
	Assets           Assets      `mapstructure:"assets"`           // certificate template and fonts
	Certificate      Certificate `mapstructure:"certificate"`      // certificate page geometry
	HTTP             HTTP        `mapstructure:"http"`             // static asset server
	DB               DB          `mapstructure:"database"`         // database configuration section
}

// Quiz contains screen flow timing.
type Quiz struct {
	AnswerDelay     time.Duration `mapstructure:"answer_delay"`     // pause after an answer before the next question
	SessionTTL      time.Duration `mapstructure:"session_ttl"`      // idle time after which a session is dropped
	JanitorSchedule string        `mapstructure:"janitor_schedule"` // cron spec for idle session sweeps
}

// Assets tells the certificate generator where to fetch its files from.
type Assets struct {
	Dir          string        `mapstructure:"dir"`           // local directory with assets
	BaseURL      string        `mapstructure:"base_url"`      // if set, assets are fetched over HTTP
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // per-request timeout for HTTP fetches
}

// Certificate contains the template page size in points.
type Certificate struct {
	PageWidth  float64 `mapstructure:"page_width"`
	PageHeight float64 `mapstructure:"page_height"`
}

// HTTP configures the static asset server.
type HTTP struct {
	Addr string `mapstructure:"addr"` // listen address, empty disables the server
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether a database is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// RequireTelegram checks that the bot token is present.
func (c *Config) RequireTelegram() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("TELEGRAM_API_TOKEN: %w", ErrMissingEnvironmentVariables)
	}
	return nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Values from .env never override the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("tests_path", "assets/data/tests.yaml")
	v.SetDefault("presentation_url", "")
	v.SetDefault("quiz.answer_delay", "200ms")
	v.SetDefault("quiz.session_ttl", "24h")
	v.SetDefault("quiz.janitor_schedule", "@every 10m")
	v.SetDefault("assets.dir", "assets/public")
	v.SetDefault("assets.base_url", "")
	v.SetDefault("assets.fetch_timeout", "10s")
	v.SetDefault("certificate.page_width", 841.89) // A4 landscape, used when the template has no MediaBox
	v.SetDefault("certificate.page_height", 595.28)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.max_connections", 5)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if cfg.Certificate.PageWidth <= 0 || cfg.Certificate.PageHeight <= 0 {
		return nil, fmt.Errorf("certificate page size must be positive, got %vx%v",
			cfg.Certificate.PageWidth, cfg.Certificate.PageHeight)
	}

	return &cfg, nil
}
