package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Corpus drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`            // current application environment (local, dev, production etc)
	TelegramAPIToken string `mapstructure:"-"`              // Telegram API token loaded from environment
	QuestionsPath    string `mapstructure:"questions_path"` // path to the bundled JSON question corpus
	Corpus           Corpus `mapstructure:"corpus"`         // where questions are served from
	DB               DB     `mapstructure:"database"`       // database configuration section
	SQLite           SQLite `mapstructure:"sqlite"`         // sqlite configuration section
	Quiz             Quiz   `mapstructure:"quiz"`           // game length and idle eviction
	HTTP             HTTP   `mapstructure:"http"`           // HTTP API listener
	Auth             Auth   `mapstructure:"auth"`           // player token signing
}

// Corpus selects the question backend.
type Corpus struct {
	Driver string `mapstructure:"driver"` // file, postgres or sqlite
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

type SQLite struct {
	Path string `mapstructure:"path"`
}

// Quiz holds game settings.
type Quiz struct {
	DefaultQuestions int           `mapstructure:"default_questions"`
	MinQuestions     int           `mapstructure:"min_questions"`
	MaxQuestions     int           `mapstructure:"max_questions"`
	IdleTTL          time.Duration `mapstructure:"idle_ttl"`         // games untouched this long are dropped
	JanitorSchedule  string        `mapstructure:"janitor_schedule"` // cron spec for idle eviction
}

type HTTP struct {
	Addr           string        `mapstructure:"addr"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type Auth struct {
	Secret   string        `mapstructure:"-"`         // HMAC key loaded from environment
	TokenTTL time.Duration `mapstructure:"token_ttl"` // lifetime of issued player tokens
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Token returns the Telegram bot token if it is configured.
func (c *Config) Token() (string, error) {
	if c.TelegramAPIToken == "" {
		return "", fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return c.TelegramAPIToken, nil
}

// Key returns the token signing key if it is configured.
func (a Auth) Key() ([]byte, error) {
	if a.Secret == "" {
		return nil, fmt.Errorf("%w: AUTH_SECRET", ErrMissingEnvironmentVariables)
	}
	return []byte(a.Secret), nil
}

// Load reads configuration from config files and environment variables.
// Values from a .env file in the working directory are loaded first and
// never override variables already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("questions_path", "assets/data/questions.json")
	v.SetDefault("corpus.driver", DriverFile)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("sqlite.path", "data/questions.db")
	v.SetDefault("quiz.default_questions", 8)
	v.SetDefault("quiz.min_questions", 5)
	v.SetDefault("quiz.max_questions", 30)
	v.SetDefault("quiz.idle_ttl", "2h")
	v.SetDefault("quiz.janitor_schedule", "@every 10m")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.request_timeout", "15s")
	v.SetDefault("auth.token_ttl", "24h")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("auth_secret", "AUTH_SECRET")
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
	cfg.Auth.Secret = v.GetString("auth_secret")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Corpus.Driver {
	case DriverFile, DriverSQLite:
	case DriverPostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: unknown corpus driver %q", ErrInvalidConfig, c.Corpus.Driver)
	}

	q := c.Quiz
	if q.MinQuestions < 1 || q.MinQuestions > q.MaxQuestions {
		return fmt.Errorf("%w: quiz question bounds %d..%d", ErrInvalidConfig, q.MinQuestions, q.MaxQuestions)
	}
	if q.DefaultQuestions < q.MinQuestions || q.DefaultQuestions > q.MaxQuestions {
		return fmt.Errorf("%w: default question count %d outside %d..%d", ErrInvalidConfig, q.DefaultQuestions, q.MinQuestions, q.MaxQuestions)
	}
	if q.IdleTTL <= 0 {
		return fmt.Errorf("%w: quiz idle ttl must be positive", ErrInvalidConfig)
	}

	return nil
}
