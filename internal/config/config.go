package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"` // current application environment (local, dev, prod etc)
	TelegramAPIToken string `mapstructure:"-"`   // Telegram API token loaded from environment
	GeminiAPIKey     string `mapstructure:"-"`   // Gemini API key loaded from environment; empty disables the provider
	DB               DB     `mapstructure:"database"` // database configuration section
	Game             Game   `mapstructure:"game"`     // game policy section
}

// DB contains database-related configuration parameters. An empty URL is
// allowed: the bot then runs with in-memory persistence only.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Game contains game policy parameters.
type Game struct {
	TimerEnabled        bool          `mapstructure:"timer_enabled"`         // per-question countdown on by default
	SuspenseDelay       time.Duration `mapstructure:"suspense_delay"`        // delay between answer selection and reveal
	AdvanceDelay        time.Duration `mapstructure:"advance_delay"`         // delay between a correct reveal and the next question
	LossDelay           time.Duration `mapstructure:"loss_delay"`            // delay between a wrong reveal and game over
	WinDelay            time.Duration `mapstructure:"win_delay"`             // delay after winning the top prize
	ResetWinsWindow     time.Duration `mapstructure:"reset_wins_window"`     // confirmation window for resetting the record
	PhoneFriendAccuracy float64       `mapstructure:"phone_friend_accuracy"` // probability the phone-a-friend suggestion is right
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("game.timer_enabled", true)
	v.SetDefault("game.suspense_delay", "3s")
	v.SetDefault("game.advance_delay", "2s")
	v.SetDefault("game.loss_delay", "3s")
	v.SetDefault("game.win_delay", "5s")
	v.SetDefault("game.reset_wins_window", "10s")
	v.SetDefault("game.phone_friend_accuracy", 0.85)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
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
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	// Both of these are optional: without a key the bot plays from the bank
	// and the fallback set, without a database nothing survives a restart.
	cfg.GeminiAPIKey = v.GetString("gemini_api_key")
	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}
