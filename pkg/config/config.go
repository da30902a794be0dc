package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API   APIConfig
	Cache CacheConfig
	Auth  AuthConfig
	Log   LogConfig
}

// APIConfig points the transport adapter at the remote records service.
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// CacheConfig tunes per-entity staleness windows.
type CacheConfig struct {
	TTL         time.Duration
	SubjectsTTL time.Duration
}

// AuthConfig locates the durable credential.
type AuthConfig struct {
	TokenPath string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; the environment alone may carry the
		// configuration.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL:    strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout:    parseDuration(v.GetString("API_TIMEOUT"), 15*time.Second),
		RetryCount: v.GetInt("API_RETRY_COUNT"),
	}

	cfg.Cache = CacheConfig{
		TTL:         parseDuration(v.GetString("CACHE_TTL"), time.Minute),
		SubjectsTTL: parseDuration(v.GetString("CACHE_SUBJECTS_TTL"), 5*time.Minute),
	}

	cfg.Auth = AuthConfig{
		TokenPath: v.GetString("TOKEN_PATH"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures required settings are present.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if c.API.RetryCount < 0 {
		return errors.New("API_RETRY_COUNT must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("API_TIMEOUT", "15s")
	v.SetDefault("API_RETRY_COUNT", 1)
	v.SetDefault("CACHE_TTL", "1m")
	v.SetDefault("CACHE_SUBJECTS_TTL", "5m")
	v.SetDefault("TOKEN_PATH", ".unirecords_token")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
