package config

import (
	"errors"
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
	Env       string
	Port      int
	APIPrefix string

	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	Sites   SitesConfig
	Booking BookingConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SitesConfig locates the per-site JSON configuration documents.
type SitesConfig struct {
	Dir string
}

// BookingConfig tunes the booking subsystem: session lifetime, the external
// submission collaborator, and the availability cache.
type BookingConfig struct {
	SessionTTL      time.Duration
	SubmitURL       string
	SubmitTimeout   time.Duration
	SubmitMock      bool
	SubmitMockDelay time.Duration
	CacheEnabled    bool
	AvailabilityTTL time.Duration
	CalendarGridTTL time.Duration
	SessionSweep    time.Duration
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
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Sites = SitesConfig{
		Dir: v.GetString("SITES_CONFIG_DIR"),
	}

	cfg.Booking = BookingConfig{
		SessionTTL:      parseDuration(v.GetString("BOOKING_SESSION_TTL"), 30*time.Minute),
		SubmitURL:       v.GetString("BOOKING_SUBMIT_URL"),
		SubmitTimeout:   parseDuration(v.GetString("BOOKING_SUBMIT_TIMEOUT"), 10*time.Second),
		SubmitMock:      v.GetBool("BOOKING_SUBMIT_MOCK"),
		SubmitMockDelay: parseDuration(v.GetString("BOOKING_SUBMIT_MOCK_DELAY"), 400*time.Millisecond),
		CacheEnabled:    v.GetBool("BOOKING_CACHE_ENABLED"),
		AvailabilityTTL: parseDuration(v.GetString("BOOKING_AVAILABILITY_CACHE_TTL"), 5*time.Minute),
		CalendarGridTTL: parseDuration(v.GetString("BOOKING_CALENDAR_CACHE_TTL"), 5*time.Minute),
		SessionSweep:    parseDuration(v.GetString("BOOKING_SESSION_SWEEP_INTERVAL"), 5*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SITES_CONFIG_DIR", "configs/sites")

	v.SetDefault("BOOKING_SESSION_TTL", "30m")
	v.SetDefault("BOOKING_SUBMIT_URL", "")
	v.SetDefault("BOOKING_SUBMIT_TIMEOUT", "10s")
	v.SetDefault("BOOKING_SUBMIT_MOCK", true)
	v.SetDefault("BOOKING_SUBMIT_MOCK_DELAY", "400ms")
	v.SetDefault("BOOKING_CACHE_ENABLED", false)
	v.SetDefault("BOOKING_AVAILABILITY_CACHE_TTL", "5m")
	v.SetDefault("BOOKING_CALENDAR_CACHE_TTL", "5m")
	v.SetDefault("BOOKING_SESSION_SWEEP_INTERVAL", "5m")
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

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
