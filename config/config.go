package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking rules.
	HoldTTLMinutes       int    `mapstructure:"HOLD_TTL_MINUTES"`
	DefaultTimezone      string `mapstructure:"DEFAULT_TIMEZONE"`
	ExperienceCacheSize  int    `mapstructure:"EXPERIENCE_CACHE_SIZE"`
	BookingLookaheadDays int    `mapstructure:"BOOKING_LOOKAHEAD_DAYS"`
	CheckInOpenMinutes   int    `mapstructure:"CHECKIN_OPEN_MINUTES"`

	// Comma separated proxy addresses or CIDRs allowed to set client IP headers.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "chequered")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("HOLD_TTL_MINUTES", 10)
	viper.SetDefault("DEFAULT_TIMEZONE", "Europe/Rome")
	viper.SetDefault("EXPERIENCE_CACHE_SIZE", 128)
	viper.SetDefault("BOOKING_LOOKAHEAD_DAYS", 2)
	viper.SetDefault("CHECKIN_OPEN_MINUTES", 15)
	viper.SetDefault("TRUSTED_PROXIES", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// HoldTTL is how long a slot hold keeps capacity reserved.
func HoldTTL() time.Duration {
	if AppConfig.HoldTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(AppConfig.HoldTTLMinutes) * time.Minute
}

// CheckInOpenBefore is how long before a slot starts the gate accepts its tickets.
func CheckInOpenBefore() time.Duration {
	if AppConfig.CheckInOpenMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(AppConfig.CheckInOpenMinutes) * time.Minute
}

// TrustedProxyList splits TRUSTED_PROXIES; an empty list trusts no proxy.
func TrustedProxyList() []string {
	var out []string
	for _, p := range strings.Split(AppConfig.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DefaultLocation resolves DEFAULT_TIMEZONE, falling back to UTC.
func DefaultLocation() *time.Location {
	if AppConfig.DefaultTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
