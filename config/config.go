package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Config struct {
	AppEnv      string
	Port        string
	FrontendURL string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	JWTSecret        string
	JWTExpiry        time.Duration
	RefreshEnabled   bool
	RefreshExpiry    time.Duration
	LoginRateLimit   int
	LoginRateWindow  time.Duration
	CORSAllowOrigins []string

	MailAPIKey string
	MailFrom   string

	CacheAddr     string
	CachePassword string
	CacheDB       int
	CacheTTL      time.Duration
}

var (
	instance *Config
	once     sync.Once
)

// Get membaca konfigurasi dari environment sekali, dengan default development.
func Get() *Config {
	once.Do(func() {
		instance = &Config{
			AppEnv:      getEnvAsString("APP_ENV", "development"),
			Port:        getEnvAsString("PORT", "8080"),
			FrontendURL: getEnvAsString("FRONTEND_URL", "http://localhost:3000"),

			DBUser:     getEnvAsString("DB_USER", "root"),
			DBPassword: getEnvAsString("DB_PASSWORD", ""),
			DBHost:     getEnvAsString("DB_HOST", "127.0.0.1"),
			DBPort:     getEnvAsString("DB_PORT", "3306"),
			DBName:     getEnvAsString("DB_NAME", "kafe_pos"),

			JWTSecret:       getEnvAsString("JWT_SECRET", "kafe-pos-dev-secret"),
			JWTExpiry:       getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
			RefreshEnabled:  getEnvAsBool("REFRESH_TOKEN_ENABLED", true),
			RefreshExpiry:   getEnvAsDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
			LoginRateLimit:  getEnvAsInt("LOGIN_RATE_LIMIT", 5),
			LoginRateWindow: getEnvAsDuration("LOGIN_RATE_WINDOW", time.Minute),
			CORSAllowOrigins: getEnvAsSlice("CORS_ALLOW_ORIGINS",
				[]string{"http://localhost:3000", "http://127.0.0.1:3000"}),

			MailAPIKey: getEnvAsString("MAIL_API_KEY", ""),
			MailFrom:   getEnvAsString("MAIL_FROM", "Kafe POS <no-reply@kafepos.local>"),

			CacheAddr:     getEnvAsString("CACHE_ADDR", ""),
			CachePassword: getEnvAsString("CACHE_PASSWORD", ""),
			CacheDB:       getEnvAsInt("CACHE_DB", 0),
			CacheTTL:      getEnvAsDuration("CACHE_TTL", 10*time.Minute),
		}
	})
	return instance
}

func IsProduction() bool {
	return Get().AppEnv == "production"
}

func getEnvAsString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvAsSlice(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
