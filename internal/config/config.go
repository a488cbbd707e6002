package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the portfolio server.
type Config struct {
	ServerPort    int
	LogLevel      string
	SentryDSN     string
	Environment   string
	ShutdownGrace time.Duration

	DataBackend     string
	SupabaseURL     string
	SupabaseAnonKey string
	DBPath          string
	AdminEmail      string
	AdminPassword   string
	JWTSecret       string

	SessionStore  string
	RedisAddr     string
	SessionTTL    time.Duration
	SecureCookies bool

	RateLimitRequests int64
	RateLimitPeriod   time.Duration
	AllowedOrigins    []string
	SuccessBannerTTL  time.Duration
}

const (
	defaultServerPort        = 8080
	defaultLogLevel          = "info"
	defaultEnvironment       = "development"
	defaultShutdownGrace     = 10 * time.Second
	defaultDBPath            = "./data/portfolio.db"
	defaultSessionStore      = "memory"
	defaultSessionTTL        = 24 * time.Hour
	defaultRateLimitRequests = 20
	defaultRateLimitPeriod   = time.Minute
	defaultSuccessBannerTTL  = 3 * time.Second
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", defaultLogLevel),
		SentryDSN:       os.Getenv("SENTRY_DSN"),
		Environment:     getEnv("ENV", defaultEnvironment),
		ShutdownGrace:   defaultShutdownGrace,
		DataBackend:     strings.ToLower(os.Getenv("DATA_BACKEND")),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		DBPath:          getEnv("DB_PATH", defaultDBPath),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		SessionStore:    strings.ToLower(getEnv("SESSION_STORE", defaultSessionStore)),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		AllowedOrigins:  parseList(os.Getenv("ALLOWED_ORIGINS")),
	}

	portValue := getEnv("SERVER_PORT", strconv.Itoa(defaultServerPort))
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid SERVER_PORT value: %s", portValue)
	}
	cfg.ServerPort = port

	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.RateLimitPeriod, err = durationEnv("RATE_LIMIT_PERIOD", defaultRateLimitPeriod); err != nil {
		return nil, err
	}
	if cfg.SuccessBannerTTL, err = durationEnv("SUCCESS_BANNER_TTL", defaultSuccessBannerTTL); err != nil {
		return nil, err
	}

	requestsValue := getEnv("RATE_LIMIT_REQUESTS", strconv.Itoa(defaultRateLimitRequests))
	requests, err := strconv.ParseInt(requestsValue, 10, 64)
	if err != nil || requests <= 0 {
		return nil, eris.Errorf("invalid RATE_LIMIT_REQUESTS value: %s", requestsValue)
	}
	cfg.RateLimitRequests = requests

	secureValue := getEnv("COOKIE_SECURE", strconv.FormatBool(cfg.Environment == "production"))
	secure, err := strconv.ParseBool(secureValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid COOKIE_SECURE value: %s", secureValue)
	}
	cfg.SecureCookies = secure

	switch cfg.SessionStore {
	case "memory":
	case "redis":
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return nil, eris.New("REDIS_ADDR is required when SESSION_STORE is redis")
		}
	default:
		return nil, eris.Errorf("invalid SESSION_STORE value: %s", cfg.SessionStore)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	if value <= 0 {
		return 0, eris.Errorf("%s must be positive, got %s", key, raw)
	}
	return value, nil
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
