package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all externally supplied settings. Loaded once at startup,
// after godotenv has populated the environment.
type Config struct {
	Env  string
	Port string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	MaxLoginAttempts int
	LockoutDuration  time.Duration

	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
	PresenceTTL          time.Duration

	AllowedEmailDomains []string
	RequireUniEmail     bool

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	AppBaseURL   string
}

func Load() *Config {
	return &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		JWTSecret:        getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "dev_refresh_secret_change_me"),
		AccessTokenTTL:   getDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		RefreshTokenTTL:  getDuration("JWT_REFRESH_EXPIRES_IN", 30*24*time.Hour),

		MaxLoginAttempts: getInt("MAX_LOGIN_ATTEMPTS", 5),
		LockoutDuration:  getDuration("ACCOUNT_LOCKOUT_DURATION", 30*time.Minute),

		VerificationTokenTTL: getDuration("VERIFICATION_TOKEN_TTL", 24*time.Hour),
		ResetTokenTTL:        getDuration("RESET_TOKEN_TTL", time.Hour),
		PresenceTTL:          getDuration("PRESENCE_TTL", time.Hour),

		AllowedEmailDomains: getList("UNIVERSITY_EMAIL_DOMAINS", []string{"bowenuniversity.edu.ng"}),
		RequireUniEmail:     getEnv("REQUIRE_EDU_EMAIL", "false") == "true",

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "Bowen Hooks <no-reply@bowenhooks.app>"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

// IsProduction reports whether the app runs with production hardening
// (secure cookies, no error detail in responses).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(p, "@"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
