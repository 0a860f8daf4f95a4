package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	ResetTokenTTL      time.Duration
	VerifyCodeTTL      time.Duration
	VerifyResendWindow time.Duration

	// VerifyDevBypass accepts the fixed development verification code.
	// Off unless explicitly enabled; never enable in production.
	VerifyDevBypass bool

	SecureCookies bool

	SMTPURL     string
	MailAddress string
	MailName    string
	MailSkipTLS bool

	AuthRatePerMin int

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/mangahub?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:          getEnv("JWT_SECRET", "change-me"),
		AccessTokenTTL:     getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:    getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		ResetTokenTTL:      getEnvDuration("RESET_TOKEN_TTL", time.Hour),
		VerifyCodeTTL:      getEnvDuration("VERIFY_CODE_TTL", 24*time.Hour),
		VerifyResendWindow: getEnvDuration("VERIFY_RESEND_WINDOW", time.Minute),

		VerifyDevBypass: getEnvBool("VERIFY_DEV_BYPASS", false),

		SecureCookies: getEnvBool("SECURE_COOKIES", false),

		SMTPURL:     os.Getenv("SMTP_URL"),
		MailAddress: getEnv("MAIL_ADDRESS", "noreply@mangahub.local"),
		MailName:    getEnv("MAIL_NAME", "MangaHub"),
		MailSkipTLS: getEnvBool("MAIL_SKIP_TLS_VERIFY", false),

		AuthRatePerMin: getEnvInt("AUTH_RATE_PER_MIN", 20),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
