package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	DBURL string

	JWTKey            string
	JWTIssuer         string
	JWTAudience       string
	AccessExpiryMin   int
	RefreshExpiryDays int
	ClockSkewMin      int
	CookieSecure      bool

	LoginMaxAttempts int
	LockoutMinutes   int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FrontendURL  string

	GoogleClientID    string
	FacebookAppID     string
	FacebookAppSecret string
}

func Load() *Config {
	env := getEnv("ENV", "development")

	// Optional per-environment file; real deployments inject plain env vars.
	if err := godotenv.Load("config/" + env + ".env"); err == nil {
		log.Printf("loaded configuration from config/%s.env", env)
	}

	return &Config{
		Env:               env,
		Port:              getEnv("PORT", "8080"),
		DBURL:             mustGetEnv("DB_URL"),
		JWTKey:            mustGetEnv("JWT_KEY"),
		JWTIssuer:         mustGetEnv("JWT_ISSUER"),
		JWTAudience:       mustGetEnv("JWT_AUDIENCE"),
		AccessExpiryMin:   getEnvAsInt("ACCESS_TOKEN_EXPIRY_MIN", 5),
		RefreshExpiryDays: getEnvAsInt("REFRESH_TOKEN_EXPIRY_DAYS", 30),
		ClockSkewMin:      getEnvAsInt("CLOCK_SKEW_MIN", 2),
		CookieSecure:      getEnvAsBool("COOKIE_SECURE", true),
		LoginMaxAttempts:  getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		LockoutMinutes:    getEnvAsInt("LOCKOUT_MINUTES", 15),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:4200"),
		GoogleClientID:    getEnv("GOOGLE_CLIENT_ID", ""),
		FacebookAppID:     getEnv("FACEBOOK_APP_ID", ""),
		FacebookAppSecret: getEnv("FACEBOOK_APP_SECRET", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
