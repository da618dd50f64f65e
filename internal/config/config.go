package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	JWTSecret string
	JWTExpiry time.Duration

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	OAuthCallbackURL   string

	// Frontend the OAuth callback redirects back to
	FrontendURL string

	// Server
	Port         string
	CORSOrigins  string
	CookieSecure bool
}

func Load() *Config {
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "fittrack")
	viper.SetDefault("DB_SSLMODE", "disable")

	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY", "24h")

	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("OAUTH_CALLBACK_URL", "http://localhost:8080")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3001")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3001")
	viper.SetDefault("COOKIE_SECURE", false)

	viper.AutomaticEnv()

	return &Config{
		DBHost:     viper.GetString("DB_HOST"),
		DBPort:     viper.GetString("DB_PORT"),
		DBUser:     viper.GetString("DB_USER"),
		DBPassword: viper.GetString("DB_PASSWORD"),
		DBName:     viper.GetString("DB_NAME"),
		DBSSLMode:  viper.GetString("DB_SSLMODE"),

		JWTSecret: viper.GetString("JWT_SECRET"),
		JWTExpiry: parseDuration(viper.GetString("JWT_EXPIRY")),

		GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
		OAuthCallbackURL:   viper.GetString("OAUTH_CALLBACK_URL"),
		FrontendURL:        viper.GetString("FRONTEND_URL"),

		Port:         viper.GetString("PORT"),
		CORSOrigins:  viper.GetString("CORS_ORIGINS"),
		CookieSecure: viper.GetBool("COOKIE_SECURE"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
