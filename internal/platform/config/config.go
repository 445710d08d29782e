package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// External OAuth providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables take precedence over .env values.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "peraplan-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if !cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiryDuration, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiryDuration = 7 * 24 * time.Hour
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiryDuration)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiryDuration
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: Google OAuth environment variables incomplete. Google login will not function.")
	}

	return cfg, nil
}
