package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// UploadsDir is the root under which book PDFs are stored. Paths
	// persisted in the database are relative to the working directory.
	UploadsDir string

	// External OAuth Providers
	GoogleClientID       string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL    string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FacebookClientID     string `mapstructure:"FACEBOOK_CLIENT_ID"`
	FacebookClientSecret string `mapstructure:"FACEBOOK_CLIENT_SECRET"`
	FacebookRedirectURL  string `mapstructure:"FACEBOOK_REDIRECT_URL"`

	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`
	PosthogAPIKey      string `mapstructure:"POSTHOG_API_KEY"`
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "bookshare-backend")
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FACEBOOK_CLIENT_ID", "")
	viper.SetDefault("FACEBOOK_CLIENT_SECRET", "")
	viper.SetDefault("FACEBOOK_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 24 * 7 // mirror the original 7d token lifetime
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.UploadsDir = viper.GetString("UPLOADS_DIR")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FacebookClientID = viper.GetString("FACEBOOK_CLIENT_ID")
	cfg.FacebookClientSecret = viper.GetString("FACEBOOK_CLIENT_SECRET")
	cfg.FacebookRedirectURL = viper.GetString("FACEBOOK_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.CORSAllowedOrigins = strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",")

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: Google OAuth environment variables not fully set. Google login will not function.")
	}
	if cfg.FacebookClientID == "" || cfg.FacebookClientSecret == "" || cfg.FacebookRedirectURL == "" {
		log.Println("Warning: Facebook OAuth environment variables not fully set. Facebook login will not function.")
	}

	return cfg, nil
}
