package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default daily quotas per LLM endpoint. Any endpoint not listed here falls
// back to DefaultLLMDailyLimit.
var defaultLLMLimits = map[string]int{
	"analyze_recipe":                   50,
	"analyze_ingredient_image":         30,
	"suggest_recipes_from_ingredients": 20,
	"extract_ingredients_from_recipes": 30,
	"analyze_ingredients":              40,
}

// Environment variable per endpoint, each independently overridable.
var llmLimitEnvVars = map[string]string{
	"analyze_recipe":                   "LLM_LIMIT_ANALYZE_RECIPE",
	"analyze_ingredient_image":         "LLM_LIMIT_ANALYZE_INGREDIENT_IMAGE",
	"suggest_recipes_from_ingredients": "LLM_LIMIT_SUGGEST_RECIPES",
	"extract_ingredients_from_recipes": "LLM_LIMIT_EXTRACT_INGREDIENTS",
	"analyze_ingredients":              "LLM_LIMIT_ANALYZE_INGREDIENTS",
}

// DefaultLLMDailyLimit is the conservative quota for endpoint names with no
// configured limit.
const DefaultLLMDailyLimit = 10

// Config holds application configuration. It is built once at startup and
// passed by reference; request-handling code never reads ambient env state.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret                  string
	JWTIssuer                  string
	AccessTokenExpiryDuration  time.Duration
	RefreshTokenExpiryDuration time.Duration

	CORSOrigins         []string
	MaxRequestBodyBytes int64

	LLMDailyLimits map[string]int

	GeminiAPIKey string
	GeminiModel  string

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and a .env file if
// present. A missing or short JWT_SECRET is a startup failure: the process
// must not serve traffic with a guessable signing key.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "mainmeal-api")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY_DURATION", "1h")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("MAX_REQUEST_BODY_BYTES", int64(10*1024*1024))
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required; set a secure random key of at least 32 characters")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(cfg.JWTSecret))
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	accessExpiryStr := viper.GetString("ACCESS_TOKEN_EXPIRY_DURATION")
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		accessExpiry = time.Hour
		log.Printf("Warning: Invalid value for ACCESS_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", accessExpiryStr, accessExpiry)
	}
	cfg.AccessTokenExpiryDuration = accessExpiry

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiry)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiry

	origins := strings.Split(viper.GetString("CORS_ORIGINS"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	cfg.CORSOrigins = origins

	cfg.MaxRequestBodyBytes = viper.GetInt64("MAX_REQUEST_BODY_BYTES")

	cfg.LLMDailyLimits = loadLLMLimits()

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. LLM-backed endpoints will be unavailable.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

// loadLLMLimits resolves per-endpoint daily quotas: env override first, then
// the built-in default. A malformed override falls back to the default rather
// than failing startup.
func loadLLMLimits() map[string]int {
	limits := make(map[string]int, len(defaultLLMLimits))
	for endpoint, def := range defaultLLMLimits {
		limits[endpoint] = def
		envVar := llmLimitEnvVars[endpoint]
		if envVar == "" {
			continue
		}
		if !viper.IsSet(envVar) {
			continue
		}
		v := viper.GetInt(envVar)
		if v <= 0 {
			log.Printf("Warning: Invalid value for %s. Keeping default %d.\n", envVar, def)
			continue
		}
		limits[endpoint] = v
	}
	return limits
}
