package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	OAuth    OAuthConfig
	Frontend FrontendConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	AllowedEmailDomain    string
	BcryptCost            int
	SweepIntervalMinutes  int
	ExpiredCacheMaxSize   int
}

// OAuthConfig holds identity-provider credentials.
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	RedirectURL        string
}

// FrontendConfig holds the URLs the browser is sent back to after the
// identity-provider callback.
type FrontendConfig struct {
	BaseURL   string
	HomePath  string
	LoginPath string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "campus-backend"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			AllowedEmailDomain:    getEnv("AUTH_ALLOWED_EMAIL_DOMAIN", "@tecsup.edu.pe"),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			SweepIntervalMinutes:  getEnvAsInt("AUTH_SWEEP_INTERVAL_MINUTES", 60),
			ExpiredCacheMaxSize:   getEnvAsInt("AUTH_EXPIRED_CACHE_MAX_SIZE", 1000),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     os.Getenv("OAUTH_GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("OAUTH_GOOGLE_CLIENT_SECRET"),
			RedirectURL:        getEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/oauth2/callback/google"),
		},
		Frontend: FrontendConfig{
			BaseURL:   getEnv("FRONTEND_BASE_URL", "http://localhost:5173"),
			HomePath:  getEnv("FRONTEND_HOME_PATH", "/home"),
			LoginPath: getEnv("FRONTEND_LOGIN_PATH", "/"),
		},
	}

	// The signing secret must come from the environment outside development;
	// a baked-in fallback there would let anyone forge tokens.
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		if cfg.App.Env != "development" {
			return nil, fmt.Errorf("AUTH_JWT_SECRET must be set when APP_ENV=%s", cfg.App.Env)
		}
		cfg.Auth.JWTSecret = "dev-secret"
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// SweepInterval returns how often the revocation sweep runs.
func (a AuthConfig) SweepInterval() time.Duration {
	if a.SweepIntervalMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.SweepIntervalMinutes) * time.Minute
}

// HomeURL returns the absolute frontend home URL.
func (f FrontendConfig) HomeURL() string {
	return f.BaseURL + ensureLeadingSlash(f.HomePath)
}

// LoginURL returns the absolute frontend login URL.
func (f FrontendConfig) LoginURL() string {
	return f.BaseURL + ensureLeadingSlash(f.LoginPath)
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
