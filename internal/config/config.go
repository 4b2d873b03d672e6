package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	minSecretLength = 32
)

// secrets shipped in example .env files
var placeholderSecrets = []string{
	"test",
	"your-secret-key",
	"your_super_secret_jwt_key_min_32_characters_change_this_in_production",
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	PublicURL  string
}

type Redis struct {
	Addr     string
	Password string
}

type RateLimit struct {
	Requests int
	Window   time.Duration
}

type Config struct {
	Environment         string
	ServerPort          int
	DatabaseURL         string
	MigrationsPath      string
	JWTSecretKey        string
	GoogleClientID      string
	CORSOrigin          string
	TrustProxy          bool
	MaxUploadSize       int64
	LogLevel            string
	ProfanityExtraWords []string
	MinIO               MinIO
	Redis               Redis
	RateLimit           RateLimit
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// StorageEnabled reports whether images go to object storage.
func (c *Config) StorageEnabled() bool {
	return c.MinIO.Endpoint != ""
}

func (c *Config) RateLimitEnabled() bool {
	return c.Redis.Addr != ""
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 30 * 1024 * 1024
	}
	return size
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", ""),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "memories"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", ""),
	}
}

// LoadConfig reads the environment (and .env when present) and validates it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment variables")
	}

	cfg := &Config{
		Environment:         getEnv("ENVIRONMENT", EnvDevelopment),
		ServerPort:          getEnvAsInt("SERVER_PORT", 5001),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		MigrationsPath:      getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
		JWTSecretKey:        getEnv("JWT_SECRET_KEY", ""),
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		CORSOrigin:          getEnv("CORS_ORIGIN", "http://localhost:3000"),
		TrustProxy:          getEnvBool("TRUST_PROXY", false),
		MaxUploadSize:       parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "31457280")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ProfanityExtraWords: getEnvList("PROFANITY_EXTRA_WORDS"),
		MinIO:               LoadMinIO(),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		RateLimit: RateLimit{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
			Window:   parseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"), 15*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate collects every missing or invalid variable into a single error.
func (c *Config) Validate() error {
	var missing, invalid []string

	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWTSecretKey == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	}

	if c.JWTSecretKey != "" {
		if len(c.JWTSecretKey) < minSecretLength {
			invalid = append(invalid, fmt.Sprintf("JWT_SECRET_KEY must be at least %d characters long", minSecretLength))
		}
		for _, placeholder := range placeholderSecrets {
			if c.JWTSecretKey == placeholder {
				invalid = append(invalid, "JWT_SECRET_KEY must be changed from default value")
				break
			}
		}
	}

	switch c.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		invalid = append(invalid, "ENVIRONMENT must be one of: development, production, test")
	}

	if c.DatabaseURL != "" &&
		!strings.HasPrefix(c.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		invalid = append(invalid, "DATABASE_URL must be a valid PostgreSQL connection string")
	}

	if c.RateLimit.Requests <= 0 {
		invalid = append(invalid, "RATE_LIMIT_REQUESTS must be positive")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, "; "))
	}

	return nil
}
