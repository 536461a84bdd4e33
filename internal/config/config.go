package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultSecretsDir is where docker mounts secret files.
const DefaultSecretsDir = "/run/secrets"

// Config holds vn-server settings.
type Config struct {
	// Server
	Port        string   `envconfig:"SERVER_PORT" default:"8080"`
	BasePath    string   `envconfig:"SERVER_BASE_PATH" default:"/api"`
	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string   `envconfig:"LOG_ENCODING" default:"json"`
	LogDev      bool     `envconfig:"LOG_DEVELOPMENT" default:"false"` // caller и стектрейсы в логах
	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int32         `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"5m"`
	DBPassword    string        `ignored:"true"`

	// Redis backs the rate limiter. Empty address disables it.
	RedisAddr       string `envconfig:"REDIS_ADDR"`
	RedisDB         int    `envconfig:"REDIS_DB" default:"0"`
	RateLimitPerSec uint   `envconfig:"RATE_LIMIT_PER_SECOND" default:"5"`

	// RabbitMQ. Empty URL means events are dropped.
	RabbitMQURL      string        `envconfig:"RABBITMQ_URL"`
	EventsExchange   string        `envconfig:"GAMEPLAY_EVENTS_EXCHANGE" default:"gameplay_events"`
	RabbitMQAttempts int           `envconfig:"RABBITMQ_CONNECT_ATTEMPTS" default:"5"`
	RabbitMQDelay    time.Duration `envconfig:"RABBITMQ_CONNECT_DELAY" default:"5s"`

	JWTSecret string `ignored:"true"`

	// Story
	StartSceneID    string   `envconfig:"START_SCENE_ID" default:"chapter1_scene1"`
	ProtagonistID   string   `envconfig:"PROTAGONIST_ID" default:"hero"`
	NameTokens      []string `envconfig:"NAME_TOKENS" default:"이도훈,도훈"`
	StrictContent   bool     `envconfig:"STRICT_CONTENT" default:"false"`
	RequireIdemKey  bool     `envconfig:"REQUIRE_IDEMPOTENCY_KEY" default:"false"`
	RestoreAffinity bool     `envconfig:"RESTORE_AFFINITY_ON_LOAD" default:"false"`
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// RedactedDSN is GetDSN with the password masked, for logs.
func (c *Config) RedactedDSN() string {
	return fmt.Sprintf("postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig reads the environment, then the required secrets.
func LoadConfig() (*Config, error) {
	return load(DefaultSecretsDir)
}

func load(secretsDir string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load vn-server config: %w", err)
	}

	var err error
	cfg.DBPassword, err = readSecret(secretsDir, "db_password", "DB_PASSWORD")
	if err != nil {
		return nil, err
	}
	cfg.JWTSecret, err = readSecret(secretsDir, "jwt_secret", "JWT_SECRET")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.StartSceneID) == "" {
		return nil, errors.New("START_SCENE_ID must not be empty")
	}
	return &cfg, nil
}

// ReadSecret reads /run/secrets/<name>, falling back to the env variable envKey.
func ReadSecret(name, envKey string) (string, error) {
	return readSecret(DefaultSecretsDir, name, envKey)
}

func readSecret(dir, name, envKey string) (string, error) {
	filePath := filepath.Join(dir, name)
	secretBytes, err := os.ReadFile(filePath)
	if err == nil {
		secret := strings.TrimSpace(string(secretBytes))
		if secret == "" {
			return "", fmt.Errorf("secret file %s is empty", filePath)
		}
		return secret, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("secret %s not found in %s and %s is not set", name, dir, envKey)
}
