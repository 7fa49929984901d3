// Package config reads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"homeinventory/internal/assist"
	"homeinventory/internal/blob"
	"homeinventory/internal/core"
)

// Config is the typed view of the INVENTORY_* variables.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	StorageDriver core.StorageDriver
	SQLitePath    string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	BlobDriver     blob.Driver
	BlobFSRoot     string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3PathStyle    bool
	S3AccessKey    string
	S3SecretKey    string
	S3SessionToken string

	LogLevel  string
	LogFormat string

	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiModel      string
	GeminiTimeout    time.Duration
	GeminiMaxRetries int
}

// Load applies envFiles (default ".env", silently skipped when absent) and
// then reads the environment. Variables already set win over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}

	var p parser
	cfg := Config{
		HTTPAddr:        getEnv("INVENTORY_HTTP_ADDR", ":8080"),
		ShutdownTimeout: p.duration("INVENTORY_SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     splitList(getEnv("INVENTORY_CORS_ORIGINS", "*")),

		StorageDriver: core.StorageDriver(strings.ToLower(getEnv("INVENTORY_STORAGE_DRIVER", string(core.StorageSQLite)))),
		SQLitePath:    getEnv("INVENTORY_SQLITE_PATH", "inventory.db"),
		PostgresDSN:   getEnv("INVENTORY_POSTGRES_DSN", "postgres://localhost/inventory?sslmode=disable"),
		RedisAddr:     getEnv("INVENTORY_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("INVENTORY_REDIS_PASSWORD"),
		RedisDB:       p.integer("INVENTORY_REDIS_DB", 0),
		RedisPrefix:   os.Getenv("INVENTORY_REDIS_PREFIX"),

		BlobDriver:     blob.Driver(strings.ToLower(getEnv("INVENTORY_BLOB_DRIVER", string(blob.DriverFilesystem)))),
		BlobFSRoot:     getEnv("INVENTORY_BLOB_FS_ROOT", "./blobdata"),
		S3Bucket:       os.Getenv("INVENTORY_BLOB_S3_BUCKET"),
		S3Region:       getEnv("INVENTORY_BLOB_S3_REGION", "us-east-1"),
		S3Endpoint:     os.Getenv("INVENTORY_BLOB_S3_ENDPOINT"),
		S3PathStyle:    p.boolean("INVENTORY_BLOB_S3_PATH_STYLE", false),
		S3AccessKey:    os.Getenv("INVENTORY_BLOB_S3_ACCESS_KEY_ID"),
		S3SecretKey:    os.Getenv("INVENTORY_BLOB_S3_SECRET_ACCESS_KEY"),
		S3SessionToken: os.Getenv("INVENTORY_BLOB_S3_SESSION_TOKEN"),

		LogLevel:  strings.ToLower(getEnv("INVENTORY_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("INVENTORY_LOG_FORMAT", "json")),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiBaseURL:    getEnv("INVENTORY_GEMINI_BASE_URL", assist.DefaultBaseURL),
		GeminiModel:      getEnv("INVENTORY_GEMINI_MODEL", assist.DefaultModel),
		GeminiTimeout:    p.duration("INVENTORY_GEMINI_TIMEOUT", 30*time.Second),
		GeminiMaxRetries: p.integer("INVENTORY_GEMINI_MAX_RETRIES", 2),
	}
	if err := p.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// StorageOptions returns the key/value backend settings.
func (c Config) StorageOptions() core.StorageOptions {
	return core.StorageOptions{
		Driver:        c.StorageDriver,
		SQLitePath:    c.SQLitePath,
		PostgresDSN:   c.PostgresDSN,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	}
}

// BlobConfig returns the archive backend settings.
func (c Config) BlobConfig() blob.Config {
	return blob.Config{
		Driver: c.BlobDriver,
		FSRoot: c.BlobFSRoot,
		S3: blob.S3Config{
			Bucket:          c.S3Bucket,
			Region:          c.S3Region,
			Endpoint:        c.S3Endpoint,
			PathStyle:       c.S3PathStyle,
			AccessKeyID:     c.S3AccessKey,
			SecretAccessKey: c.S3SecretKey,
			SessionToken:    c.S3SessionToken,
		},
	}
}

// AssistOptions returns the Gemini client settings.
func (c Config) AssistOptions(logger *zap.Logger) assist.GeminiOptions {
	return assist.GeminiOptions{
		APIKey:     c.GeminiAPIKey,
		BaseURL:    c.GeminiBaseURL,
		Model:      c.GeminiModel,
		Timeout:    c.GeminiTimeout,
		MaxRetries: c.GeminiMaxRetries,
		Logger:     logger,
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser collects conversion failures so Load reports all of them at once.
type parser struct {
	errs []error
}

func (p *parser) integer(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (p *parser) boolean(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (p *parser) err() error {
	return errors.Join(p.errs...)
}
