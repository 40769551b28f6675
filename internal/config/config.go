package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type CloudflareImagesConfig struct {
	AccountID string
	Token     string
	Hash      string // account hash used in imagedelivery.net URLs
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	ViewTTL  time.Duration
}

type Config struct {
	Env         string
	Port        string
	BasePath    string
	PublicURL   string
	CORSOrigins string

	DatabaseURL string

	JWTSecret  string
	SessionTTL time.Duration

	Redis RedisConfig

	StorageDriver    string // local, r2 or images
	UploadDir        string
	R2               R2Config
	CloudflareImages CloudflareImagesConfig

	AdminEmail    string
	AdminPassword string
}

const (
	StorageLocal  = "local"
	StorageR2     = "r2"
	StorageImages = "images"
)

func LoadConfig() *Config {
	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		BasePath:    strings.TrimRight(getEnv("BASE_PATH", ""), "/"),
		PublicURL:   strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		SessionTTL:  time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*7)) * time.Hour,
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
			ViewTTL:  time.Duration(getEnvInt("VIEW_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		StorageDriver: getEnv("STORAGE_DRIVER", StorageLocal),
		UploadDir:     getEnv("UPLOAD_DIR", "./public/uploads"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = strings.TrimRight(os.Getenv("R2_PUBLIC_URL"), "/")

	cfg.CloudflareImages.AccountID = os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	cfg.CloudflareImages.Token = os.Getenv("CLOUDFLARE_IMAGES_TOKEN")
	cfg.CloudflareImages.Hash = os.Getenv("CLOUDFLARE_IMAGES_HASH")

	return cfg
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be positive"))
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		errs = append(errs, fmt.Errorf("BASE_PATH must start with '/', got %q", c.BasePath))
	}

	switch c.StorageDriver {
	case StorageLocal:
		if c.UploadDir == "" {
			errs = append(errs, errors.New("UPLOAD_DIR is not set"))
		}
	case StorageR2:
		if c.R2.AccountID == "" || c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "" || c.R2.Bucket == "" {
			errs = append(errs, errors.New("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET are required for the r2 storage driver"))
		}
	case StorageImages:
		if c.CloudflareImages.AccountID == "" || c.CloudflareImages.Token == "" || c.CloudflareImages.Hash == "" {
			errs = append(errs, errors.New("CLOUDFLARE_ACCOUNT_ID, CLOUDFLARE_IMAGES_TOKEN and CLOUDFLARE_IMAGES_HASH are required for the images storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Path prefixes p with the configured base path.
func (c *Config) Path(p string) string {
	return c.BasePath + p
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
