package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	// Tokens
	AccessSecretKey           string `envconfig:"ACCESS_SECRET_KEY" required:"true"`
	RefreshSecretKey          string `envconfig:"REFRESH_SECRET_KEY" required:"true"`
	Algorithm                 string `envconfig:"ALGORITHM" default:"HS256"`
	AccessTokenExpireMinutes  int    `envconfig:"ACCESS_TOKEN_EXPIRE_MINUTES" default:"15"`
	RefreshTokenExpireMinutes int    `envconfig:"REFRESH_TOKEN_EXPIRE_MINUTES" default:"10080"`

	// Yandex OAuth
	YandexClientID     string        `envconfig:"YANDEX_CLIENT_ID"`
	YandexClientSecret string        `envconfig:"YANDEX_CLIENT_SECRET"`
	YandexRedirectURI  string        `envconfig:"YANDEX_REDIRECT_URI"`
	YandexRedirectURL  string        `envconfig:"YANDEX_REDIRECT_URL"` // full login URL override
	YandexTimeout      time.Duration `envconfig:"YANDEX_TIMEOUT" default:"10s"`

	// DatabaseURL is a postgres:// URL or a SQLite file path.
	DatabaseURL string `envconfig:"DATABASE_URL" default:"soundbooth.db"`

	// Storage
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"local"`
	MediaDir       string `envconfig:"MEDIA_DIR" default:"media"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
	S3Region       string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint     string `envconfig:"S3_ENDPOINT"`
	S3AccessKey    string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey    string `envconfig:"S3_SECRET_KEY"`

	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"52428800"`

	// Users
	UserEmailRequired   bool     `envconfig:"USER_EMAIL_REQUIRED" default:"false"`
	SupervisorYandexIDs []string `envconfig:"SUPERVISOR_YANDEX_IDS"`

	// Process
	Env                 string        `envconfig:"ENV" default:"dev"`
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat           string        `envconfig:"LOG_FORMAT" default:"json"`
	Port                int           `envconfig:"PORT" default:"8000"`
	ShutdownGracePeriod time.Duration `envconfig:"SHUTDOWN_GRACE_PERIOD" default:"10s"`

	// RateLimits starts from httpx.DefaultRateLimits; RATELIMIT_* overrides
	// single fields.
	RateLimits httpx.RateLimits `envconfig:"RATELIMIT"`
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (Config, error) {
	cfg := Config{RateLimits: httpx.DefaultRateLimits()}
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.AccessSecretKey) == "" || strings.TrimSpace(c.RefreshSecretKey) == "" {
		errs = append(errs, errors.New("ACCESS_SECRET_KEY and REFRESH_SECRET_KEY are required"))
	} else if c.AccessSecretKey == c.RefreshSecretKey {
		errs = append(errs, errors.New("ACCESS_SECRET_KEY and REFRESH_SECRET_KEY must differ"))
	}
	if _, err := jwtx.SigningMethod(c.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("ALGORITHM: %w", err))
	}
	if c.AccessTokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.RefreshTokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}

	switch c.StorageBackend {
	case StorageLocal:
		if c.MediaDir == "" {
			errs = append(errs, errors.New("MEDIA_DIR is required for local storage"))
		}
	case StorageS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND %q is not one of local, s3", c.StorageBackend))
	}

	for _, l := range []struct {
		name string
		cfg  httpx.RateLimitConfig
	}{
		{"STRICT", c.RateLimits.Strict},
		{"MODERATE", c.RateLimits.Moderate},
		{"LENIENT", c.RateLimits.Lenient},
	} {
		if !l.cfg.Valid() {
			errs = append(errs, fmt.Errorf("RATELIMIT_%s values must be positive", l.name))
		}
	}

	return errors.Join(errs...)
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpireMinutes) * time.Minute
}

// IsPostgres reports whether DatabaseURL selects the postgres driver.
func (c Config) IsPostgres() bool {
	u := strings.ToLower(c.DatabaseURL)
	return strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://")
}
