package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	StorageBackendFile   = "file"
	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
)

type Config struct {
	App      AppConfig
	Identity IdentityConfig
	Backend  BackendConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Booking  BookingConfig
	Signup   SignupConfig
	Site     SiteConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.ensureBackend(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EXAMSAATHI_APP_ENV" required:"true"`
	Port         string `envconfig:"EXAMSAATHI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"EXAMSAATHI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EXAMSAATHI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// IdentityConfig carries the identity-provider credentials supplied at build time.
type IdentityConfig struct {
	APIKey     string        `envconfig:"EXAMSAATHI_IDENTITY_API_KEY" required:"true"`
	AuthDomain string        `envconfig:"EXAMSAATHI_IDENTITY_AUTH_DOMAIN"`
	ProjectID  string        `envconfig:"EXAMSAATHI_IDENTITY_PROJECT_ID"`
	AppID      string        `envconfig:"EXAMSAATHI_IDENTITY_APP_ID"`
	BaseURL    string        `envconfig:"EXAMSAATHI_IDENTITY_BASE_URL" default:"https://identitytoolkit.googleapis.com/v1"`
	Timeout    time.Duration `envconfig:"EXAMSAATHI_IDENTITY_TIMEOUT" default:"10s"`
}

// BackendConfig points at the student API. The local default mirrors the dev
// setup where the backend runs alongside the client.
type BackendConfig struct {
	BaseURL string        `envconfig:"EXAMSAATHI_BACKEND_URL" default:"http://localhost:4000"`
	Timeout time.Duration `envconfig:"EXAMSAATHI_BACKEND_TIMEOUT" default:"15s"`
}

// StorageConfig selects where durable client-side state (pending magic-link
// email) lives between process restarts.
type StorageConfig struct {
	Backend string `envconfig:"EXAMSAATHI_STORAGE_BACKEND" default:"file"`
	Path    string `envconfig:"EXAMSAATHI_STORAGE_PATH" default:"examsaathi-state.db"`
}

type RedisConfig struct {
	URL          string        `envconfig:"EXAMSAATHI_REDIS_URL"`
	Address      string        `envconfig:"EXAMSAATHI_REDIS_ADDR"`
	Password     string        `envconfig:"EXAMSAATHI_REDIS_PASSWORD"`
	DB           int           `envconfig:"EXAMSAATHI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EXAMSAATHI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EXAMSAATHI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EXAMSAATHI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EXAMSAATHI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EXAMSAATHI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type BookingConfig struct {
	ChargeDelay time.Duration `envconfig:"EXAMSAATHI_BOOKING_CHARGE_DELAY" default:"2s"`
}

type SignupConfig struct {
	RedirectDelay  time.Duration `envconfig:"EXAMSAATHI_SIGNUP_REDIRECT_DELAY" default:"2s"`
	AdmitCardMaxMB int           `envconfig:"EXAMSAATHI_SIGNUP_ADMIT_CARD_MAX_MB" default:"5"`
}

type SiteConfig struct {
	PublicOrigin   string   `envconfig:"EXAMSAATHI_SITE_ORIGIN" default:"http://localhost:3000"`
	AllowedOrigins []string `envconfig:"EXAMSAATHI_SITE_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (s *StorageConfig) ensureBackend(redis RedisConfig) error {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	if backend == "" {
		backend = StorageBackendFile
	}
	switch backend {
	case StorageBackendFile:
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("EXAMSAATHI_STORAGE_PATH is required for the file backend")
		}
	case StorageBackendMemory:
	case StorageBackendRedis:
		if redis.URL == "" && redis.Address == "" {
			return fmt.Errorf("EXAMSAATHI_REDIS_URL or EXAMSAATHI_REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
	s.Backend = backend
	return nil
}
