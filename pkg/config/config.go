package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Transport modes accepted by API.Mode.
const (
	ModeDirect = "direct"
	ModeProxy  = "proxy"
	ModeMock   = "mock"
)

// Storage backends accepted by Storage.Backend.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
	Relay   RelayConfig
	Mock    MockConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MEALMART_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"MEALMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEALMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL      string        `envconfig:"MEALMART_API_BASE_URL"`
	AssetBaseURL string        `envconfig:"MEALMART_ASSET_BASE_URL"`
	Mode         string        `envconfig:"MEALMART_API_MODE" default:"direct"`
	ProxyURL     string        `envconfig:"MEALMART_API_PROXY_URL"`
	Timeout      time.Duration `envconfig:"MEALMART_API_TIMEOUT" default:"30s"`
}

// NormalizedMode returns the lower-cased transport mode.
func (a APIConfig) NormalizedMode() string {
	return strings.ToLower(strings.TrimSpace(a.Mode))
}

func (a APIConfig) validate() error {
	switch a.NormalizedMode() {
	case ModeMock:
	case ModeDirect:
		if strings.TrimSpace(a.BaseURL) == "" {
			return fmt.Errorf("%s is required when %s is %q", EnvAPIBaseURL, EnvAPIMode, ModeDirect)
		}
	case ModeProxy:
		if strings.TrimSpace(a.ProxyURL) == "" {
			return fmt.Errorf("%s is required when %s is %q", EnvAPIProxyURL, EnvAPIMode, ModeProxy)
		}
	default:
		return fmt.Errorf("%s must be one of %q, %q, %q", EnvAPIMode, ModeDirect, ModeProxy, ModeMock)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvAPITimeout)
	}
	return nil
}

type StorageConfig struct {
	Backend string `envconfig:"MEALMART_STORAGE_BACKEND" default:"file"`
	Dir     string `envconfig:"MEALMART_STORAGE_DIR" default:".mealmart"`
}

func (s StorageConfig) validate(redis RedisConfig) error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case StorageFile:
		if strings.TrimSpace(s.Dir) == "" {
			return fmt.Errorf("%s is required for the file backend", EnvStorageDir)
		}
	case StorageRedis:
		if redis.URL == "" && redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis backend", EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("%s must be %q or %q", EnvStorageBackend, StorageFile, StorageRedis)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MEALMART_REDIS_URL"`
	Address      string        `envconfig:"MEALMART_REDIS_ADDR"`
	Password     string        `envconfig:"MEALMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEALMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEALMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEALMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEALMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEALMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEALMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type RelayConfig struct {
	Port           string        `envconfig:"MEALMART_RELAY_PORT" default:"8787"`
	RequestTimeout time.Duration `envconfig:"MEALMART_RELAY_REQUEST_TIMEOUT" default:"30s"`
	AllowedOrigins []string      `envconfig:"MEALMART_RELAY_ALLOWED_ORIGINS"`
}

type MockConfig struct {
	Port string `envconfig:"MEALMART_MOCK_PORT" default:"8788"`
}
