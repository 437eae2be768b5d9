package config

// EnvPrefix is passed to envconfig; individual fields carry fully prefixed
// tags so the prefix itself stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names, kept as constants so error messages and tests
// reference the same spelling as the struct tags.
const (
	EnvAppEnv         = "MEALMART_APP_ENV"
	EnvLogLevel       = "MEALMART_LOG_LEVEL"
	EnvAPIBaseURL     = "MEALMART_API_BASE_URL"
	EnvAssetBaseURL   = "MEALMART_ASSET_BASE_URL"
	EnvAPIMode        = "MEALMART_API_MODE"
	EnvAPIProxyURL    = "MEALMART_API_PROXY_URL"
	EnvAPITimeout     = "MEALMART_API_TIMEOUT"
	EnvStorageBackend = "MEALMART_STORAGE_BACKEND"
	EnvStorageDir     = "MEALMART_STORAGE_DIR"
	EnvRedisURL       = "MEALMART_REDIS_URL"
	EnvRedisAddr      = "MEALMART_REDIS_ADDR"
	EnvRelayPort      = "MEALMART_RELAY_PORT"
	EnvRelayOrigins   = "MEALMART_RELAY_ALLOWED_ORIGINS"
	EnvMockPort       = "MEALMART_MOCK_PORT"
)
