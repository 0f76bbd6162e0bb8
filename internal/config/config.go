package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pitwall/gridbet/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	DBURL                         string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	CORSAllowedOrigins            []string
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	JWTSecret                     string
	JWTIssuer                     string
	JWTTokenTTL                   time.Duration
	RaceFeedEnabled               bool
	RaceFeedBaseURL               string
	RaceFeedTimeout               time.Duration
	RaceFeedMaxRetries            int
	RaceFeedCircuitEnabled        bool
	RaceFeedCircuitFailureCount   int
	RaceFeedCircuitOpenTimeout    time.Duration
	RaceFeedCircuitHalfOpenMaxReq int
	UptraceEnabled                bool
	UptraceDSN                    string
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeUploadRate           time.Duration
	PprofEnabled                  bool
	PprofAddr                     string
	LogLevel                      logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	jwtSecret := strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if appEnv == EnvProd && jwtSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required when APP_ENV=prod")
	}
	if jwtSecret == "" {
		jwtSecret = "dev-only-secret"
	}
	jwtTokenTTL, err := time.ParseDuration(getEnv("JWT_TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JWT_TOKEN_TTL: %w", err)
	}
	if jwtTokenTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TOKEN_TTL must be > 0")
	}

	raceFeedEnabled, err := strconv.ParseBool(getEnv("RACEFEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RACEFEED_ENABLED: %w", err)
	}
	raceFeedBaseURL := strings.TrimSpace(getEnv("RACEFEED_BASE_URL", ""))
	if raceFeedEnabled && raceFeedBaseURL == "" {
		return Config{}, fmt.Errorf("RACEFEED_BASE_URL is required when RACEFEED_ENABLED=true")
	}
	raceFeedTimeout, err := time.ParseDuration(getEnv("RACEFEED_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RACEFEED_TIMEOUT: %w", err)
	}
	if raceFeedTimeout <= 0 {
		return Config{}, fmt.Errorf("RACEFEED_TIMEOUT must be > 0")
	}
	raceFeedMaxRetries, err := getEnvAsInt("RACEFEED_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse RACEFEED_MAX_RETRIES: %w", err)
	}
	if raceFeedMaxRetries < 0 {
		return Config{}, fmt.Errorf("RACEFEED_MAX_RETRIES must be >= 0")
	}
	raceFeedCircuitEnabled, err := strconv.ParseBool(getEnv("RACEFEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RACEFEED_CIRCUIT_ENABLED: %w", err)
	}
	raceFeedCircuitFailureCount, err := getEnvAsInt("RACEFEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse RACEFEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if raceFeedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("RACEFEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	raceFeedCircuitOpenTimeout, err := time.ParseDuration(getEnv("RACEFEED_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RACEFEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if raceFeedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("RACEFEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	raceFeedCircuitHalfOpenMaxReq, err := getEnvAsInt("RACEFEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse RACEFEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if raceFeedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("RACEFEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "gridbet-api"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                      getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                         getEnv("DB_URL", ""),
		ReadTimeout:                   readTimeout,
		WriteTimeout:                  writeTimeout,
		CORSAllowedOrigins:            splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		CacheEnabled:                  cacheEnabled,
		CacheTTL:                      cacheTTL,
		JWTSecret:                     jwtSecret,
		JWTIssuer:                     getEnv("JWT_ISSUER", "gridbet"),
		JWTTokenTTL:                   jwtTokenTTL,
		RaceFeedEnabled:               raceFeedEnabled,
		RaceFeedBaseURL:               raceFeedBaseURL,
		RaceFeedTimeout:               raceFeedTimeout,
		RaceFeedMaxRetries:            raceFeedMaxRetries,
		RaceFeedCircuitEnabled:        raceFeedCircuitEnabled,
		RaceFeedCircuitFailureCount:   raceFeedCircuitFailureCount,
		RaceFeedCircuitOpenTimeout:    raceFeedCircuitOpenTimeout,
		RaceFeedCircuitHalfOpenMaxReq: raceFeedCircuitHalfOpenMaxReq,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        pyroscopeServerAddress,
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
		PprofEnabled:                  pprofEnabled,
		PprofAddr:                     pprofAddr,
		LogLevel:                      logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
