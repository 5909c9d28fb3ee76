package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
	"github.com/riskibarqy/fantasy-auction/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv          string
	ServiceName     string
	ServiceVersion  string
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	LogLevel        logging.Level

	StorageDriver           string
	DBURL                   string
	DBDisablePreparedBinary bool
	DBMaxOpenConns          int
	DBMaxIdleConns          int
	DBConnMaxLifetime       time.Duration
	DBBootstrapSeed         bool
	CacheEnabled            bool
	CacheTTL                time.Duration

	DraftRounds     int
	StartingBudget  int64
	AutoBidEnabled  bool
	AutoBidInterval time.Duration
	AutoBidLockTTL  time.Duration
	ScoringWorkers  int

	FPLBaseURL        string
	FPLTimeout        time.Duration
	FPLMaxRetries     int
	FPLCircuit        resilience.CircuitBreakerConfig
	LiveStatsCacheTTL time.Duration
	BootstrapCacheTTL time.Duration

	AnubisBaseURL        string
	AnubisIntrospectPath string
	AnubisAdminKey       string
	AnubisTimeout        time.Duration
	AnubisCacheTTL       time.Duration
	AnubisCircuit        resilience.CircuitBreakerConfig

	CORSAllowedOrigins []string

	NATSURL       string
	NATSStream    string
	NATSMaxAge    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

// UsePostgres reports whether repositories are backed by the database.
func (c Config) UsePostgres() bool {
	return c.StorageDriver == StoragePostgres
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:               appEnv,
		ServiceName:          getEnv("APP_SERVICE_NAME", "fantasy-auction-api"),
		ServiceVersion:       getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:             strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:             logging.ParseLevel(getEnv("LOG_LEVEL", getEnv("APP_LOG_LEVEL", "info"))),
		DBURL:                strings.TrimSpace(getEnv("DB_URL", "")),
		FPLBaseURL:           strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		AnubisBaseURL:        strings.TrimSpace(getEnv("ANUBIS_BASE_URL", "http://localhost:8081")),
		AnubisIntrospectPath: strings.TrimSpace(getEnv("ANUBIS_INTROSPECT_PATH", "/v1/auth/introspect")),
		AnubisAdminKey:       strings.TrimSpace(getEnv("ANUBIS_ADMIN_KEY", "")),
		CORSAllowedOrigins:   splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		NATSURL:              strings.TrimSpace(getEnv("NATS_URL", "")),
		NATSStream:           strings.TrimSpace(getEnv("NATS_STREAM", "AUCTION_EVENTS")),
		RedisAddr:            strings.TrimSpace(getEnv("REDIS_ADDR", "")),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisChannel:         strings.TrimSpace(getEnv("REDIS_CHANNEL", "fantasy-auction:events")),
		PprofAddr:            strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = positiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = positiveDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = positiveDuration("APP_SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}

	if err := loadStorage(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadAuction(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadUpstreams(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadBroadcast(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadStorage(cfg *Config) error {
	driver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	switch driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", driver, StorageMemory, StoragePostgres)
	}
	cfg.StorageDriver = driver
	if driver == StoragePostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}

	var err error
	if cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")); err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	if cfg.DBBootstrapSeed, err = strconv.ParseBool(getEnv("DB_BOOTSTRAP_SEED", "false")); err != nil {
		return fmt.Errorf("parse DB_BOOTSTRAP_SEED: %w", err)
	}
	if cfg.DBMaxOpenConns, err = minInt("DB_MAX_OPEN_CONNS", 20, 1); err != nil {
		return err
	}
	if cfg.DBMaxIdleConns, err = minInt("DB_MAX_IDLE_CONNS", 10, 0); err != nil {
		return err
	}
	if cfg.DBConnMaxLifetime, err = positiveDuration("DB_CONN_MAX_LIFETIME", "30m"); err != nil {
		return err
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = positiveDuration("CACHE_TTL", "60s"); err != nil {
		return err
	}
	return nil
}

func loadAuction(cfg *Config) error {
	var err error
	if cfg.DraftRounds, err = minInt("DRAFT_ROUNDS", 17, 1); err != nil {
		return err
	}
	budget, err := minInt("STARTING_BUDGET", 1000, 1)
	if err != nil {
		return err
	}
	cfg.StartingBudget = int64(budget)

	if cfg.AutoBidEnabled, err = strconv.ParseBool(getEnv("AUTOBID_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse AUTOBID_ENABLED: %w", err)
	}
	if cfg.AutoBidInterval, err = positiveDuration("AUTOBID_INTERVAL", "2s"); err != nil {
		return err
	}
	if cfg.AutoBidLockTTL, err = positiveDuration("AUTOBID_LOCK_TTL", cfg.AutoBidInterval.String()); err != nil {
		return err
	}
	if cfg.ScoringWorkers, err = minInt("SCORING_WORKERS", 8, 1); err != nil {
		return err
	}
	return nil
}

func loadUpstreams(cfg *Config) error {
	var err error
	if cfg.FPLTimeout, err = positiveDuration("FPL_TIMEOUT", "15s"); err != nil {
		return err
	}
	if cfg.FPLMaxRetries, err = minInt("FPL_MAX_RETRIES", 2, 0); err != nil {
		return err
	}
	if cfg.FPLCircuit, err = loadCircuit("FPL"); err != nil {
		return err
	}
	if cfg.LiveStatsCacheTTL, err = positiveDuration("LIVE_STATS_CACHE_TTL", "60s"); err != nil {
		return err
	}
	if cfg.BootstrapCacheTTL, err = positiveDuration("BOOTSTRAP_CACHE_TTL", "10m"); err != nil {
		return err
	}

	if cfg.AnubisTimeout, err = positiveDuration("ANUBIS_TIMEOUT", "3s"); err != nil {
		return err
	}
	if cfg.AnubisCacheTTL, err = positiveDuration("ANUBIS_CACHE_TTL", "30s"); err != nil {
		return err
	}
	if cfg.AnubisCircuit, err = loadCircuit("ANUBIS"); err != nil {
		return err
	}
	return nil
}

func loadBroadcast(cfg *Config) error {
	var err error
	if cfg.NATSMaxAge, err = positiveDuration("NATS_MAX_AGE", "168h"); err != nil {
		return err
	}
	if cfg.RedisDB, err = minInt("REDIS_DB", 0, 0); err != nil {
		return err
	}
	if cfg.RedisAddr != "" && cfg.RedisChannel == "" {
		return fmt.Errorf("REDIS_CHANNEL cannot be empty when REDIS_ADDR is set")
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error
	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

// loadCircuit reads <PREFIX>_CIRCUIT_ENABLED, _FAILURE_COUNT, _OPEN_TIMEOUT and
// _HALF_OPEN_MAX_REQ.
func loadCircuit(prefix string) (resilience.CircuitBreakerConfig, error) {
	defaults := resilience.DefaultCircuitBreakerConfig()

	enabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", strconv.FormatBool(defaults.Enabled)))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}
	failures, err := minInt(prefix+"_CIRCUIT_FAILURE_COUNT", defaults.FailureThreshold, 1)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}
	openTimeout, err := positiveDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout.String())
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}
	halfOpen, err := minInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq, 1)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}

	return resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failures,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpen,
	}, nil
}

func positiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func minInt(key string, fallback, lowest int) (int, error) {
	value, err := getEnvAsInt(key, fallback)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value < lowest {
		return 0, fmt.Errorf("%s must be >= %d", key, lowest)
	}
	return value, nil
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
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
