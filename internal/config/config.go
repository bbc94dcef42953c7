package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/porra/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level
	SwaggerEnabled bool

	StoreDriver       string
	DBURL             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	CacheEnabled      bool
	CacheTTL          time.Duration

	CORSAllowedOrigins []string
	InternalJobToken   string
	VoteMaxPerRider    int

	MotoGPBaseURL               string
	MotoGPTimeout               time.Duration
	MotoGPMaxRetries            int
	MotoGPCircuitEnabled        bool
	MotoGPCircuitFailureCount   int
	MotoGPCircuitOpenTimeout    time.Duration
	MotoGPCircuitHalfOpenMaxReq int
	MotoGPCategory              string

	ResultsSyncEnabled  bool
	ResultsSyncInterval time.Duration
	ResultsSyncWorkers  int

	MetricsEnabled bool

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}
	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}
	storeDriver, err := parseStoreDriver(getEnv("STORE_DRIVER", StoreMemory))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "porra-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:                   logLevel,
		StoreDriver:                storeDriver,
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		MotoGPBaseURL:              strings.TrimSpace(getEnv("MOTOGP_BASE_URL", "https://api.motogp.pulselive.com/motogp/v1")),
		MotoGPCategory:             strings.TrimSpace(getEnv("MOTOGP_CATEGORY", "MotoGP™")),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	p := parser{}
	cfg.ReadTimeout = p.positiveDuration("APP_READ_TIMEOUT", "10s")
	cfg.WriteTimeout = p.positiveDuration("APP_WRITE_TIMEOUT", "15s")
	cfg.DBMaxOpenConns = p.atLeast("DB_MAX_OPEN_CONNS", 10, 1)
	cfg.DBMaxIdleConns = p.atLeast("DB_MAX_IDLE_CONNS", 5, 0)
	cfg.DBConnMaxLifetime = p.positiveDuration("DB_CONN_MAX_LIFETIME", "30m")
	cfg.CacheEnabled = p.boolean("CACHE_ENABLED", true)
	cfg.CacheTTL = p.positiveDuration("CACHE_TTL", "5m")
	cfg.VoteMaxPerRider = p.atLeast("VOTE_MAX_PER_RIDER", 3, 1)
	cfg.MotoGPTimeout = p.positiveDuration("MOTOGP_TIMEOUT", "20s")
	cfg.MotoGPMaxRetries = p.atLeast("MOTOGP_MAX_RETRIES", 2, 0)
	cfg.MotoGPCircuitEnabled = p.boolean("MOTOGP_CIRCUIT_ENABLED", true)
	cfg.MotoGPCircuitFailureCount = p.atLeast("MOTOGP_CIRCUIT_FAILURE_COUNT", 5, 1)
	cfg.MotoGPCircuitOpenTimeout = p.positiveDuration("MOTOGP_CIRCUIT_OPEN_TIMEOUT", "30s")
	cfg.MotoGPCircuitHalfOpenMaxReq = p.atLeast("MOTOGP_CIRCUIT_HALF_OPEN_MAX_REQ", 1, 1)
	cfg.ResultsSyncEnabled = p.boolean("RESULTS_SYNC_ENABLED", false)
	cfg.ResultsSyncInterval = p.positiveDuration("RESULTS_SYNC_INTERVAL", "30m")
	cfg.ResultsSyncWorkers = p.atLeast("RESULTS_SYNC_WORKERS", 4, 1)
	cfg.MetricsEnabled = p.boolean("METRICS_ENABLED", true)
	cfg.UptraceEnabled = p.boolean("UPTRACE_ENABLED", false)
	cfg.PyroscopeEnabled = p.boolean("PYROSCOPE_ENABLED", false)
	cfg.PyroscopeUploadRate = p.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	cfg.PprofEnabled = p.boolean("PPROF_ENABLED", false)
	cfg.SwaggerEnabled = p.boolean("SWAGGER_ENABLED", appEnv != EnvProd)
	if p.err != nil {
		return Config{}, p.err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.StoreDriver == StorePostgres && c.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORE_DRIVER=postgres")
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if c.AppEnv == EnvProd && c.InternalJobToken == "" {
		return fmt.Errorf("INTERNAL_JOB_TOKEN is required when APP_ENV=prod")
	}
	if c.MotoGPBaseURL == "" {
		return fmt.Errorf("MOTOGP_BASE_URL cannot be empty")
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if c.PyroscopeEnabled {
		if c.PyroscopeServerAddress == "" {
			return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
		}
		if c.PyroscopeAppName == "" {
			return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
		}
	}
	if c.PprofEnabled && c.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	return nil
}

// parser keeps the first parse error so Load can read every key in sequence.
type parser struct {
	err error
}

func (p *parser) boolean(key string, fallback bool) bool {
	if p.err != nil {
		return fallback
	}
	out, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		p.err = fmt.Errorf("parse %s: %w", key, err)
		return fallback
	}
	return out
}

func (p *parser) positiveDuration(key, fallback string) time.Duration {
	if p.err != nil {
		return 0
	}
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		p.err = fmt.Errorf("parse %s: %w", key, err)
		return 0
	}
	if out <= 0 {
		p.err = fmt.Errorf("%s must be > 0", key)
		return 0
	}
	return out
}

func (p *parser) atLeast(key string, fallback, min int) int {
	if p.err != nil {
		return fallback
	}
	out, err := getEnvAsInt(key, fallback)
	if err != nil {
		p.err = fmt.Errorf("parse %s: %w", key, err)
		return fallback
	}
	if out < min {
		p.err = fmt.Errorf("%s must be >= %d", key, min)
		return fallback
	}
	return out
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

	return strconv.Atoi(value)
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

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStoreDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StoreMemory, StorePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s", v, StoreMemory, StorePostgres)
	}
}
