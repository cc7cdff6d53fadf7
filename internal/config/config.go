package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the host application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string
	APIKey      string // API key for authentication

	CatalogPath       string
	CatalogSchemaPath string
	TuningPath        string

	// Observer websocket frames are pushed every N ticks
	SnapshotEveryTicks int
	// Workers draining the passive income queue
	WorkerCount     int
	ShutdownTimeout time.Duration
	StateCacheSize  int

	// Event delivery retries before an event lands in the dead letter file
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	TrustedProxies []string
	HUDLanguage    string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:          getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:             getEnv("LOG_DIR", DefaultLogDir),
		Environment:        getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName:        getEnv("SERVICE_NAME", DefaultServiceName),
		Version:            getEnv("VERSION", DefaultVersion),
		APIKey:             getEnv("API_KEY", ""),
		CatalogPath:        getEnv("CATALOG_PATH", ConfigPathCatalog),
		CatalogSchemaPath:  getEnv("CATALOG_SCHEMA_PATH", ConfigPathCatalogSchema),
		TuningPath:         getEnv("TUNING_PATH", ConfigPathTuning),
		SnapshotEveryTicks: getEnvAsInt("SNAPSHOT_EVERY_TICKS", DefaultSnapshotEveryTicks),
		WorkerCount:        getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		StateCacheSize:     getEnvAsInt("STATE_CACHE_SIZE", DefaultStateCacheSize),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetter),
		TrustedProxies:      splitList(getEnv("TRUSTED_PROXIES", "")),
		HUDLanguage:         getEnv("HUD_LANGUAGE", DefaultHUDLanguage),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.SnapshotEveryTicks <= 0 {
		return nil, fmt.Errorf("SNAPSHOT_EVERY_TICKS must be positive, got %d", cfg.SnapshotEveryTicks)
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("WORKER_COUNT must be positive, got %d", cfg.WorkerCount)
	}
	if cfg.EventMaxRetries < 0 {
		return nil, fmt.Errorf("EVENT_MAX_RETRIES must not be negative, got %d", cfg.EventMaxRetries)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// splitList parses a comma separated value, dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsInt parses an integer variable, falling back to the default on
// absence or parse failure
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a time.ParseDuration string with the same fallback rules
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
