package config

import "time"

const (
	// Configuration file paths
	ConfigPathCatalog       = "configs/catalog.json"
	ConfigPathCatalogSchema = "configs/schemas/catalog.schema.json"
	ConfigPathTuning        = "configs/tuning.yaml"
)

// Defaults applied when an environment variable is unset
const (
	DefaultPort               = 8080
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultLogDir             = "logs"
	DefaultEnvironment        = "dev"
	DefaultServiceName        = "tycoon"
	DefaultVersion            = "dev"
	DefaultSnapshotEveryTicks = 6
	DefaultWorkerCount        = 2
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultStateCacheSize     = 64
	DefaultEventMaxRetries    = 3
	DefaultEventRetryDelay    = 250 * time.Millisecond
	DefaultEventDeadLetter    = "logs/events.deadletter"
	DefaultHUDLanguage        = "en"
)
