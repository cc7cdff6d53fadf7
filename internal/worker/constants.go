package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerPoolStarted = "Worker pool started"
	LogMsgWorkerPoolStopped = "Worker pool stopped"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)

// DefaultQueueSize bounds jobs waiting for a free worker
const DefaultQueueSize = 16
