package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Result label values for the worker jobs metric
const (
	JobResultOK    = "ok"
	JobResultError = "error"
)

// ============================================================================
// Log Messages - Neglect Sweep
// ============================================================================

// Log messages for the scheduled neglect sweep
const (
	LogMsgNeglectSweepStarting  = "Neglect sweep starting"
	LogMsgNeglectSweepCompleted = "Neglect sweep completed"
	LogMsgNeglectSweepFailed    = "Neglect sweep failed"
	LogMsgNeglectPunishFailed   = "Failed to punish neglected garden"
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
