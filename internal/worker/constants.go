package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
)

// ============================================================================
// Log Messages - Verification Expiry
// ============================================================================

const (
	LogMsgExpirySweepCompleted = "Verification expiry sweep completed"
)

// ============================================================================
// Log Messages - Daily Reset Worker
// ============================================================================

// Log messages for daily reset worker operations
const (
	LogMsgDailyResetStarting      = "Daily login reset starting"
	LogMsgDailyResetCompleted     = "Daily login reset completed"
	LogMsgDailyResetFailed        = "Daily login reset failed"
	LogMsgDailyResetScheduled     = "Daily login reset scheduled"
	LogMsgDailyResetManualTrigger = "Daily login reset manually triggered"
	LogMsgDailyResetShutdown      = "Daily login reset worker stopped"
)

// DailyResetJobName identifies the reset job inside the gocron scheduler
const DailyResetJobName = "daily-login-reset"

// jobTimeout bounds a single background job run
const jobTimeout = 30 * time.Second

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
