package model

import "time"

// TestResult is one persisted test-run record. Records are append-only and
// listed in descending creation order.
type TestResult struct {
	ID        string
	CreatedAt time.Time
	Service   string
	Success   bool
	Message   string
	Details   string
}

// ErrorLog is one persisted error record, mirroring failed test outcomes.
// Same append-only, newest-first retrieval policy as TestResult.
type ErrorLog struct {
	ID        string
	CreatedAt time.Time
	Service   string
	Error     string
	Details   string
}
