package services

import "log"

// Audit is the activity-log collaborator. Calls are fire-and-forget: an
// implementation must never block or fail the calling operation.
type Audit interface {
	Log(kind, message string)
}

// NoopAudit discards audit events
type NoopAudit struct{}

func (NoopAudit) Log(kind, message string) {}

// LogAudit writes audit events to the process log
type LogAudit struct{}

// NewLogAudit creates a log-backed audit collaborator
func NewLogAudit() *LogAudit {
	return &LogAudit{}
}

func (a *LogAudit) Log(kind, message string) {
	log.Printf("📋 [audit] %s: %s", kind, message)
}
