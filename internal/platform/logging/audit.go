package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes a state-changing action for security and compliance logs.
// Actor is the caller's email; anonymous actions leave it empty.
type AuditEvent struct {
	Action     string
	Actor      string
	Resource   string
	ResourceID string
	Result     string
	Details    map[string]any
}

// LogAuditEvent logs a structured audit event using the request-scoped logger.
func LogAuditEvent(ctx context.Context, ev AuditEvent) {
	fields := []zap.Field{
		zap.String("audit.action", ev.Action),
		zap.String("audit.actor", ev.Actor),
		zap.String("audit.resource_type", ev.Resource),
		zap.String("audit.resource_id", ev.ResourceID),
		zap.String("audit.result", ev.Result),
	}
	if len(ev.Details) > 0 {
		fields = append(fields, zap.Any("audit.details", ev.Details))
	}
	LoggerFromContext(ctx).Info("Audit event", fields...)
}
