package logging

import (
	"context"

	"go.uber.org/zap"
)

const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes a state change worth keeping for compliance review.
// Details must never contain passwords, hashes or tokens.
type AuditEvent struct {
	Action       string
	Actor        string
	ResourceType string
	ResourceID   string
	Result       string
	Details      map[string]any
}

// LogAuditEvent writes the event using the request-aware logger.
func LogAuditEvent(ctx context.Context, ev AuditEvent) {
	if ev.Result == "" {
		ev.Result = AuditSuccess
	}
	fields := []zap.Field{
		zap.String("audit.action", ev.Action),
		zap.String("audit.resource_type", ev.ResourceType),
		zap.String("audit.resource_id", ev.ResourceID),
		zap.String("audit.result", ev.Result),
	}
	if ev.Actor != "" {
		fields = append(fields, zap.String("audit.actor", ev.Actor))
	}
	if len(ev.Details) > 0 {
		fields = append(fields, zap.Any("audit.details", ev.Details))
	}
	LoggerFromContext(ctx).Info("audit event", fields...)
}
