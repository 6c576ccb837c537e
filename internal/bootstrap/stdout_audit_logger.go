package bootstrap

import (
	"context"

	"campus-portal/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries to the process log. Shipping
// them to a durable sink is the deployment's problem, not the app's.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("audit").Info(entry.Action,
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
