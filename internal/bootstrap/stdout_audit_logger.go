package bootstrap

import (
	"context"

	"go.uber.org/zap"
)

// StdoutAuditLogger menulis jejak audit lewat logger global. Cukup untuk
// deployment tunggal; sink lain tinggal implement AuditLogger.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("audit").Info(entry.Action,
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
