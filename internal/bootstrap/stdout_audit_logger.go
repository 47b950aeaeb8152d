package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type stdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger() AuditLogger {
	return &stdoutAuditLogger{logger: zap.L().Named("audit")}
}

func (s *stdoutAuditLogger) Log(_ context.Context, entry AuditLog) {
	s.logger.Info(entry.Message,
		zap.String("action", entry.Action),
		zap.Time("at", time.Now().UTC()),
		zap.Any("meta", entry.Meta),
	)
}
