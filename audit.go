package sessiongate

import (
	"context"

	internalaudit "github.com/campaignwala/sessiongate/internal/audit"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Audit event type names carried in [AuditEvent].EventType.
const (
	EventLogin              = internalaudit.EventLogin
	EventLoginFailed        = internalaudit.EventLoginFailed
	EventLogout             = internalaudit.EventLogout
	EventLogoutRemoteFailed = internalaudit.EventLogoutRemoteFailed
	EventForcedLogout       = internalaudit.EventForcedLogout
	EventSessionWarning     = internalaudit.EventSessionWarning
	EventSessionExpired     = internalaudit.EventSessionExpired
	EventRehydrate          = internalaudit.EventRehydrate
	EventUnauthorized       = internalaudit.EventUnauthorized
	EventPermissionsChanged = internalaudit.EventPermissionsChanged
	EventGuardRedirect      = internalaudit.EventGuardRedirect
)

// FileSink is an [AuditSink] that writes newline-delimited JSON events to a
// size-rotated log file.
type FileSink struct {
	inner  *JSONWriterSink
	logger *lumberjack.Logger
}

// FileSinkConfig tunes rotation. Zero values take lumberjack defaults
// (100 MB, no backup or age limit).
type FileSinkConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewFileSink creates a rotating file sink at cfg.Path. The file is created
// lazily on first write.
func NewFileSink(cfg FileSinkConfig) *FileSink {
	logger := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return &FileSink{
		inner:  internalaudit.NewJSONWriterSink(logger),
		logger: logger,
	}
}

// Emit implements [AuditSink].
func (s *FileSink) Emit(ctx context.Context, event AuditEvent) {
	s.inner.Emit(ctx, event)
}

// Close flushes and closes the underlying log file.
func (s *FileSink) Close() error {
	return s.logger.Close()
}
