package listener

import (
	"context"
	"io"
	"log/slog"
)

// SessionRunner runs one visit over a connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

// ConnectionManager hands every accepted connection to a SessionRunner.
type ConnectionManager struct {
	sessions SessionRunner
}

func NewConnectionManager(sessions SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.sessions.RunSession(ctx, conn); err != nil && ctx.Err() == nil {
		slog.WarnContext(ctx, "visitor session", "error", err)
	}
}
