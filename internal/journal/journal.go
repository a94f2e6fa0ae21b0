// Package journal records scheduler session lifecycle events for
// operators: when a job's frontier was opened, with which strategy,
// whether it resumed queued work, and when and why it closed. Journaling
// is observability only; failures are logged by callers and never stop
// the frontier.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session describes one open-to-close interval of a scheduler bound to a
// job.
type Session struct {
	ID              uuid.UUID
	Job             string
	Strategy        string
	Persist         bool
	OpenedAt        time.Time
	ResumedRequests int64
}

// Journal persists session lifecycle events.
type Journal interface {
	// SessionOpened records a newly opened scheduler session.
	SessionOpened(ctx context.Context, s Session) error
	// SessionClosed marks the session closed with the caller's reason.
	SessionClosed(ctx context.Context, id uuid.UUID, closedAt time.Time, reason string) error
}

// Noop discards all events. Used when no journal DSN is configured.
type Noop struct{}

// SessionOpened implements Journal.
func (Noop) SessionOpened(context.Context, Session) error { return nil }

// SessionClosed implements Journal.
func (Noop) SessionClosed(context.Context, uuid.UUID, time.Time, string) error { return nil }
