package session

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventRestoreSuccess      ActivityEventType = "session.restore.success"
	ActivityEventRestoreFailure      ActivityEventType = "session.restore.failure"
	ActivityEventLoginSuccess        ActivityEventType = "session.login.success"
	ActivityEventLoginFailure        ActivityEventType = "session.login.failure"
	ActivityEventRegisterSuccess     ActivityEventType = "session.register.success"
	ActivityEventRegisterFailure     ActivityEventType = "session.register.failure"
	ActivityEventLogout              ActivityEventType = "session.logout"
	ActivityEventUserUpdated         ActivityEventType = "session.user.updated"
	ActivityEventTokenRefreshed      ActivityEventType = "session.token.refreshed"
	ActivityEventTokenRefreshFailure ActivityEventType = "session.token.refresh.failure"
)

// ActivityEvent captures audit-friendly information about a lifecycle change.
type ActivityEvent struct {
	EventType  ActivityEventType
	UserID     string
	FromStatus Status
	ToStatus   Status
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
