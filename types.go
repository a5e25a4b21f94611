package session

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Store is the durable key-value store used to stash the bearer token and
// the last-known user snapshot between application runs. Values are written
// and read whole; there are no partial updates.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// AuthAPI holds the remote Auth API operations the Manager depends on.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*AuthPayload, error)
	Register(ctx context.Context, payload Registration) (*AuthPayload, error)
	CurrentUser(ctx context.Context, token string) (*User, error)
	Logout(ctx context.Context, token string) error
	RefreshToken(ctx context.Context, token string) (string, error)
}

// TokenInspector lets the Manager peek at a persisted token before spending
// a network roundtrip on it during silent re-authentication.
type TokenInspector interface {
	Expired(token string, at time.Time) bool
}

// Config holds session client options
type Config interface {
	GetBaseURL() string
	GetHTTPTimeout() time.Duration
	GetAuthScheme() string
	GetLoginPath() string
	GetRegisterPath() string
	GetCurrentUserPath() string
	GetLogoutPath() string
	GetRefreshPath() string
	GetVerifyEmailPath() string
	GetForgotPasswordPath() string
	GetResetPasswordPath() string
	GetChangePasswordPath() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
