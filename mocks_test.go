package session_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/mock"
)

// MockAuthAPI implements session.AuthAPI
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, creds session.Credentials) (*session.AuthPayload, error) {
	args := m.Called(ctx, creds)
	return authPayload(args.Get(0)), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, payload session.Registration) (*session.AuthPayload, error) {
	args := m.Called(ctx, payload)
	return authPayload(args.Get(0)), args.Error(1)
}

func (m *MockAuthAPI) CurrentUser(ctx context.Context, token string) (*session.User, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*session.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthAPI) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthAPI) RefreshToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func authPayload(v any) *session.AuthPayload {
	if v == nil {
		return nil
	}
	return v.(*session.AuthPayload)
}

// recordingSink captures activity events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []session.ActivityEvent
}

func (s *recordingSink) Record(_ context.Context, event session.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) types() []session.ActivityEventType {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]session.ActivityEventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.EventType)
	}
	return out
}
