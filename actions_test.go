package session_test

import (
	"testing"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
)

func TestApplyTransitions(t *testing.T) {
	user := &session.User{ID: "usr-1", Email: "jane@example.com"}

	authenticated := session.State{
		User:   user,
		Token:  "tok-1",
		Status: session.StatusAuthenticated,
	}
	failed := session.State{
		Status:    session.StatusUnauthenticated,
		LastError: "Invalid credentials",
	}

	tests := []struct {
		name     string
		state    session.State
		action   session.Action
		expected session.State
	}{
		{
			name:   "start clears previous error and enters loading",
			state:  failed,
			action: session.AuthStart{},
			expected: session.State{
				Status: session.StatusLoading,
			},
		},
		{
			name:   "start keeps user and token while loading",
			state:  authenticated,
			action: session.AuthStart{},
			expected: session.State{
				User:   user,
				Token:  "tok-1",
				Status: session.StatusLoading,
			},
		},
		{
			name:     "success settles authenticated",
			state:    session.State{Status: session.StatusLoading},
			action:   session.AuthSuccess{User: user, Token: "tok-1"},
			expected: authenticated,
		},
		{
			name:   "failure drops user and token",
			state:  authenticated,
			action: session.AuthFailure{Message: "Invalid credentials"},
			expected: session.State{
				Status:    session.StatusUnauthenticated,
				LastError: "Invalid credentials",
			},
		},
		{
			name:   "logout resets to baseline",
			state:  authenticated,
			action: session.AuthLogout{},
			expected: session.State{
				Status: session.StatusUnauthenticated,
			},
		},
		{
			name:   "logout clears error",
			state:  failed,
			action: session.AuthLogout{},
			expected: session.State{
				Status: session.StatusUnauthenticated,
			},
		},
		{
			name:   "clear error touches nothing else",
			state:  failed,
			action: session.ClearError{},
			expected: session.State{
				Status: session.StatusUnauthenticated,
			},
		},
		{
			name:   "update user swaps only the user",
			state:  authenticated,
			action: session.UpdateUser{User: &session.User{ID: "usr-2"}},
			expected: session.State{
				User:   &session.User{ID: "usr-2"},
				Token:  "tok-1",
				Status: session.StatusAuthenticated,
			},
		},
		{
			name:   "update user applies even when unauthenticated",
			state:  session.State{Status: session.StatusUnauthenticated},
			action: session.UpdateUser{User: user},
			expected: session.State{
				User:   user,
				Status: session.StatusUnauthenticated,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, session.Apply(tt.state, tt.action))
		})
	}
}

func TestApplyIsPure(t *testing.T) {
	before := session.State{Status: session.StatusLoading}
	_ = session.Apply(before, session.AuthFailure{Message: "nope"})
	assert.Equal(t, session.State{Status: session.StatusLoading}, before)
}

func TestApplyInvariants(t *testing.T) {
	user := &session.User{ID: "usr-1"}

	states := []session.State{
		session.NewState(),
		{Status: session.StatusLoading},
		{Status: session.StatusUnauthenticated, LastError: "boom"},
		{Status: session.StatusAuthenticated, User: user, Token: "tok-1"},
	}
	actions := []session.Action{
		session.AuthStart{},
		session.AuthSuccess{User: user, Token: "tok-2"},
		session.AuthFailure{Message: "nope"},
		session.AuthLogout{},
		session.ClearError{},
	}

	for _, s := range states {
		for _, a := range actions {
			next := session.Apply(s, a)

			if next.Status == session.StatusAuthenticated {
				assert.NotNil(t, next.User, "authenticated implies user present")
				assert.NotEmpty(t, next.Token, "authenticated implies token present")
			}
			if next.Status == session.StatusUnauthenticated {
				assert.Nil(t, next.User, "unauthenticated implies user absent")
				assert.Empty(t, next.Token, "unauthenticated implies token absent")
			}
		}
	}
}

func TestStateHelpers(t *testing.T) {
	assert.True(t, session.NewState().IsLoading())
	assert.False(t, session.NewState().Settled())

	s := session.State{Status: session.StatusAuthenticated, User: &session.User{}, Token: "t"}
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.Settled())
	assert.False(t, s.IsLoading())

	s = session.State{Status: session.StatusUnauthenticated}
	assert.False(t, s.IsAuthenticated())
	assert.True(t, s.Settled())
}
