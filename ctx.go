package session

import "context"

var userCtxKey = &contextKey{"user"}
var snapshotCtxKey = &contextKey{"snapshot"}

type contextKey struct {
	name string
}

// WithUser sets the User in the given context
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext finds the user from the context.
func UserFromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithSnapshot sets the session State in the given context
func WithSnapshot(ctx context.Context, s State) context.Context {
	return context.WithValue(ctx, snapshotCtxKey, s)
}

// SnapshotFromContext extracts the session State from the context
func SnapshotFromContext(ctx context.Context) (State, bool) {
	raw, ok := ctx.Value(snapshotCtxKey).(State)
	return raw, ok
}
