package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

const logoutNotifyTimeout = 5 * time.Second

// Manager owns the one session per running application instance. It mediates
// between the persisted credentials, the remote Auth API, and the rest of
// the application, which reads the session through Snapshot/Subscribe.
//
// All operations settle into a state change rather than returning transport
// errors; UI code reads LastError and Status off the returned snapshot.
// Initialize is the only operation that can reject, and only on misuse
// (calling it twice).
type Manager struct {
	mu          sync.Mutex
	state       State
	generation  uint64
	initialized bool

	api       AuthAPI
	store     Store
	tokenKey  string
	userKey   string
	logger    Logger
	sink      ActivitySink
	inspector TokenInspector
	now       func() time.Time

	subscribers map[uint64]func(State)
	nextSubID   uint64
}

// NewManager returns a Manager wired to the given Auth API client and
// durable store. The session starts uninitialized; call Initialize once at
// startup to attempt silent re-authentication.
func NewManager(api AuthAPI, store Store) (*Manager, error) {
	if api == nil {
		return nil, ErrClientRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	return &Manager{
		state:       NewState(),
		api:         api,
		store:       store,
		tokenKey:    "token",
		userKey:     "user",
		logger:      defLogger{},
		sink:        noopActivitySink{},
		inspector:   noopInspector{},
		now:         time.Now,
		subscribers: map[uint64]func(State){},
	}, nil
}

func (m *Manager) WithLogger(logger Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithActivitySink configures an ActivitySink for emitting session events.
func (m *Manager) WithActivitySink(sink ActivitySink) *Manager {
	m.sink = normalizeActivitySink(sink)
	return m
}

// WithTokenInspector enables the pre-flight expiry check on silent re-auth.
func (m *Manager) WithTokenInspector(inspector TokenInspector) *Manager {
	if inspector != nil {
		m.inspector = inspector
	}
	return m
}

// WithClock injects a custom clock (useful for tests).
func (m *Manager) WithClock(clock func() time.Time) *Manager {
	if clock != nil {
		m.now = clock
	}
	return m
}

// WithStorageKeys overrides the store keys the token and user snapshot
// persist under.
func (m *Manager) WithStorageKeys(tokenKey, userKey string) *Manager {
	if tokenKey != "" {
		m.tokenKey = tokenKey
	}
	if userKey != "" {
		m.userKey = userKey
	}
	return m
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to run after every applied transition. The
// returned function unsubscribes; it is safe to call more than once.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// Initialize attempts silent re-authentication from the persisted token.
// At most once per run: a second call returns ErrAlreadyInitialized with
// the state untouched. There is no retry; a failed restore leaves the
// session unauthenticated with the fixed "Authentication failed" message so
// credential validation detail never reaches the user.
func (m *Manager) Initialize(ctx context.Context) (State, error) {
	m.mu.Lock()
	if m.initialized {
		s := m.state
		m.mu.Unlock()
		return s, ErrAlreadyInitialized
	}
	m.initialized = true

	token, err := m.readToken(ctx)
	if err != nil {
		// storage unusable, same outcome as an invalid token
		s, subs := m.failRestoreLocked(ctx)
		m.mu.Unlock()
		notify(s, subs)
		m.emitRestoreFailure(ctx, "storage: "+err.Error())
		return s, nil
	}

	if token == "" {
		s, subs := m.dispatchLocked(AuthLogout{})
		m.mu.Unlock()
		notify(s, subs)
		return s, nil
	}

	if m.inspector.Expired(token, m.now()) {
		s, subs := m.failRestoreLocked(ctx)
		m.mu.Unlock()
		notify(s, subs)
		m.emitRestoreFailure(ctx, "token expired")
		return s, nil
	}

	s, subs := m.dispatchLocked(AuthStart{})
	gen := m.bumpGenerationLocked()
	m.mu.Unlock()
	notify(s, subs)

	user, err := m.api.CurrentUser(ctx, token)

	m.mu.Lock()
	if m.generation != gen {
		s := m.state
		m.mu.Unlock()
		m.logger.Debug("discarding stale restore result")
		return s, nil
	}

	if err != nil {
		s, subs := m.failRestoreLocked(ctx)
		m.mu.Unlock()
		notify(s, subs)
		m.emitRestoreFailure(ctx, err.Error())
		return s, nil
	}

	s, subs = m.dispatchLocked(AuthSuccess{User: user, Token: token})
	m.mu.Unlock()
	notify(s, subs)

	m.emit(ctx, ActivityEventRestoreSuccess, user.ID, StatusLoading, StatusAuthenticated, nil)
	return s, nil
}

// Login exchanges credentials for a session. On success the token and user
// snapshot are persisted; on any failure storage is untouched and LastError
// carries the server message or "Login failed".
func (m *Manager) Login(ctx context.Context, email, password string) State {
	creds := Credentials{Email: email, Password: password}
	return m.authenticate(ctx, creds.Validate(), MsgLoginFailed,
		ActivityEventLoginSuccess, ActivityEventLoginFailure,
		func(ctx context.Context) (*AuthPayload, error) {
			return m.api.Login(ctx, creds)
		})
}

// Register creates an account and signs it in, with the same transition
// rules as Login and "Registration failed" as the fallback message.
func (m *Manager) Register(ctx context.Context, payload Registration) State {
	return m.authenticate(ctx, payload.Validate(), MsgRegistrationFailed,
		ActivityEventRegisterSuccess, ActivityEventRegisterFailure,
		func(ctx context.Context) (*AuthPayload, error) {
			return m.api.Register(ctx, payload)
		})
}

func (m *Manager) authenticate(
	ctx context.Context,
	validationErr error,
	fallback string,
	okEvent, failEvent ActivityEventType,
	call func(ctx context.Context) (*AuthPayload, error),
) State {
	if validationErr != nil {
		m.mu.Lock()
		m.bumpGenerationLocked()
		s, subs := m.dispatchLocked(AuthFailure{Message: validationErr.Error()})
		m.mu.Unlock()
		notify(s, subs)

		m.emit(ctx, failEvent, "", StatusLoading, StatusUnauthenticated, map[string]any{
			"error": validationErr.Error(),
		})
		return s
	}

	m.mu.Lock()
	s, subs := m.dispatchLocked(AuthStart{})
	gen := m.bumpGenerationLocked()
	m.mu.Unlock()
	notify(s, subs)

	payload, err := call(ctx)

	m.mu.Lock()
	if m.generation != gen {
		s := m.state
		m.mu.Unlock()
		m.logger.Debug("discarding stale auth result")
		return s
	}

	if err != nil {
		s, subs := m.dispatchLocked(AuthFailure{Message: serverMessage(err, fallback)})
		m.mu.Unlock()
		notify(s, subs)

		m.emit(ctx, failEvent, "", StatusLoading, StatusUnauthenticated, map[string]any{
			"error": err.Error(),
		})
		return s
	}

	m.persistLocked(ctx, payload.Token, payload.User)
	s, subs = m.dispatchLocked(AuthSuccess{User: payload.User, Token: payload.Token})
	m.mu.Unlock()
	notify(s, subs)

	m.emit(ctx, okEvent, payload.User.ID, StatusLoading, StatusAuthenticated, nil)
	return s
}

// Logout is synchronous and unconditional: storage is cleared, the session
// resets to unauthenticated, and any in-flight auth attempt is invalidated.
// The Auth API is notified best-effort in the background; the state change
// never waits on it.
func (m *Manager) Logout(ctx context.Context) State {
	m.mu.Lock()
	token := m.state.Token
	userID := ""
	if m.state.User != nil {
		userID = m.state.User.ID
	}
	from := m.state.Status

	m.bumpGenerationLocked()
	m.clearStorage(ctx)
	s, subs := m.dispatchLocked(AuthLogout{})
	m.mu.Unlock()
	notify(s, subs)

	if token != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), logoutNotifyTimeout)
			defer cancel()
			if err := m.api.Logout(ctx, token); err != nil {
				m.logger.Debug("logout notification failed: %s", err)
			}
		}()
	}

	m.emit(ctx, ActivityEventLogout, userID, from, StatusUnauthenticated, nil)
	return s
}

// ClearError drops LastError and nothing else. Safe in any state.
func (m *Manager) ClearError() State {
	m.mu.Lock()
	s, subs := m.dispatchLocked(ClearError{})
	m.mu.Unlock()
	notify(s, subs)
	return s
}

// UpdateUser replaces the user snapshot and re-persists it. Status and
// token are untouched. The replacement and persistence happen even when the
// session is unauthenticated; guarding against that is the caller's job.
func (m *Manager) UpdateUser(ctx context.Context, user *User) State {
	m.mu.Lock()
	if err := m.writeUser(ctx, user); err != nil {
		m.logger.Error("failed to persist user snapshot: %s", err)
	}
	s, subs := m.dispatchLocked(UpdateUser{User: user})
	m.mu.Unlock()
	notify(s, subs)

	userID := ""
	if user != nil {
		userID = user.ID
	}
	m.emit(ctx, ActivityEventUserUpdated, userID, s.Status, s.Status, nil)
	return s
}

// RefreshToken asks the Auth API for a rotated token and swaps it in place,
// re-persisting it. Only meaningful while authenticated; failures leave the
// session untouched since the current token remains valid until the server
// rejects it.
func (m *Manager) RefreshToken(ctx context.Context) State {
	m.mu.Lock()
	if !m.state.IsAuthenticated() {
		s := m.state
		m.mu.Unlock()
		return s
	}
	token := m.state.Token
	gen := m.generation
	m.mu.Unlock()

	next, err := m.api.RefreshToken(ctx, token)

	m.mu.Lock()
	if m.generation != gen {
		s := m.state
		m.mu.Unlock()
		m.logger.Debug("discarding stale token refresh")
		return s
	}

	if err != nil {
		s := m.state
		m.mu.Unlock()
		m.logger.Error("token refresh failed: %s", err)
		m.emit(ctx, ActivityEventTokenRefreshFailure, s.userID(), s.Status, s.Status, map[string]any{
			"error": err.Error(),
		})
		return s
	}

	if err := m.store.Set(ctx, m.tokenKey, []byte(next)); err != nil {
		m.logger.Error("failed to persist refreshed token: %s", err)
	}
	s, subs := m.dispatchLocked(AuthSuccess{User: m.state.User, Token: next})
	m.mu.Unlock()
	notify(s, subs)

	m.emit(ctx, ActivityEventTokenRefreshed, s.userID(), StatusAuthenticated, StatusAuthenticated, nil)
	return s
}

// dispatchLocked reduces the action and snapshots the subscriber list.
// Callers must hold m.mu and invoke notify after releasing it.
func (m *Manager) dispatchLocked(a Action) (State, []func(State)) {
	m.state = Apply(m.state, a)

	subs := make([]func(State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	return m.state, subs
}

func (m *Manager) bumpGenerationLocked() uint64 {
	m.generation++
	return m.generation
}

// failRestoreLocked is the single failure path for silent re-auth: clear
// persisted credentials and settle unauthenticated with the fixed message.
// Callers must hold m.mu, then notify and emit after releasing it.
func (m *Manager) failRestoreLocked(ctx context.Context) (State, []func(State)) {
	m.clearStorage(ctx)
	return m.dispatchLocked(AuthFailure{Message: MsgAuthenticationFailed})
}

func (m *Manager) readToken(ctx context.Context) (string, error) {
	raw, err := m.store.Get(ctx, m.tokenKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(raw), nil
}

func (m *Manager) persistLocked(ctx context.Context, token string, user *User) {
	if err := m.store.Set(ctx, m.tokenKey, []byte(token)); err != nil {
		m.logger.Error("failed to persist token: %s", err)
	}
	if err := m.writeUser(ctx, user); err != nil {
		m.logger.Error("failed to persist user snapshot: %s", err)
	}
}

func (m *Manager) writeUser(ctx context.Context, user *User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, m.userKey, encoded)
}

func (m *Manager) clearStorage(ctx context.Context) {
	if err := m.store.Delete(ctx, m.tokenKey); err != nil && !errors.Is(err, ErrKeyNotFound) {
		m.logger.Error("failed to delete token: %s", err)
	}
	if err := m.store.Delete(ctx, m.userKey); err != nil && !errors.Is(err, ErrKeyNotFound) {
		m.logger.Error("failed to delete user snapshot: %s", err)
	}
}

// emitRestoreFailure records the real failure reason on the sink only; the
// user-visible message stays the fixed MsgAuthenticationFailed.
func (m *Manager) emitRestoreFailure(ctx context.Context, reason string) {
	m.emit(ctx, ActivityEventRestoreFailure, "", StatusLoading, StatusUnauthenticated, map[string]any{
		"reason": reason,
	})
}

func (m *Manager) emit(ctx context.Context, event ActivityEventType, userID string, from, to Status, meta map[string]any) {
	err := m.sink.Record(ctx, ActivityEvent{
		EventType:  event,
		UserID:     userID,
		FromStatus: from,
		ToStatus:   to,
		Metadata:   meta,
		OccurredAt: m.now(),
	})
	if err != nil {
		m.logger.Error("activity sink record failed: %s", err)
	}
}

func (s State) userID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}

func notify(s State, subs []func(State)) {
	for _, fn := range subs {
		fn(s)
	}
}
