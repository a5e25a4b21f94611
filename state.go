package session

// Status is the mutually exclusive session status.
type Status string

const (
	// StatusUninitialized is the pre-Initialize state at process start.
	StatusUninitialized Status = "uninitialized"
	// StatusLoading is held only while a network exchange is outstanding.
	StatusLoading Status = "loading"
	// StatusAuthenticated means user and token are both present.
	StatusAuthenticated Status = "authenticated"
	// StatusUnauthenticated means user and token are both absent.
	StatusUnauthenticated Status = "unauthenticated"
)

// State is an immutable snapshot of the session. Callers receive copies;
// mutating a snapshot never affects the Manager.
type State struct {
	User      *User  `json:"user,omitempty"`
	Token     string `json:"token,omitempty"`
	Status    Status `json:"status"`
	LastError string `json:"last_error,omitempty"`
}

// NewState returns the startup baseline.
func NewState() State {
	return State{Status: StatusUninitialized}
}

func (s State) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

func (s State) IsLoading() bool {
	return s.Status == StatusLoading || s.Status == StatusUninitialized
}

// Settled reports whether the state is one of the steady statuses.
func (s State) Settled() bool {
	return s.Status == StatusAuthenticated || s.Status == StatusUnauthenticated
}
