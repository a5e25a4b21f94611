package session

// Action is a tagged transition request. The full set of variants is
// AuthStart, AuthSuccess, AuthFailure, AuthLogout, ClearError and
// UpdateUser; Apply reduces any of them against a State.
type Action interface {
	isAction()
}

// AuthStart marks the beginning of a network exchange with the Auth API.
// Any previous error is cleared.
type AuthStart struct{}

// AuthSuccess settles an exchange with a verified user and bearer token.
type AuthSuccess struct {
	User  *User
	Token string
}

// AuthFailure settles an exchange with a human readable failure reason.
// User and token are dropped.
type AuthFailure struct {
	Message string
}

// AuthLogout resets the session to the unauthenticated baseline.
type AuthLogout struct{}

// ClearError drops the last error and nothing else.
type ClearError struct{}

// UpdateUser replaces the user snapshot in place, leaving status and token
// untouched.
type UpdateUser struct {
	User *User
}

func (AuthStart) isAction()   {}
func (AuthSuccess) isAction() {}
func (AuthFailure) isAction() {}
func (AuthLogout) isAction()  {}
func (ClearError) isAction()  {}
func (UpdateUser) isAction()  {}

// Apply is the pure transition function for the session state machine. It
// performs no I/O; the Manager is responsible for the storage side effects
// that surround it. Unknown actions leave the state unchanged.
func Apply(s State, a Action) State {
	switch a := a.(type) {
	case AuthStart:
		s.Status = StatusLoading
		s.LastError = ""
		return s
	case AuthSuccess:
		s.User = a.User
		s.Token = a.Token
		s.Status = StatusAuthenticated
		s.LastError = ""
		return s
	case AuthFailure:
		s.User = nil
		s.Token = ""
		s.Status = StatusUnauthenticated
		s.LastError = a.Message
		return s
	case AuthLogout:
		s.User = nil
		s.Token = ""
		s.Status = StatusUnauthenticated
		s.LastError = ""
		return s
	case ClearError:
		s.LastError = ""
		return s
	case UpdateUser:
		s.User = a.User
		return s
	}
	return s
}
