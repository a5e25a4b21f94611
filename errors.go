package session

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeAlreadyInitialized = "SESSION_ALREADY_INITIALIZED"
	textCodeStoreRequired      = "SESSION_STORE_REQUIRED"
	textCodeClientRequired     = "SESSION_CLIENT_REQUIRED"
)

// Fallback messages surfaced to users when the Auth API supplies none.
// Silent re-auth always uses MsgAuthenticationFailed so server-side
// diagnostic detail never leaks through the startup path.
const (
	MsgAuthenticationFailed = "Authentication failed"
	MsgLoginFailed          = "Login failed"
	MsgRegistrationFailed   = "Registration failed"
)

// ErrAlreadyInitialized is returned when Initialize is invoked more than
// once per application run.
var ErrAlreadyInitialized = goerrors.New("session already initialized", goerrors.CategoryConflict).
	WithTextCode(textCodeAlreadyInitialized).
	WithCode(goerrors.CodeConflict)

// ErrStoreRequired is returned when a Manager is constructed without a Store.
var ErrStoreRequired = goerrors.New("session store is required", goerrors.CategoryBadInput).
	WithTextCode(textCodeStoreRequired).
	WithCode(goerrors.CodeBadRequest)

// ErrClientRequired is returned when a Manager is constructed without an
// Auth API client.
var ErrClientRequired = goerrors.New("auth api client is required", goerrors.CategoryBadInput).
	WithTextCode(textCodeClientRequired).
	WithCode(goerrors.CodeBadRequest)

// ErrKeyNotFound is the sentinel stores return for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// ErrMalformedPayload marks a success response whose data section did not
// carry the expected user/token fields.
var ErrMalformedPayload = errors.New("malformed auth payload")

// APIError is a declared application failure: the Auth API was reachable
// and responded with success=false plus an optional message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth api declined request (status %d)", e.Status)
	}
	return e.Message
}

// IsAuthDeclined will check whether err is a declared Auth API failure as
// opposed to a transport error.
func IsAuthDeclined(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// serverMessage extracts the server-supplied failure message embedded in
// err, or returns fallback when there is none (transport errors, malformed
// payloads).
func serverMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
