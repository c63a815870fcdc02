// internal/lobby/errors.go
package lobby

import (
	"errors"
	"strings"
)

// Failure kinds reported across the request boundary. Callers match them with
// errors.Is; the wrapped text is the human-readable reason shown to clients.
var (
	ErrNotInLobby    = errors.New("not in lobby")
	ErrLobbyNotFound = errors.New("lobby not found")
	ErrGameMismatch  = errors.New("lobby is for a different game")
	ErrEmptyLobby    = errors.New("empty lobby found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("invalid secret")
)

// Uniqueness violations raised by a Store on Create.
var (
	ErrCodeTaken  = errors.New("lobby code already in use")
	ErrAliasTaken = errors.New("lobby alias already in use")
)

// reason wraps kind with a client-facing message.
type reason struct {
	kind error
	msg  string
}

func (r *reason) Error() string { return r.msg }
func (r *reason) Unwrap() error { return r.kind }

func fail(kind error, msg string) error {
	return &reason{kind: kind, msg: msg}
}

// Message renders err as the msg field of a FAIL response.
func Message(err error) string {
	if err == nil {
		return "OK"
	}
	var r *reason
	if errors.As(err, &r) {
		return r.msg
	}
	switch {
	case errors.Is(err, ErrNotInLobby):
		return "Not in lobby."
	case errors.Is(err, ErrLobbyNotFound):
		return "Lobby not found."
	case errors.Is(err, ErrEmptyLobby):
		return "Empty lobby found."
	case errors.Is(err, ErrGameMismatch):
		return "Lobby is for a different game."
	case errors.Is(err, ErrUnauthorized):
		return "Invalid secret."
	}
	msg := err.Error()
	if msg == "" {
		return "Internal error."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// IsFailure reports whether err is one of the request failure kinds above, as
// opposed to an infrastructure error from the Store.
func IsFailure(err error) bool {
	for _, kind := range []error{ErrNotInLobby, ErrLobbyNotFound, ErrGameMismatch, ErrEmptyLobby, ErrInvalidInput, ErrUnauthorized} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
