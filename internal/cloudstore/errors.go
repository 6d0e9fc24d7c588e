package cloudstore

import (
	"fmt"
	"strings"
)

// Kind classifies a remote failure so callers branch on type, not on
// message text.
type Kind int

const (
	// KindNetwork covers transport failures and unparsable responses.
	KindNetwork Kind = iota
	// KindAuthRejected marks a key rejection by the backend. The repository
	// treats it like any other failure but logs it distinctly.
	KindAuthRejected
	// KindServer covers non-2xx responses with a readable error body.
	KindServer
)

// Error is the only error type produced by the client.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAuthRejected:
		return fmt.Sprintf("cloud auth rejected: %s", e.Message)
	case KindServer:
		return fmt.Sprintf("cloud error: status=%d message=%s", e.Status, e.Message)
	default:
		if e.Err != nil {
			return fmt.Sprintf("cloud unreachable: %v", e.Err)
		}
		return "cloud unreachable"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ErrKind reports the kind of a client error, false for any other error.
func ErrKind(err error) (Kind, bool) {
	ce, ok := err.(*Error)
	if !ok {
		return 0, false
	}
	return ce.Kind, true
}

// The hosted backend reports a blocked secret key with this message. It is
// the one piece of string matching left; it happens here and nowhere else.
const authRejectedMarker = "Forbidden use of secret API key"

func classify(status int, message string) *Error {
	if strings.Contains(message, authRejectedMarker) {
		return &Error{Kind: KindAuthRejected, Status: status, Message: message}
	}
	return &Error{Kind: KindServer, Status: status, Message: message}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}
