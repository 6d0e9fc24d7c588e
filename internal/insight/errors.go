package insight

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is a non-2xx answer from the model endpoint. Callers treat any
// error from this package as recoverable: the session step stays editable
// and the user retries by hand.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("oracle: status=%d message=%s", e.StatusCode, msg)
}

func parseHTTPError(status int, raw []byte) error {
	var env struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && strings.TrimSpace(env.Error.Message) != "" {
		return &HTTPError{StatusCode: status, Message: env.Error.Message}
	}
	return &HTTPError{StatusCode: status, Message: strings.TrimSpace(string(raw))}
}
