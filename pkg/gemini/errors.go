package gemini

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned when a 2xx response has no candidate text.
var ErrEmptyCompletion = errors.New("gemini: empty completion")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Message)
}
