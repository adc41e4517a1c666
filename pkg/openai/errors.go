package openai

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned when a 2xx response carries no choices or
// only empty content.
var ErrEmptyCompletion = errors.New("openai: empty completion")

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai: API error %d: %s", e.StatusCode, e.Message)
}
