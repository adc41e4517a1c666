package upload

import (
	"errors"
	"fmt"
)

var (
	ErrOversizedFile        = errors.New("file exceeds the size limit")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrTooManyFiles         = errors.New("too many files")
)

// RejectedError reports which file of a batch failed validation and why.
// Reason is ErrOversizedFile, ErrUnsupportedMediaType or ErrTooManyFiles.
type RejectedError struct {
	Index  int
	Name   string
	Reason error
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("file %d (%s): %v: %s", e.Index+1, e.Name, e.Reason, e.Detail)
	}
	return fmt.Sprintf("file %d (%s): %v", e.Index+1, e.Name, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return e.Reason
}
