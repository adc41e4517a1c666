package filestore

import "errors"

// Ref is the opaque handle of a stored file. It never contains the client
// supplied name.
type Ref struct {
	Name string
}

var (
	ErrNotFound    = errors.New("stored file not found")
	ErrInvalidRef  = errors.New("invalid file reference")
	ErrWriteFailed = errors.New("failed to store file")
)
