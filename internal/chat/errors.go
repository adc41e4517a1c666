package chat

import "errors"

var (
	ErrInvalidRole     = errors.New("invalid message role")
	ErrSessionNotFound = errors.New("session not found")
	ErrStorageFailed   = errors.New("failed to store uploaded file")
)
