package repository

import (
	"context"

	"content-review-tutor/internal/model"
)

// Repository owns every session for the lifetime of the process.
// Returned sessions are copies; mutation goes through the Append methods.
type Repository interface {
	// GetOrCreate returns the session stored under key. An empty or unknown
	// key mints a fresh key and an empty session.
	GetOrCreate(ctx context.Context, key string) (string, model.Session, error)
	Get(ctx context.Context, key string) (model.Session, bool, error)

	// AppendMessages and AppendDocuments append in order and then trim the
	// collection to its configured maximum, dropping the oldest entries.
	AppendMessages(ctx context.Context, key string, msgs ...model.Message) error
	AppendDocuments(ctx context.Context, key string, units ...model.DocumentUnit) error

	Len(ctx context.Context) int
}
