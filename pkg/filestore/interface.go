package filestore

import "context"

// IStore persists uploaded files under generated names.
// Implementations are safe for concurrent use.
type IStore interface {
	// Save writes data under a fresh collision-resistant name and returns its Ref.
	Save(ctx context.Context, originalName string, data []byte) (Ref, error)

	// Open reads a previously saved file. Returns ErrNotFound when it is gone.
	Open(ctx context.Context, ref Ref) ([]byte, error)

	// Remove deletes a saved file. Removing a missing file is not an error.
	Remove(ctx context.Context, ref Ref) error
}
