package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

type aferoStore struct {
	fs afero.Fs
}

// New creates a store over fs. Every path is relative to the root of fs.
func New(fs afero.Fs) IStore {
	return &aferoStore{fs: fs}
}

// NewOsStore creates a store rooted at dir on the local disk, creating dir if
// needed.
func NewOsStore(dir string) (IStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create upload dir: %w", err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

func (s *aferoStore) Save(ctx context.Context, originalName string, data []byte) (Ref, error) {
	if err := ctx.Err(); err != nil {
		return Ref{}, err
	}

	name := uuid.NewString() + safeExt(originalName)
	if err := afero.WriteFile(s.fs, name, data, 0o644); err != nil {
		return Ref{}, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return Ref{Name: name}, nil
}

func (s *aferoStore) Open(ctx context.Context, ref Ref) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := cleanName(ref)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("filestore: read %s: %w", name, err)
	}
	return data, nil
}

func (s *aferoStore) Remove(ctx context.Context, ref Ref) error {
	name, err := cleanName(ref)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestore: remove %s: %w", name, err)
	}
	return nil
}

// cleanName resolves a Ref to a bare file name, rejecting anything that would
// leave the store root.
func cleanName(ref Ref) (string, error) {
	name := ref.Name
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrInvalidRef
	}
	return name, nil
}

// safeExt keeps a short alphanumeric extension from the client name.
func safeExt(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
