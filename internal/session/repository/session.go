package repository

import (
	"context"

	"content-review-tutor/internal/model"
	"content-review-tutor/internal/session"
)

func (r *implRepository) GetOrCreate(ctx context.Context, key string) (string, model.Session, error) {
	if err := ctx.Err(); err != nil {
		return "", model.Session{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if key != "" {
		if s, ok := r.tbl.get(key); ok {
			return key, s.Clone(), nil
		}
	}

	key = r.newKey()
	now := r.now()
	s := &model.Session{Key: key, CreatedAt: now, UpdatedAt: now}
	r.tbl.put(key, s)
	return key, s.Clone(), nil
}

func (r *implRepository) Get(ctx context.Context, key string) (model.Session, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.tbl.get(key)
	if !ok {
		return model.Session{}, false, nil
	}
	return s.Clone(), true, nil
}

func (r *implRepository) AppendMessages(ctx context.Context, key string, msgs ...model.Message) error {
	return r.update(ctx, key, func(s *model.Session) {
		s.Messages = session.Trim(append(s.Messages, msgs...), r.maxMessages)
	})
}

func (r *implRepository) AppendDocuments(ctx context.Context, key string, units ...model.DocumentUnit) error {
	return r.update(ctx, key, func(s *model.Session) {
		s.Documents = session.Trim(append(s.Documents, units...), r.maxDocuments)
	})
}

func (r *implRepository) Len(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tbl.len()
}

// update applies fn to the stored session. A session that expired from the
// lru backend since it was resolved is recreated under the same key.
func (r *implRepository) update(ctx context.Context, key string, fn func(s *model.Session)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return session.ErrSessionNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s, ok := r.tbl.get(key)
	if !ok {
		s = &model.Session{Key: key, CreatedAt: now}
	}
	fn(s)
	s.UpdatedAt = now
	r.tbl.put(key, s)
	return nil
}
