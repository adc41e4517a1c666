package usecase

import (
	"context"

	"content-review-tutor/internal/chat"
)

// History returns a snapshot of the session stored under sessionKey.
func (uc *implUseCase) History(ctx context.Context, sessionKey string) (chat.HistoryOutput, error) {
	sess, ok, err := uc.sessions.Get(ctx, sessionKey)
	if err != nil {
		uc.l.Errorf(ctx, "uc.History Get: %v", err)
		return chat.HistoryOutput{}, err
	}
	if !ok {
		return chat.HistoryOutput{}, chat.ErrSessionNotFound
	}

	return chat.HistoryOutput{
		SessionKey: sess.Key,
		Messages:   sess.Messages,
		Documents:  sess.Documents,
		CreatedAt:  sess.CreatedAt,
		UpdatedAt:  sess.UpdatedAt,
	}, nil
}
