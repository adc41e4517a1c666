package chat

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Chat runs one tutoring turn: validate, extract uploads, assemble the
	// context, call the completion service and commit the turn on success.
	Chat(ctx context.Context, input ChatInput) (ChatOutput, error)

	// History returns a read-only view of a session.
	History(ctx context.Context, sessionKey string) (HistoryOutput, error)
}
