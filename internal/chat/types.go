package chat

import (
	"time"

	"content-review-tutor/internal/model"
	"content-review-tutor/internal/upload"
)

// ChatInput is one chat request. Messages is the delta the client wants
// appended to the session history before Prompt. An empty SessionKey starts
// a new session.
type ChatInput struct {
	Prompt     string
	Messages   []model.Message
	SessionKey string
	Files      []upload.UploadedFile
}

// ChatOutput carries the assistant reply and the session key the client must
// send on its next request.
type ChatOutput struct {
	Reply      string
	SessionKey string
}

// HistoryOutput is a snapshot of a session.
type HistoryOutput struct {
	SessionKey string
	Messages   []model.Message
	Documents  []model.DocumentUnit
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
