package http

import (
	"time"

	"content-review-tutor/internal/chat"
	"content-review-tutor/internal/model"
	"content-review-tutor/internal/upload"
)

// --- Request DTOs ---

type messageReq struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatReq struct {
	Prompt    string                `json:"prompt"`
	Messages  []messageReq          `json:"messages"`
	SessionID string                `json:"session_id"`
	Files     []upload.UploadedFile `json:"-"`
}

func (r chatReq) toInput() chat.ChatInput {
	msgs := make([]model.Message, len(r.Messages))
	for i, m := range r.Messages {
		msgs[i] = model.Message{Role: model.Role(m.Role), Content: m.Content}
	}
	return chat.ChatInput{
		Prompt:     r.Prompt,
		Messages:   msgs,
		SessionKey: r.SessionID,
		Files:      r.Files,
	}
}

// --- Response DTOs ---

type chatResp struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

func (h *handler) newChatResp(o chat.ChatOutput) chatResp {
	return chatResp{
		Reply:     o.Reply,
		SessionID: o.SessionKey,
	}
}

type documentResp struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

type historyResp struct {
	SessionID string          `json:"session_id"`
	Messages  []model.Message `json:"messages"`
	Documents []documentResp  `json:"documents"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (h *handler) newHistoryResp(o chat.HistoryOutput) historyResp {
	docs := make([]documentResp, len(o.Documents))
	for i, d := range o.Documents {
		docs[i] = documentResp{Label: d.Label, Content: d.Content}
	}
	msgs := o.Messages
	if msgs == nil {
		msgs = []model.Message{}
	}
	return historyResp{
		SessionID: o.SessionKey,
		Messages:  msgs,
		Documents: docs,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
