package usecase

import "content-review-tutor/internal/model"

// Assemble builds the message sequence sent to the completion service:
// the system instruction, the history, every document as a user message and
// finally the prompt. It has no side effects.
func Assemble(system string, history []model.Message, documents []model.DocumentUnit, prompt string) []model.Message {
	seq := make([]model.Message, 0, len(history)+len(documents)+2)
	seq = append(seq, model.Message{Role: model.RoleSystem, Content: system})
	seq = append(seq, history...)
	for _, doc := range documents {
		seq = append(seq, doc.AsMessage())
	}
	return append(seq, model.Message{Role: model.RoleUser, Content: prompt})
}
