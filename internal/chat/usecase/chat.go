package usecase

import (
	"context"

	"content-review-tutor/internal/chat"
	"content-review-tutor/internal/model"
	"content-review-tutor/internal/session"
)

// Chat runs one tutoring turn. Nothing is written to the session until the
// completion succeeds, unless PersistOnUpstreamFailure is set.
func (uc *implUseCase) Chat(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error) {
	if err := validateRoles(input.Messages); err != nil {
		return chat.ChatOutput{}, err
	}

	if err := uc.gate.Validate(input.Files); err != nil {
		uc.l.Warnf(ctx, "uc.Chat upload rejected: %v", err)
		return chat.ChatOutput{}, err
	}

	if uc.cfg.SerializePerKey && input.SessionKey != "" {
		unlock, err := uc.locks.Lock(ctx, input.SessionKey)
		if err != nil {
			uc.l.Warnf(ctx, "uc.Chat wait for session %s: %v", input.SessionKey, err)
			return chat.ChatOutput{}, err
		}
		defer unlock()
	}

	key, sess, err := uc.sessions.GetOrCreate(ctx, input.SessionKey)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Chat GetOrCreate: %v", err)
		return chat.ChatOutput{}, err
	}
	if input.SessionKey != "" && key != input.SessionKey {
		uc.l.Infof(ctx, "uc.Chat unknown session key, started %s", key)
	}

	units, err := uc.extractFiles(ctx, input.Files)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Chat extract: %v", err)
		return chat.ChatOutput{SessionKey: key}, err
	}

	messages := session.Trim(append(sess.Messages, input.Messages...), uc.cfg.MaxMessages)
	documents := session.Trim(append(sess.Documents, units...), uc.cfg.MaxDocuments)
	seq := Assemble(uc.instruction.Instruction(), messages, documents, input.Prompt)

	// The turn is committed even if the caller has gone away.
	commitCtx := context.WithoutCancel(ctx)

	resp, err := uc.llm.GenerateContent(ctx, uc.buildRequest(seq))
	if err != nil {
		uc.l.Errorf(ctx, "uc.Chat GenerateContent: %v", err)
		if uc.cfg.PersistOnUpstreamFailure {
			if cerr := uc.commit(commitCtx, key, units, input.Messages); cerr != nil {
				uc.l.Errorf(ctx, "uc.Chat commit after failure: %v", cerr)
			}
		}
		return chat.ChatOutput{SessionKey: key}, err
	}

	turn := make([]model.Message, 0, len(input.Messages)+2)
	turn = append(turn, input.Messages...)
	turn = append(turn,
		model.Message{Role: model.RoleUser, Content: input.Prompt},
		model.Message{Role: model.RoleAssistant, Content: resp.Content},
	)
	if err := uc.commit(commitCtx, key, units, turn); err != nil {
		uc.l.Errorf(ctx, "uc.Chat commit: %v", err)
		return chat.ChatOutput{SessionKey: key}, err
	}

	uc.l.Debugf(ctx, "uc.Chat session=%s history=%d documents=%d new_units=%d",
		key, len(messages), len(documents), len(units))

	return chat.ChatOutput{Reply: resp.Content, SessionKey: key}, nil
}
