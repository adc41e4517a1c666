package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"content-review-tutor/internal/chat"
	"content-review-tutor/internal/chat/usecase"
	"content-review-tutor/internal/extract"
	"content-review-tutor/internal/model"
	"content-review-tutor/internal/upload"
	"content-review-tutor/pkg/llmprovider"
)

func roles(msgs []llmprovider.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role
	}
	return out
}

func TestChat_ImageQuizScenario(t *testing.T) {
	f := newFixture()
	f.llm.reply = "Question 1: What is the capital of France?"
	ctx := context.Background()

	out, err := f.uc.Chat(ctx, chat.ChatInput{
		Prompt: "Quiz me",
		Files:  []upload.UploadedFile{jpegFile("Paris is the capital of France.")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Reply != "Question 1: What is the capital of France?" || out.SessionKey == "" {
		t.Fatalf("unexpected output: %+v", out)
	}

	want := []llmprovider.Message{
		{Role: "system", Content: systemText},
		{Role: "user", Content: "<strong>Content from Image 1:</strong><br><p>Paris is the capital of France.</p>"},
		{Role: "user", Content: "Quiz me"},
	}
	req := f.llm.last()
	if !reflect.DeepEqual(req.Messages, want) {
		t.Errorf("unexpected sequence:\n got %+v\nwant %+v", req.Messages, want)
	}
	if req.Temperature != 0.3 || req.MaxTokens != 4000 {
		t.Errorf("unexpected generation settings: %+v", req)
	}

	hist, err := f.uc.History(ctx, out.SessionKey)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	wantMsgs := []model.Message{
		{Role: model.RoleUser, Content: "Quiz me"},
		{Role: model.RoleAssistant, Content: out.Reply},
	}
	if !reflect.DeepEqual(hist.Messages, wantMsgs) {
		t.Errorf("unexpected stored messages: %+v", hist.Messages)
	}
	if len(hist.Documents) != 1 || hist.Documents[0].Label != "Image 1" {
		t.Errorf("unexpected stored documents: %+v", hist.Documents)
	}
	if f.store.live.Load() != 0 {
		t.Errorf("stored uploads should be removed, %d left", f.store.live.Load())
	}
}

func TestChat_PDFWithEmptyPage(t *testing.T) {
	f := newFixture()
	out, err := f.uc.Chat(context.Background(), chat.ChatInput{
		Prompt: "Start",
		Files:  []upload.UploadedFile{pdfFile("Intro|")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := f.llm.last().Messages
	if len(msgs) != 4 {
		t.Fatalf("expected system, 2 slides, prompt; got %+v", msgs)
	}
	if msgs[1].Content != "<strong>Content from Slide 1:</strong><br><p>Intro</p>" ||
		msgs[2].Content != "<strong>Content from Slide 2:</strong><br><p></p>" {
		t.Errorf("unexpected slide units: %+v", msgs[1:3])
	}

	hist, _ := f.uc.History(context.Background(), out.SessionKey)
	if len(hist.Documents) != 2 {
		t.Errorf("expected both slides stored, got %d", len(hist.Documents))
	}
}

func TestChat_ReusesSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.uc.Chat(ctx, chat.ChatInput{Prompt: "Quiz me", Files: []upload.UploadedFile{jpegFile("Paris")}})
	if err != nil {
		t.Fatalf("first turn: %v", err)
	}

	f.llm.reply = "Correct!"
	second, err := f.uc.Chat(ctx, chat.ChatInput{Prompt: "Paris", SessionKey: first.SessionKey})
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if second.SessionKey != first.SessionKey {
		t.Fatalf("expected key reuse, got %q then %q", first.SessionKey, second.SessionKey)
	}

	got := roles(f.llm.last().Messages)
	want := []string{"system", "user", "assistant", "user", "user"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected history, document then prompt; got %v", got)
	}
	if f.llm.last().Messages[3].Content != "<strong>Content from Image 1:</strong><br><p>Paris</p>" {
		t.Errorf("document should follow history: %+v", f.llm.last().Messages)
	}
}

func TestChat_UnknownKeyStartsNewSession(t *testing.T) {
	f := newFixture()
	out, err := f.uc.Chat(context.Background(), chat.ChatInput{Prompt: "hi", SessionKey: "never-issued"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.SessionKey == "never-issued" || out.SessionKey == "" {
		t.Errorf("expected freshly minted key, got %q", out.SessionKey)
	}
	if _, err := f.uc.History(context.Background(), "never-issued"); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestChat_ClientDeltaIsStored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	delta := []model.Message{
		{Role: model.RoleUser, Content: "earlier question"},
		{Role: model.RoleAssistant, Content: "earlier answer"},
	}

	out, err := f.uc.Chat(ctx, chat.ChatInput{Prompt: "next", Messages: delta})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := roles(f.llm.last().Messages); !reflect.DeepEqual(got, []string{"system", "user", "assistant", "user"}) {
		t.Errorf("unexpected sequence roles: %v", got)
	}

	hist, _ := f.uc.History(ctx, out.SessionKey)
	if len(hist.Messages) != 4 || hist.Messages[0].Content != "earlier question" || hist.Messages[3].Content != "ok" {
		t.Errorf("unexpected stored messages: %+v", hist.Messages)
	}
}

func TestChat_Validation(t *testing.T) {
	t.Run("invalid role", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Chat(context.Background(), chat.ChatInput{
			Prompt:   "x",
			Messages: []model.Message{{Role: "tool", Content: "?"}},
		})
		if !errors.Is(err, chat.ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole, got %v", err)
		}
		if f.llm.calls() != 0 || f.repo.Len(context.Background()) != 0 {
			t.Errorf("validation failure must have no side effects")
		}
	})

	t.Run("oversized file", func(t *testing.T) {
		f := newFixture(func(_ *usecase.Config, g *upload.Config) { g.MaxSizeBytes = 64 })
		big := jpegFile(strings.Repeat("x", 100))

		_, err := f.uc.Chat(context.Background(), chat.ChatInput{
			Prompt: "x",
			Files:  []upload.UploadedFile{jpegFile("small"), big},
		})
		if !errors.Is(err, upload.ErrOversizedFile) {
			t.Fatalf("expected ErrOversizedFile, got %v", err)
		}
		if f.image.calls.Load() != 0 {
			t.Errorf("no extraction may run for a rejected batch")
		}
		if f.llm.calls() != 0 || f.repo.Len(context.Background()) != 0 || f.store.live.Load() != 0 {
			t.Errorf("rejected batch must have no side effects")
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Chat(context.Background(), chat.ChatInput{
			Prompt: "x",
			Files:  []upload.UploadedFile{{Bytes: []byte("GIF89a"), DeclaredMediaType: "image/gif", OriginalName: "a.gif"}},
		})
		if !errors.Is(err, upload.ErrUnsupportedMediaType) {
			t.Fatalf("expected ErrUnsupportedMediaType, got %v", err)
		}
	})
}

func TestChat_ExtractionFailureLeavesSessionUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first, _ := f.uc.Chat(ctx, chat.ChatInput{Prompt: "hello"})

	_, err := f.uc.Chat(ctx, chat.ChatInput{
		Prompt:     "again",
		SessionKey: first.SessionKey,
		Messages:   []model.Message{{Role: model.RoleUser, Content: "delta"}},
		Files:      []upload.UploadedFile{jpegFile("fine"), pdfFile("corrupt")},
	})
	if !errors.Is(err, extract.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	if f.llm.calls() != 1 {
		t.Errorf("completion must not be called after extraction failure")
	}

	hist, _ := f.uc.History(ctx, first.SessionKey)
	if len(hist.Messages) != 2 || len(hist.Documents) != 0 {
		t.Errorf("session mutated: %+v", hist)
	}
	if f.store.live.Load() != 0 {
		t.Errorf("stored uploads should be removed after failure")
	}
}

func TestChat_UpstreamFailure(t *testing.T) {
	upstreamErr := &llmprovider.UpstreamRejectedError{Provider: "openai", StatusCode: 401, Detail: "bad key"}

	run := func(t *testing.T, persist bool) chat.HistoryOutput {
		f := newFixture(func(c *usecase.Config, _ *upload.Config) { c.PersistOnUpstreamFailure = persist })
		ctx := context.Background()
		first, _ := f.uc.Chat(ctx, chat.ChatInput{Prompt: "hello"})

		f.llm.err = upstreamErr
		out, err := f.uc.Chat(ctx, chat.ChatInput{
			Prompt:     "again",
			SessionKey: first.SessionKey,
			Messages:   []model.Message{{Role: model.RoleUser, Content: "delta"}},
			Files:      []upload.UploadedFile{jpegFile("doc")},
		})
		var rejected *llmprovider.UpstreamRejectedError
		if !errors.As(err, &rejected) {
			t.Fatalf("expected UpstreamRejectedError, got %v", err)
		}
		if out.SessionKey != first.SessionKey {
			t.Errorf("session key should still be reported")
		}

		hist, _ := f.uc.History(ctx, first.SessionKey)
		return hist
	}

	t.Run("nothing committed by default", func(t *testing.T) {
		hist := run(t, false)
		if len(hist.Messages) != 2 || len(hist.Documents) != 0 {
			t.Errorf("session mutated: %+v", hist)
		}
	})

	t.Run("delta and documents committed when configured", func(t *testing.T) {
		hist := run(t, true)
		if len(hist.Messages) != 3 || hist.Messages[2].Content != "delta" {
			t.Errorf("expected delta without prompt, got %+v", hist.Messages)
		}
		if len(hist.Documents) != 1 {
			t.Errorf("expected the document to be kept, got %+v", hist.Documents)
		}
	})
}

func TestChat_RetentionBound(t *testing.T) {
	f := newFixture(func(c *usecase.Config, _ *upload.Config) {
		c.MaxMessages = 4
		c.MaxDocuments = 2
	})
	ctx := context.Background()

	out, _ := f.uc.Chat(ctx, chat.ChatInput{Prompt: "p0", Files: []upload.UploadedFile{pdfFile("a|b|c")}})
	for i := 1; i <= 3; i++ {
		f.llm.reply = "r" + string(rune('0'+i))
		if _, err := f.uc.Chat(ctx, chat.ChatInput{Prompt: "p" + string(rune('0'+i)), SessionKey: out.SessionKey}); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		// The sequence never carries more than the retained history.
		if n := len(f.llm.last().Messages); n > 1+4+2+1 {
			t.Errorf("turn %d: sequence too long (%d)", i, n)
		}
	}

	hist, _ := f.uc.History(ctx, out.SessionKey)
	gotContents := []string{}
	for _, m := range hist.Messages {
		gotContents = append(gotContents, m.Content)
	}
	if !reflect.DeepEqual(gotContents, []string{"p2", "r2", "p3", "r3"}) {
		t.Errorf("expected newest four messages, got %v", gotContents)
	}
	if len(hist.Documents) != 2 || hist.Documents[0].Label != "Slide 2" {
		t.Errorf("expected newest two slides, got %+v", hist.Documents)
	}
}

func TestChat_SerializesSameSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first, _ := f.uc.Chat(ctx, chat.ChatInput{Prompt: "start"})
	f.llm.delay = 20 * time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.uc.Chat(ctx, chat.ChatInput{Prompt: "turn", SessionKey: first.SessionKey}); err != nil {
				t.Errorf("concurrent turn: %v", err)
			}
		}()
	}
	wg.Wait()

	hist, _ := f.uc.History(ctx, first.SessionKey)
	if len(hist.Messages) != 6 {
		t.Errorf("expected every turn committed, got %d messages", len(hist.Messages))
	}
	if n := len(f.llm.last().Messages); n != 1+4+1 {
		t.Errorf("later turn should see the earlier one, sequence length %d", n)
	}
}

func TestChat_QueuedTurnStopsWhenCallerGivesUp(t *testing.T) {
	f := newFixture()
	first, _ := f.uc.Chat(context.Background(), chat.ChatInput{Prompt: "start"})
	f.llm.delay = 100 * time.Millisecond

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := f.uc.Chat(context.Background(), chat.ChatInput{Prompt: "slow", SessionKey: first.SessionKey}); err != nil {
			t.Errorf("holder turn: %v", err)
		}
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := f.uc.Chat(ctx, chat.ChatInput{Prompt: "queued", SessionKey: first.SessionKey})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded while waiting, got %v", err)
	}
	wg.Wait()

	if n := f.llm.calls(); n != 2 {
		t.Errorf("queued turn must not reach the completion service, got %d calls", n)
	}
	hist, _ := f.uc.History(context.Background(), first.SessionKey)
	if len(hist.Messages) != 4 {
		t.Errorf("expected only the first two turns, got %d messages", len(hist.Messages))
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "q"},
		{Role: model.RoleAssistant, Content: "a"},
	}
	docs := []model.DocumentUnit{
		model.NewDocumentUnit(model.DocumentKindSlide, 1, "Intro"),
		model.NewDocumentUnit(model.DocumentKindSlide, 2, ""),
	}

	a := usecase.Assemble("S", history, docs, "next")
	b := usecase.Assemble("S", history, docs, "next")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("assembly is not deterministic")
	}

	want := []model.Message{
		{Role: model.RoleSystem, Content: "S"},
		history[0],
		history[1],
		{Role: model.RoleUser, Content: "<strong>Content from Slide 1:</strong><br><p>Intro</p>"},
		{Role: model.RoleUser, Content: "<strong>Content from Slide 2:</strong><br><p></p>"},
		{Role: model.RoleUser, Content: "next"},
	}
	if !reflect.DeepEqual(a, want) {
		t.Errorf("unexpected sequence:\n got %+v\nwant %+v", a, want)
	}
}

func TestAssemble_EmptyPrompt(t *testing.T) {
	seq := usecase.Assemble("S", nil, nil, "")
	if len(seq) != 2 || seq[1].Role != model.RoleUser || seq[1].Content != "" {
		t.Errorf("empty prompt should still be sent, got %+v", seq)
	}
}
