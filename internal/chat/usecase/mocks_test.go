package usecase_test

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"content-review-tutor/internal/chat"
	"content-review-tutor/internal/chat/usecase"
	"content-review-tutor/internal/extract"
	"content-review-tutor/internal/session/repository"
	"content-review-tutor/internal/upload"
	"content-review-tutor/pkg/filestore"
	"content-review-tutor/pkg/instruction"
	"content-review-tutor/pkg/llmprovider"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// mockCompleter records every request and answers with reply or err.
type mockCompleter struct {
	mu       sync.Mutex
	requests []*llmprovider.Request
	reply    string
	err      error
	delay    time.Duration
}

func (m *mockCompleter) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{Content: m.reply}, nil
}

func (m *mockCompleter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockCompleter) last() *llmprovider.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

// mockExtractor yields pages split on "|" from the file content, or fails
// when the content is "corrupt".
type mockExtractor struct {
	calls atomic.Int32
}

func (m *mockExtractor) Extract(ctx context.Context, data []byte) iter.Seq2[string, error] {
	m.calls.Add(1)
	return func(yield func(string, error) bool) {
		text := string(data)
		if i := strings.Index(text, "TEXT:"); i >= 0 {
			text = text[i+len("TEXT:"):]
		}
		if text == "corrupt" {
			yield("", errors.New("unreadable"))
			return
		}
		for _, page := range strings.Split(text, "|") {
			if !yield(page, nil) {
				return
			}
		}
	}
}

// countingStore tracks live stored files.
type countingStore struct {
	filestore.IStore
	live atomic.Int32
}

func (s *countingStore) Save(ctx context.Context, name string, data []byte) (filestore.Ref, error) {
	ref, err := s.IStore.Save(ctx, name, data)
	if err == nil {
		s.live.Add(1)
	}
	return ref, err
}

func (s *countingStore) Remove(ctx context.Context, ref filestore.Ref) error {
	s.live.Add(-1)
	return s.IStore.Remove(ctx, ref)
}

const systemText = "S"

type fixture struct {
	uc    chat.UseCase
	repo  repository.Repository
	llm   *mockCompleter
	image *mockExtractor
	pdf   *mockExtractor
	store *countingStore
}

type fixtureOption func(*usecase.Config, *upload.Config)

func newFixture(opts ...fixtureOption) *fixture {
	cfg := usecase.Config{
		MaxMessages:     50,
		MaxDocuments:    100,
		SerializePerKey: true,
		Temperature:     0.3,
		MaxTokens:       4000,
	}
	gateCfg := upload.Config{
		MaxSizeBytes:  5 * 1024 * 1024,
		AllowedTypes:  []string{"image/jpeg", "image/png", "application/pdf"},
		VerifyContent: true,
	}
	for _, opt := range opts {
		opt(&cfg, &gateCfg)
	}

	f := &fixture{
		repo:  repository.NewMemory(repository.Options{MaxMessages: cfg.MaxMessages, MaxDocuments: cfg.MaxDocuments}),
		llm:   &mockCompleter{reply: "ok"},
		image: &mockExtractor{},
		pdf:   &mockExtractor{},
		store: &countingStore{IStore: filestore.New(afero.NewMemMapFs())},
	}
	l := &mockLogger{}
	ex := extract.New(l, f.store, f.image, f.pdf, extract.Config{Timeout: time.Second})
	f.uc = usecase.New(l, upload.NewGate(gateCfg), f.store, ex, f.repo, f.llm, instruction.Static(systemText), cfg)
	return f
}

// JPEG and PDF magic bytes followed by the text the fake engines return.
func jpegFile(text string) upload.UploadedFile {
	return upload.UploadedFile{
		Bytes:             []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00TEXT:" + text),
		DeclaredMediaType: "image/jpeg",
		OriginalName:      "notes.jpg",
	}
}

func pdfFile(pages string) upload.UploadedFile {
	return upload.UploadedFile{
		Bytes:             []byte("%PDF-1.4\nTEXT:" + pages),
		DeclaredMediaType: "application/pdf",
		OriginalName:      "lecture.pdf",
	}
}
