package instruction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	pkgLog "content-review-tutor/pkg/log"
)

const reloadDebounce = 100 * time.Millisecond

// FileSource serves the instruction stored in a file and reloads it whenever
// the file changes. A failed reload keeps the last good instruction.
type FileSource struct {
	l    pkgLog.Logger
	path string

	mu      sync.RWMutex
	current string

	watcher    *fsnotify.Watcher
	debounce   *time.Timer
	debounceMu sync.Mutex
}

// NewFileSource reads path once and fails if it is missing or empty.
func NewFileSource(l pkgLog.Logger, path string) (*FileSource, error) {
	s := &FileSource{l: l, path: path}
	text, err := s.read()
	if err != nil {
		return nil, err
	}
	s.current = text
	return s, nil
}

func (s *FileSource) Instruction() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// StartWatching watches the parent directory so editors that replace the
// file on save are still picked up.
func (s *FileSource) StartWatching() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("instruction: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("instruction: watch %s: %w", s.path, err)
	}
	s.watcher = watcher

	go s.watchLoop()
	s.l.Infof(context.Background(), "instruction.FileSource: watching %s", s.path)
	return nil
}

func (s *FileSource) StopWatching() {
	s.debounceMu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounceMu.Unlock()

	if s.watcher != nil {
		s.watcher.Close()
	}
}

func (s *FileSource) watchLoop() {
	target := filepath.Clean(s.path)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.scheduleReload()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.l.Errorf(context.Background(), "instruction.FileSource: watcher: %v", err)
		}
	}
}

func (s *FileSource) scheduleReload() {
	s.debounceMu.Lock()
	defer s.debounceMu.Unlock()

	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(reloadDebounce, s.reload)
}

func (s *FileSource) reload() {
	text, err := s.read()
	if err != nil {
		s.l.Warnf(context.Background(), "instruction.FileSource: keeping previous instruction: %v", err)
		return
	}

	s.mu.Lock()
	s.current = text
	s.mu.Unlock()
	s.l.Infof(context.Background(), "instruction.FileSource: reloaded %s", s.path)
}

func (s *FileSource) read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("instruction: read %s: %w", s.path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("instruction: %s is empty", s.path)
	}
	return text, nil
}
