package instruction_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"content-review-tutor/pkg/instruction"
	pkgLog "content-review-tutor/pkg/log"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestStatic(t *testing.T) {
	src := instruction.NewStatic()
	if !strings.Contains(src.Instruction(), "Content from Slide #") {
		t.Errorf("built-in instruction should describe slide labels")
	}
	if instruction.Static("x").Instruction() != "x" {
		t.Errorf("static source should return its text")
	}
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.txt")
	writeFile(t, path, "  be a tutor \n")

	src, err := instruction.NewFileSource(pkgLog.NewNop(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Instruction() != "be a tutor" {
		t.Errorf("unexpected instruction %q", src.Instruction())
	}
}

func TestFileSource_Invalid(t *testing.T) {
	dir := t.TempDir()
	if _, err := instruction.NewFileSource(pkgLog.NewNop(), filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.txt")
	writeFile(t, empty, "   ")
	if _, err := instruction.NewFileSource(pkgLog.NewNop(), empty); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestFileSource_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.txt")
	writeFile(t, path, "v1")

	src, err := instruction.NewFileSource(pkgLog.NewNop(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := src.StartWatching(); err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer src.StopWatching()

	writeFile(t, path, "v2")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if src.Instruction() == "v2" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("instruction not reloaded, still %q", src.Instruction())
}
