package session

import (
	"os"
	"testing"

	"github.com/threatflux/cot/internal/config"
)

func TestNewWorkspace_CreatesAndCloses(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}

	if _, err := os.Stat(ws.Dir()); err != nil {
		t.Fatalf("expected scratch dir to exist: %v", err)
	}

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Fatalf("expected scratch dir to be removed, stat err = %v", err)
	}
}

func TestCancelToken(t *testing.T) {
	tok := NewCancelToken()
	if tok.Cancelled() {
		t.Fatal("expected fresh token to be uncancelled")
	}
	if err := tok.Check(); err != nil {
		t.Fatalf("expected nil error before cancel, got %v", err)
	}

	tok.Cancel()
	if !tok.Cancelled() {
		t.Fatal("expected token to be cancelled")
	}
	if err := tok.Check(); err == nil {
		t.Fatal("expected error after cancel")
	}
}

func TestSession_ConfirmAutoConfirm(t *testing.T) {
	cfg := config.Default()
	cfg.Session.ScratchDir = t.TempDir()

	s, err := New(cfg, nil, WithAutoConfirm(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if !s.Confirm("anything") {
		t.Fatal("expected auto-confirm to return true")
	}
}

func TestSession_ConfirmCallback(t *testing.T) {
	cfg := config.Default()
	cfg.Session.ScratchDir = t.TempDir()

	var asked string
	s, err := New(cfg, nil, WithConfirm(func(msg string) bool {
		asked = msg
		return true
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if !s.Confirm("low disk space") {
		t.Fatal("expected callback to confirm")
	}
	if asked != "low disk space" {
		t.Fatalf("expected callback to receive message, got %q", asked)
	}
}

func TestSession_ConfirmDeclinesWithoutCallback(t *testing.T) {
	cfg := config.Default()
	cfg.Session.ScratchDir = t.TempDir()

	s, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if s.Confirm("anything") {
		t.Fatal("expected decline with no callback and no auto-confirm")
	}
}

func TestSession_CachedHelperPath(t *testing.T) {
	cfg := config.Default()
	cfg.Session.ScratchDir = t.TempDir()

	s, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	calls := 0
	resolve := func() (string, error) {
		calls++
		return "/usr/bin/qemu-img", nil
	}

	for i := 0; i < 3; i++ {
		path, err := s.CachedHelperPath("qemu-img", resolve)
		if err != nil {
			t.Fatalf("CachedHelperPath: %v", err)
		}
		if path != "/usr/bin/qemu-img" {
			t.Fatalf("unexpected path %q", path)
		}
	}

	if calls != 1 {
		t.Fatalf("expected resolve to be memoized, called %d times", calls)
	}
}
