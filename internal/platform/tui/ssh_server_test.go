package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveHostKeyCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "nested", "host_key")
	got, err := resolveHostKey(path)
	if err != nil {
		t.Fatalf("resolveHostKey: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("key directory missing: %v", err)
	}
}

func TestSSHServerStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.MaxSessions = 2
	cfg.Logger = quietLogger()

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if srv.ActiveSessions() != 0 {
		t.Errorf("active = %d before any connection", srv.ActiveSessions())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	case <-time.After(shutdownGrace + 5*time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
