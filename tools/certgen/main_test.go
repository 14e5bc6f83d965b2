package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atinyakov/PageGuard/internal/certgen"
)

func TestRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "certs")

	certPath, keyPath, err := run(dir, []string{" localhost", "", "127.0.0.1 "}, time.Hour)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("stat key: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("key mode = %v; want 0600", info.Mode().Perm())
	}

	if _, err := certgen.LoadServerTLS(certPath, keyPath); err != nil {
		t.Errorf("generated pair does not load: %v", err)
	}
}

func TestRun_NoHosts(t *testing.T) {
	if _, _, err := run(t.TempDir(), []string{" ", ""}, time.Hour); err == nil {
		t.Error("expected error for empty hosts")
	}
}
