package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandHome("~/naamd/models")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := filepath.Join(home, "naamd", "models")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("absolute path must pass through, got %q", got)
	}
	if got, _ := ExpandHome(""); got != "" {
		t.Fatalf("empty path must pass through, got %q", got)
	}
}

func TestPathExistsAndEnsureDir(t *testing.T) {
	d := t.TempDir()
	sub := filepath.Join(d, "a", "b")
	if PathExists(sub) {
		t.Fatalf("path should not exist yet")
	}
	if err := EnsureDir(sub); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !PathExists(sub) {
		t.Fatalf("path should exist after EnsureDir")
	}
	// EnsureDir is idempotent
	if err := EnsureDir(sub); err != nil {
		t.Fatalf("ensure twice: %v", err)
	}
}
