package artifact

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type tarEntry struct {
	name string
	body string
	dir  bool
}

func buildTarGz(t *testing.T, entries []tarEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0o644}
		if e.dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
		} else {
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", e.name, err)
		}
		if !e.dir {
			if _, err := tw.Write([]byte(e.body)); err != nil {
				t.Fatalf("write body %s: %v", e.name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

func bundleArchive(t *testing.T) []byte {
	t.Helper()
	return buildTarGz(t, []tarEntry{
		{name: "bundle", dir: true},
		{name: "bundle/eng_model", dir: true},
		{name: "bundle/eng_model/model.json", body: `{}`},
	})
}

func TestEnsureDownloadsAndExtracts(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(bundleArchive(t))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(srv.URL, time.Second*10, zerolog.Nop())
	root, err := f.Ensure(context.Background(), dir, "bundle", false)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if root != dir {
		t.Fatalf("root = %q, want %q", root, dir)
	}
	model := filepath.Join(dir, "bundle", "eng_model", "model.json")
	if _, err := os.Stat(model); err != nil {
		t.Fatalf("extracted model missing: %v", err)
	}
	// Archive must be cleaned up after extraction.
	if _, err := os.Stat(filepath.Join(dir, "bundle.tar.gz")); !os.IsNotExist(err) {
		t.Fatalf("temporary archive left behind")
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 download, got %d", hits.Load())
	}
}

func TestEnsureIdempotentCacheHit(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(bundleArchive(t))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(srv.URL, time.Second*10, zerolog.Nop())
	for i := 0; i < 2; i++ {
		if _, err := f.Ensure(context.Background(), dir, "bundle", false); err != nil {
			t.Fatalf("ensure #%d: %v", i+1, err)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("second call must be a no-op, got %d downloads", hits.Load())
	}
}

func TestEnsureForceRefreshRedownloads(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(bundleArchive(t))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(srv.URL, time.Second*10, zerolog.Nop())
	if _, err := f.Ensure(context.Background(), dir, "bundle", false); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := f.Ensure(context.Background(), dir, "bundle", true); err != nil {
		t.Fatalf("ensure forced: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("forced refresh must re-download, got %d downloads", hits.Load())
	}
}

func TestEnsureServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(srv.URL, time.Second*10, zerolog.Nop())
	if _, err := f.Ensure(context.Background(), t.TempDir(), "bundle", false); err == nil {
		t.Fatalf("expected error on HTTP 404")
	}
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	archive := buildTarGz(t, []tarEntry{
		{name: "bundle", dir: true},
		{name: "../evil.txt", body: "owned"},
	})
	parent := t.TempDir()
	target := filepath.Join(parent, "models")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	archivePath := filepath.Join(parent, "b.tar.gz")
	if err := os.WriteFile(archivePath, archive, 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	err := extractTarGz(archivePath, target)
	if err == nil {
		t.Fatalf("expected security violation")
	}
	if !IsSecurityViolation(err) {
		t.Fatalf("expected security violation, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(parent, "evil.txt")); !os.IsNotExist(statErr) {
		t.Fatalf("traversal wrote outside the target directory")
	}
}

func TestExtractRejectsSymlinkMembers(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "bundle/link",
		Typeflag: tar.TypeSymlink,
		Linkname: "../../etc/passwd",
	}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	tw.Close()
	gz.Close()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "b.tar.gz")
	if err := os.WriteFile(archivePath, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	if err := extractTarGz(archivePath, dir); !IsSecurityViolation(err) {
		t.Fatalf("expected security violation for symlink member, got %v", err)
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://localhost:1/override")
	if got := BaseURLFromEnv(); got != "http://localhost:1/override" {
		t.Fatalf("env override ignored, got %q", got)
	}
	t.Setenv(EnvBaseURL, "")
	if got := BaseURLFromEnv(); got != DefaultBaseURL {
		t.Fatalf("default URL not used, got %q", got)
	}
}
