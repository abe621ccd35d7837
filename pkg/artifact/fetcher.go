// Package artifact ensures the model bundle archive is present on disk,
// downloading and extracting it when missing or when a refresh is forced.
package artifact

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"naamd/internal/common/fsutil"
)

// DefaultBaseURL is the remote endpoint serving the model bundle archive.
const DefaultBaseURL = "https://dataverse.harvard.edu/api/access/datafile/6286241"

// EnvBaseURL overrides DefaultBaseURL when set.
const EnvBaseURL = "NAAMD_MODEL_URL"

// DefaultTimeout bounds the whole download; the bundle is tens to hundreds
// of MB, so this is generous but finite.
const DefaultTimeout = 2 * time.Minute

// BaseURLFromEnv resolves the download URL, preferring the environment
// override. Consulted once at construction, not per request.
func BaseURLFromEnv() string {
	if v := os.Getenv(EnvBaseURL); v != "" {
		return v
	}
	return DefaultBaseURL
}

// Fetcher downloads and extracts the model bundle archive.
type Fetcher struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// New returns a Fetcher for baseURL. A zero timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = BaseURLFromEnv()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Ensure makes sure targetDir/bundleName exists, downloading and extracting
// <bundleName>.tar.gz when it is absent or forceRefresh is set. It returns
// targetDir as the artifact root on success. Repeated calls with
// forceRefresh=false while the bundle is present perform no network I/O.
func (f *Fetcher) Ensure(ctx context.Context, targetDir, bundleName string, forceRefresh bool) (string, error) {
	if err := fsutil.EnsureDir(targetDir); err != nil {
		return "", err
	}
	bundleDir := filepath.Join(targetDir, bundleName)
	if fsutil.PathExists(bundleDir) && !forceRefresh {
		f.log.Debug().Str("bundle", bundleDir).Msg("using cached model bundle")
		return targetDir, nil
	}

	archivePath := filepath.Join(targetDir, bundleName+".tar.gz")
	f.log.Info().Str("url", f.baseURL).Str("dir", targetDir).
		Msg("downloading model bundle (first run only)")
	if err := f.download(ctx, archivePath); err != nil {
		f.log.Error().Err(err).Msg("model bundle download failed")
		return "", err
	}
	defer os.Remove(archivePath)

	if err := extractTarGz(archivePath, targetDir); err != nil {
		f.log.Error().Err(err).Msg("model bundle extraction failed")
		return "", err
	}
	f.log.Info().Str("bundle", bundleDir).Msg("finished downloading model bundle")
	return targetDir, nil
}

func (f *Fetcher) download(ctx context.Context, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("download model bundle: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download model bundle: unexpected status %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("write archive file: %w", err)
	}
	return out.Close()
}

// extractTarGz unpacks a gzip-compressed tar archive into targetDir. Every
// member path must resolve inside targetDir; a member that escapes aborts
// the whole extraction with a security violation before it is written.
func extractTarGz(archivePath, targetDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	defer gz.Close()

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve target dir: %w", err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}
		dest, err := secureJoin(absTarget, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
			if err := writeFile(dest, tr, hdr.FileInfo().Mode()); err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
		case tar.TypeSymlink, tar.TypeLink:
			// Link targets are a second traversal vector; the model bundle
			// contains none, so refuse them outright.
			return ErrSecurityViolation(hdr.Name + " (links not allowed)")
		default:
			// Ignore fifos, devices and other exotic members.
		}
	}
}

// secureJoin joins name under absTarget and rejects any resolved path that
// escapes it.
func secureJoin(absTarget, name string) (string, error) {
	dest := filepath.Join(absTarget, name)
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", fmt.Errorf("resolve member %s: %w", name, err)
	}
	if abs != absTarget && !strings.HasPrefix(abs, absTarget+string(os.PathSeparator)) {
		return "", ErrSecurityViolation(name)
	}
	return abs, nil
}

func writeFile(dest string, r io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
