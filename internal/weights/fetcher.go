// Package weights downloads and caches model checkpoints. The cache
// directory is process-wide state shared between runs: downloads are guarded
// by a file lock so concurrent runs never corrupt or re-fetch a checkpoint,
// and files land under their final name only once fully written.
package weights

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/gofrs/flock"

	"upscaler/internal/fileutil"
	"upscaler/internal/logging"
)

// Fetcher resolves checkpoint URLs to local files in a cache directory.
type Fetcher struct {
	dir    string
	client *http.Client
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher constructs a Fetcher rooted at dir.
func NewFetcher(dir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		dir:    dir,
		client: http.DefaultClient,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Dir returns the cache directory.
func (f *Fetcher) Dir() string { return f.dir }

// Fetch returns the local path for the checkpoint at rawURL, downloading it
// into the cache only when absent. Pre-existing cache files are trusted and
// returned without network access.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse weights url: %w", err)
	}
	filename := path.Base(parsed.Path)
	if filename == "" || filename == "." || filename == "/" {
		return "", fmt.Errorf("weights url %q has no filename", rawURL)
	}
	target := filepath.Join(f.dir, filename)

	if fileutil.FileExists(target) {
		return target, nil
	}

	if err := fileutil.EnsureDir(f.dir); err != nil {
		return "", err
	}

	lock := flock.New(target + ".lock")
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock weights download: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	// Another run may have finished the download while we waited.
	if fileutil.FileExists(target) {
		return target, nil
	}

	f.logger.Info("downloading weights",
		logging.String("url", rawURL),
		logging.String("path", target))

	if err := f.download(ctx, rawURL, target); err != nil {
		return "", err
	}

	f.logger.Info("download complete", logging.String("path", target))
	return target, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build weights request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("download weights: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download weights: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(f.dir, filepath.Base(target)+".partial-*")
	if err != nil {
		return fmt.Errorf("create temp weights file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write weights: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close weights file: %w", err)
	}

	return fileutil.MoveFile(tmpName, target)
}
