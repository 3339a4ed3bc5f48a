package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/rs/zerolog"
)

// Fetcher downloads archives into a cache directory
type Fetcher struct {
	client   *http.Client
	cacheDir string
	logger   zerolog.Logger
}

// New creates a Fetcher. A nil client uses http.DefaultClient.
func New(cacheDir string, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client:   client,
		cacheDir: cacheDir,
		logger:   logging.GetLogger("fetch"),
	}
}

// CachePath returns where the archive for rawURL is stored. The file name
// keeps the archive's base name so its format can still be detected.
func (f *Fetcher) CachePath(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return filepath.Join(f.cacheDir, hex.EncodeToString(sum[:8])+"-"+path.Base(rawURL))
}

// Fetch returns a local path for rawURL, downloading it if it is not cached
// yet. Local paths and file:// URLs are returned as they are.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if local, ok := localPath(rawURL); ok {
		if _, err := os.Stat(local); err != nil {
			return "", errors.Wrapf(err, errors.ErrDownload, "archive %s not found", local)
		}
		return local, nil
	}

	dst := f.CachePath(rawURL)
	if _, err := os.Stat(dst); err == nil {
		f.logger.Info().Str("url", rawURL).Str("path", dst).Msg("Using cached archive")
		return dst, nil
	}

	if err := os.MkdirAll(f.cacheDir, 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrDirCreate, "failed to create download cache").
			WithDetail("path", f.cacheDir)
	}

	f.logger.Info().Str("url", rawURL).Msg("Downloading")
	if err := f.download(ctx, rawURL, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDownload, "invalid url %s", rawURL)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDownload, "failed to download %s", rawURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrDownload, "failed to download %s: %s", rawURL, resp.Status).
			WithDetail("status", resp.StatusCode)
	}

	// Download next to the final path so an interrupted transfer never
	// looks like a cached archive
	tmp, err := os.CreateTemp(f.cacheDir, ".download-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrDownload, "failed to create temporary file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrDownload, "failed to save %s", rawURL)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return errors.Wrapf(err, errors.ErrDownload, "failed to move download into cache")
	}

	f.logger.Debug().Str("path", dst).Int64("bytes", n).Msg("Download complete")
	return nil
}

func localPath(rawURL string) (string, bool) {
	if !strings.Contains(rawURL, "://") {
		return rawURL, true
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return u.Path, true
}
