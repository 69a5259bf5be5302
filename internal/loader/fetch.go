package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrLocalNotAllowed is returned for file URLs when local access is disabled.
var ErrLocalNotAllowed = errors.New("fetching from the local filesystem is not allowed")

// Fetcher retrieves schema documents by absolute URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// MapFetcher serves documents from memory, keyed by URL.
type MapFetcher map[string]string

// Fetch implements Fetcher.
func (m MapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	data, ok := m[url]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", url, os.ErrNotExist)
	}

	return []byte(data), nil
}

// HTTPOptions configures an HTTPFetcher.
type HTTPOptions struct {
	// AllowLocal permits file:// URLs and bare paths.
	AllowLocal bool
	// ForceHost sends every remote request to this host instead; the
	// original host is passed in the "host" query parameter.
	ForceHost string
	// ForcePort is the port used together with ForceHost.
	ForcePort int
	// CacheDir stores fetched remote documents; empty disables caching.
	CacheDir string
	// Client is the HTTP client; http.DefaultClient when nil.
	Client *http.Client
	// Logger receives fetch events.
	Logger *slog.Logger
}

// HTTPFetcher fetches documents over HTTP(S) or from local files.
type HTTPFetcher struct {
	opts HTTPOptions
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &HTTPFetcher{opts: opts}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid document URL %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchRemote(ctx, u)
	case "", "file":
		return f.fetchLocal(u)
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q in %s", u.Scheme, rawURL)
	}
}

func (f *HTTPFetcher) fetchLocal(u *url.URL) ([]byte, error) {
	if !f.opts.AllowLocal {
		return nil, fmt.Errorf("%s: %w", u, ErrLocalNotAllowed)
	}

	data, err := os.ReadFile(filepath.FromSlash(u.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", u.Path, err)
	}

	return data, nil
}

func (f *HTTPFetcher) fetchRemote(ctx context.Context, u *url.URL) ([]byte, error) {
	if data, ok := f.readCache(u.String()); ok {
		f.opts.Logger.Debug("cache hit", "url", u.String())
		return data, nil
	}

	target := f.rewrite(u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", u, err)
	}

	f.opts.Logger.Info("fetching schema", "url", u.String(), "via", target.Host)

	resp, err := f.opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", u, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u, err)
	}

	f.writeCache(u.String(), data)

	return data, nil
}

// rewrite applies ForceHost/ForcePort.
func (f *HTTPFetcher) rewrite(u *url.URL) *url.URL {
	if f.opts.ForceHost == "" {
		return u
	}

	out := *u

	q := out.Query()
	q.Set("host", u.Host)
	out.RawQuery = q.Encode()

	out.Host = f.opts.ForceHost
	if f.opts.ForcePort > 0 {
		out.Host += ":" + strconv.Itoa(f.opts.ForcePort)
	}

	return &out
}

func (f *HTTPFetcher) cachePath(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	name := hex.EncodeToString(sum[:8])

	if base := filepath.Base(rawURL); strings.HasSuffix(base, ".xsd") {
		name += "-" + base
	}

	return filepath.Join(f.opts.CacheDir, name)
}

func (f *HTTPFetcher) readCache(rawURL string) ([]byte, bool) {
	if f.opts.CacheDir == "" {
		return nil, false
	}

	data, err := os.ReadFile(f.cachePath(rawURL))
	if err != nil {
		return nil, false
	}

	return data, true
}

func (f *HTTPFetcher) writeCache(rawURL string, data []byte) {
	if f.opts.CacheDir == "" {
		return
	}

	if err := os.MkdirAll(f.opts.CacheDir, 0755); err != nil {
		f.opts.Logger.Warn("cache unavailable", "dir", f.opts.CacheDir, "error", err)
		return
	}

	if err := os.WriteFile(f.cachePath(rawURL), data, 0644); err != nil {
		f.opts.Logger.Warn("cache write failed", "url", rawURL, "error", err)
	}
}
