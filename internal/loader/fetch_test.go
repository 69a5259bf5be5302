package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherRemoteAndCache(t *testing.T) {
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		if r.URL.Path != "/a.xsd" {
			http.NotFound(w, r)
			return
		}

		w.Write([]byte("<schema/>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{CacheDir: t.TempDir()})

	data, err := f.Fetch(context.Background(), srv.URL+"/a.xsd")
	require.NoError(t, err)
	assert.Equal(t, "<schema/>", string(data))

	data, err = f.Fetch(context.Background(), srv.URL+"/a.xsd")
	require.NoError(t, err)
	assert.Equal(t, "<schema/>", string(data))
	assert.Equal(t, int32(1), hits.Load(), "second fetch served from cache")

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.xsd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPFetcherForceHost(t *testing.T) {
	var gotHost string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.URL.Query().Get("host")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	srvURL, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	f := NewHTTPFetcher(HTTPOptions{ForceHost: srvURL.URL.Host})

	data, err := f.Fetch(context.Background(), "http://schemas.example.org/x.xsd")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, "schemas.example.org", gotHost)
}

func TestHTTPFetcherLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.xsd")
	require.NoError(t, os.WriteFile(path, []byte("<local/>"), 0644))

	denied := NewHTTPFetcher(HTTPOptions{})
	_, err := denied.Fetch(context.Background(), "file://"+filepath.ToSlash(path))
	require.ErrorIs(t, err, ErrLocalNotAllowed)

	allowed := NewHTTPFetcher(HTTPOptions{AllowLocal: true})
	data, err := allowed.Fetch(context.Background(), "file://"+filepath.ToSlash(path))
	require.NoError(t, err)
	assert.Equal(t, "<local/>", string(data))

	_, err = allowed.Fetch(context.Background(), "ftp://example.com/x.xsd")
	assert.Error(t, err)
}

func TestRewrite(t *testing.T) {
	f := NewHTTPFetcher(HTTPOptions{ForceHost: "localhost", ForcePort: 8080})

	req, err := http.NewRequest(http.MethodGet, "http://example.com/s/a.xsd?v=1", nil)
	require.NoError(t, err)

	got := f.rewrite(req.URL)
	assert.Equal(t, "localhost:8080", got.Host)
	assert.Equal(t, "example.com", got.Query().Get("host"))
	assert.Equal(t, "1", got.Query().Get("v"))
	assert.Equal(t, "example.com", req.URL.Host, "input URL untouched")
}
