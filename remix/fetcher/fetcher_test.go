package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kim2091/RTX-Remix-Downloader/remix"
)

// recordingReporter captures progress calls for assertions.
type recordingReporter struct {
	started  bool
	names    []string
	total    int64
	complete int64
	done     bool
}

func (r *recordingReporter) Start(name string, total int64) {
	r.started = true
	r.names = append(r.names, name)
	r.total = total
}

func (r *recordingReporter) Update(complete, total int64) {
	r.complete = complete
}

func (r *recordingReporter) Done() {
	r.done = true
}

func TestDownloadFile(t *testing.T) {
	payload := []byte("not really a zip archive but close enough")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	rep := &recordingReporter{}
	f := New("RTX Remix Downloader", rep)
	dest := filepath.Join(t.TempDir(), "package.zip")

	err := f.DownloadFile(context.Background(), srv.URL+"/package.zip", dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	assert.True(t, rep.started)
	assert.True(t, rep.done)
	assert.Equal(t, []string{"package.zip"}, rep.names)
	assert.Equal(t, int64(len(payload)), rep.complete)
}

func TestDownloadFileCreatesParentDirs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "conf contents")
	}))
	t.Cleanup(srv.Close)

	f := New("RTX Remix Downloader", nil)
	dest := filepath.Join(t.TempDir(), ".trex", "bridge.conf")

	require.NoError(t, f.DownloadFile(context.Background(), srv.URL, dest))
	assert.FileExists(t, dest)
}

func TestDownloadFileHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	f := New("RTX Remix Downloader", nil)
	err := f.DownloadFile(context.Background(), srv.URL, filepath.Join(t.TempDir(), "missing.zip"))
	assert.ErrorIs(t, err, remix.ErrDownload{})
}

func TestFetchAuxiliaryFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "contents of %s", r.URL.Path)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	f := New("RTX Remix Downloader", nil)
	files := []remix.AuxiliaryFile{
		{Name: "dxvk.conf", URL: srv.URL + "/dxvk.conf"},
		{Name: "bridge.conf", URL: srv.URL + "/bridge.conf", DestSubdir: ".trex"},
	}

	require.NoError(t, FetchAuxiliaryFiles(context.Background(), f, dir, files))
	assert.FileExists(t, filepath.Join(dir, "dxvk.conf"))
	assert.FileExists(t, filepath.Join(dir, ".trex", "bridge.conf"))
}
