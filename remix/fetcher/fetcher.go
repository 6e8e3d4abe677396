// Package fetcher performs the streaming HTTP downloads of archives and
// auxiliary files, reporting transfer progress as bytes arrive.
package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cavaliergopher/grab/v3"

	"github.com/Kim2091/RTX-Remix-Downloader/remix"
)

// ProgressReporter receives transfer progress for one download at a
// time. Total is -1 when the server does not advertise a content length,
// degrading the display to indeterminate.
type ProgressReporter interface {
	Start(name string, total int64)
	Update(complete, total int64)
	Done()
}

// Fetcher downloads a URL into a local file.
type Fetcher interface {
	DownloadFile(ctx context.Context, url, dest string) error
}

// DefaultFetcher implements Fetcher on top of grab. Downloads never
// resume partial files; every run starts from a clean target directory.
type DefaultFetcher struct {
	client   *grab.Client
	progress ProgressReporter
}

// New returns a DefaultFetcher sending userAgent with every request.
// progress may be nil.
func New(userAgent string, progress ProgressReporter) *DefaultFetcher {
	client := grab.NewClient()
	client.UserAgent = userAgent
	return &DefaultFetcher{client: client, progress: progress}
}

// DownloadFile streams url into dest, creating parent directories as
// needed. It blocks until the transfer completes or fails.
func (f *DefaultFetcher) DownloadFile(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	req, err := grab.NewRequest(dest, url)
	if err != nil {
		return remix.ErrDownload{Msg: err.Error()}
	}
	req = req.WithContext(ctx)
	req.NoResume = true

	resp := f.client.Do(req)
	if f.progress != nil {
		f.progress.Start(filepath.Base(dest), resp.Size())
		defer f.progress.Done()
	}

	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if f.progress != nil {
				f.progress.Update(resp.BytesComplete(), resp.Size())
			}
		case <-resp.Done:
			if f.progress != nil {
				f.progress.Update(resp.BytesComplete(), resp.Size())
			}
			if err := resp.Err(); err != nil {
				if resp.HTTPResponse != nil && resp.HTTPResponse.StatusCode >= 400 {
					return remix.ErrDownloadHTTP{StatusCode: resp.HTTPResponse.StatusCode, URL: url}
				}
				return remix.ErrDownload{Msg: fmt.Sprintf("download failed for %s: %s", url, err)}
			}
			return nil
		}
	}
}

// FetchAuxiliaryFiles downloads every entry of a static file table into
// dir, honoring each entry's destination subfolder.
func FetchAuxiliaryFiles(ctx context.Context, f Fetcher, dir string, files []remix.AuxiliaryFile) error {
	for _, af := range files {
		dest := filepath.Join(dir, af.DestSubdir, af.Name)
		if err := f.DownloadFile(ctx, af.URL, dest); err != nil {
			return err
		}
		remix.GetLogger().Info("downloaded auxiliary file", "name", af.Name)
	}
	return nil
}
