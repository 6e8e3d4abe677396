// Package archive expands downloaded zip packages into the target
// directory.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codeclysm/extract/v3"

	"github.com/Kim2091/RTX-Remix-Downloader/remix"
)

// ExtractZip expands every entry of zipPath into destDir, preserving
// relative paths, and deletes the archive after a successful expansion.
// Entries escaping destDir are rejected by the extraction library.
func ExtractZip(ctx context.Context, zipPath, destDir string) error {
	f, err := os.Open(zipPath)
	if err != nil {
		return remix.ErrArchive{Msg: fmt.Sprintf("opening %s: %s", filepath.Base(zipPath), err)}
	}
	err = extract.Zip(ctx, f, destDir, nil)
	f.Close()
	if err != nil {
		return remix.ErrArchive{Msg: fmt.Sprintf("extracting %s: %s", filepath.Base(zipPath), err)}
	}
	return os.Remove(zipPath)
}
