// Package postproc applies the fixed file-system edits that turn an
// extracted package into a usable install: debug-symbol cleanup, the DX8
// legacy-binaries bundle for x86 games and the .trex flattening for x64
// stable packages.
package postproc

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kim2091/RTX-Remix-Downloader/internal/fsutil"
	"github.com/Kim2091/RTX-Remix-Downloader/remix"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/archive"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/config"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/fetcher"
)

// CleanupDebugFiles walks dir and deletes debug-symbol files and CI
// metadata leftovers, returning how many files were removed. Individual
// removal failures are logged and skipped, so the walk always covers the
// whole tree and a second run is a no-op.
func CleanupDebugFiles(dir string, cfg *config.InstallerConfig) (int, error) {
	removed := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isDebugFile(d.Name(), cfg) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			remix.GetLogger().Error(err, "failed to remove file", "path", path)
			return nil
		}
		removed++
		return nil
	})
	return removed, err
}

func isDebugFile(name string, cfg *config.InstallerConfig) bool {
	for _, ext := range cfg.DebugExtensions {
		if strings.EqualFold(filepath.Ext(name), ext) {
			return true
		}
	}
	for _, exact := range cfg.DebugFileNames {
		if name == exact {
			return true
		}
	}
	return false
}

// RemoveCompatShim deletes the d3d8to9 shim DLL and its license file
// from dir. Stable x86 packages ship the shim but the DX8 binaries
// bundle replaces it. Failures are warnings only.
func RemoveCompatShim(dir string, cfg *config.InstallerConfig) {
	for _, name := range []string{cfg.ShimDLL, cfg.ShimLicense} {
		removed, err := fsutil.RemoveIfPresent(filepath.Join(dir, name))
		if err != nil {
			remix.GetLogger().Error(err, "could not remove compatibility shim file", "name", name)
			continue
		}
		if removed {
			remix.GetLogger().Info("removed compatibility shim file", "name", name)
		}
	}
}

// InstallDX8Binaries downloads the legacy DX8 binaries bundle into dir,
// expands it, disables the native d3d8 DLL by renaming it, removes the
// shim DLL the bundle carries and fetches the bundle's own license file.
func InstallDX8Binaries(ctx context.Context, f fetcher.Fetcher, dir string, cfg *config.InstallerConfig) error {
	zipPath := filepath.Join(dir, "dx8_binaries.zip")
	if err := f.DownloadFile(ctx, cfg.DX8BundleURL, zipPath); err != nil {
		return err
	}
	if err := archive.ExtractZip(ctx, zipPath, dir); err != nil {
		return err
	}

	// Renaming instead of deleting lets users re-enable the native DLL.
	d3d8 := filepath.Join(dir, cfg.D3D8DLL)
	if fsutil.Exists(d3d8) {
		if err := os.Rename(d3d8, filepath.Join(dir, cfg.D3D8DisabledDLL)); err != nil {
			return err
		}
	}

	if _, err := fsutil.RemoveIfPresent(filepath.Join(dir, cfg.ShimDLL)); err != nil {
		remix.GetLogger().Error(err, "could not remove compatibility shim file", "name", cfg.ShimDLL)
	}

	return f.DownloadFile(ctx, cfg.DX8LicenseURL, filepath.Join(dir, cfg.DX8LicenseName))
}

// ReorganizeX64 flattens the nested .trex runtime directory into dir for
// 64-bit stable packages. When .trex is absent, a dxvk DLL in the root
// is accepted as proof of an already flattened package; anything else is
// a structural failure. Either way a fixed list of 32-bit-only files is
// purged from the root afterwards.
func ReorganizeX64(dir string, cfg *config.InstallerConfig) error {
	trex := filepath.Join(dir, cfg.TrexDirName)
	if !fsutil.Exists(trex) {
		if !fsutil.Exists(filepath.Join(dir, cfg.X64MarkerFile)) {
			return remix.ErrStructure{Msg: fmt.Sprintf(
				"could not find the %s directory or %s in the package root", cfg.TrexDirName, cfg.X64MarkerFile)}
		}
		remix.GetLogger().Info("package already flattened, skipping reorganization", "marker", cfg.X64MarkerFile)
	} else {
		// The bridge executable only serves 32-bit games.
		if _, err := fsutil.RemoveIfPresent(filepath.Join(trex, cfg.BridgeExecutable)); err != nil {
			return err
		}

		entries, err := os.ReadDir(trex)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			// Files from .trex win over same-named files in the root.
			if err := fsutil.MoveFile(filepath.Join(trex, e.Name()), filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}

		usd := filepath.Join(trex, cfg.UsdDirName)
		if fsutil.Exists(usd) {
			if err := fsutil.ReplaceDir(usd, filepath.Join(dir, cfg.UsdDirName)); err != nil {
				return err
			}
		}

		if err := os.RemoveAll(trex); err != nil {
			return err
		}
	}

	for _, name := range cfg.X64RootBlocklist {
		if _, err := fsutil.RemoveIfPresent(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
