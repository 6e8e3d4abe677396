// Package installer wires the resolver, fetcher, extractor and
// post-processor into the four installation flows and runs the one
// selected by the user's answers.
package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/Kim2091/RTX-Remix-Downloader/internal/fsutil"
	"github.com/Kim2091/RTX-Remix-Downloader/remix"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/archive"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/config"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/fetcher"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/postproc"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/resolver"
)

// Resolver is the part of the GitHub API client the installer uses.
type Resolver interface {
	LatestRelease(ctx context.Context, repo, buildType string) (remix.RemoteAsset, error)
	ResolveArtifacts(ctx context.Context, sources []resolver.ArtifactSource) ([]resolver.Resolved, error)
}

type Installer struct {
	cfg      *config.InstallerConfig
	resolver Resolver
	fetcher  fetcher.Fetcher
}

func New(cfg *config.InstallerConfig, res Resolver, f fetcher.Fetcher) *Installer {
	return &Installer{cfg: cfg, resolver: res, fetcher: f}
}

// flowFunc runs one installation variant inside dir and returns the
// resolved build names for the manifest.
type flowFunc func(ctx context.Context, dir string, sel remix.BuildSelection) ([]string, error)

type flowKey struct {
	stream remix.Stream
	arch   remix.Arch
}

func (ins *Installer) flows() map[flowKey]flowFunc {
	return map[flowKey]flowFunc{
		{remix.StreamStable, remix.ArchX86}:      ins.stableX86,
		{remix.StreamStable, remix.ArchX64}:      ins.stableX64,
		{remix.StreamDevelopment, remix.ArchX86}: ins.developmentX86,
		{remix.StreamDevelopment, remix.ArchX64}: ins.developmentX64,
	}
}

// Run prepares the target directory, executes the flow matching sel and
// writes the build manifest. It returns the absolute path of the final
// install directory.
func (ins *Installer) Run(ctx context.Context, sel remix.BuildSelection) (string, error) {
	dir, err := ins.prepareTargetDir()
	if err != nil {
		return "", err
	}

	names, err := ins.flows()[flowKey{sel.Stream, sel.Arch}](ctx, dir, sel)
	if err != nil {
		return "", err
	}

	if len(names) > 0 {
		if err := remix.WriteBuildNames(dir, names); err != nil {
			return "", err
		}
		pterm.Success.Printfln("Created %s with %d build names", remix.BuildNamesFile, len(names))
	}
	return dir, nil
}

// prepareTargetDir removes any previous install wholesale and recreates
// the target directory, so downloads always land in a clean, writable
// tree.
func (ins *Installer) prepareTargetDir() (string, error) {
	dir := ins.cfg.TargetDirName
	if fsutil.Exists(dir) {
		pterm.Info.Println("Cleaning up existing installation...")
		if err := os.RemoveAll(dir); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Abs(dir)
}

// fetchAndExtract downloads asset as zipName into dir, expands it and
// removes debug leftovers.
func (ins *Installer) fetchAndExtract(ctx context.Context, dir string, asset remix.RemoteAsset, zipName string) error {
	pterm.Info.Printfln("Downloading %s", asset.Name)
	zipPath := filepath.Join(dir, zipName)
	if err := ins.fetcher.DownloadFile(ctx, asset.DownloadURL, zipPath); err != nil {
		return err
	}

	pterm.Info.Println("Extracting package...")
	if err := archive.ExtractZip(ctx, zipPath, dir); err != nil {
		return err
	}

	removed, err := postproc.CleanupDebugFiles(dir, ins.cfg)
	if err != nil {
		return err
	}
	if removed > 0 {
		pterm.Info.Printfln("Cleaned up %d debugging symbol files and unnecessary files", removed)
	}
	return nil
}

func (ins *Installer) stableX86(ctx context.Context, dir string, sel remix.BuildSelection) ([]string, error) {
	pterm.Info.Printfln("Fetching latest stable %s release information...", sel.BuildType)
	asset, err := ins.resolver.LatestRelease(ctx, ins.cfg.ReleaseRepo, sel.BuildType)
	if err != nil {
		return nil, err
	}
	pterm.Success.Printfln("Found stable release: %s", asset.Name)

	if err := ins.fetchAndExtract(ctx, dir, asset, "stable-release.zip"); err != nil {
		return nil, err
	}

	postproc.RemoveCompatShim(dir, ins.cfg)

	pterm.Info.Println("Downloading dx8 binaries...")
	if err := postproc.InstallDX8Binaries(ctx, ins.fetcher, dir, ins.cfg); err != nil {
		return nil, err
	}

	if err := ins.fetchConfigsAndLicenses(ctx, dir); err != nil {
		return nil, err
	}
	return []string{asset.Name}, nil
}

func (ins *Installer) stableX64(ctx context.Context, dir string, sel remix.BuildSelection) ([]string, error) {
	pterm.Info.Printfln("Fetching latest stable %s release information...", sel.BuildType)
	asset, err := ins.resolver.LatestRelease(ctx, ins.cfg.ReleaseRepo, sel.BuildType)
	if err != nil {
		return nil, err
	}
	pterm.Success.Printfln("Found stable release: %s", asset.Name)

	if err := ins.fetchAndExtract(ctx, dir, asset, "stable-release.zip"); err != nil {
		return nil, err
	}

	pterm.Info.Println("Reorganizing x64 files...")
	if err := postproc.ReorganizeX64(dir, ins.cfg); err != nil {
		return nil, err
	}
	pterm.Success.Println("Files reorganized successfully for x64")

	pterm.Info.Println("Downloading license files...")
	if err := fetcher.FetchAuxiliaryFiles(ctx, ins.fetcher, dir, ins.cfg.X64Licenses); err != nil {
		return nil, err
	}
	return []string{asset.Name}, nil
}

func (ins *Installer) developmentX86(ctx context.Context, dir string, sel remix.BuildSelection) ([]string, error) {
	pterm.Info.Printfln("Fetching unified x86 package (%s build)...", sel.BuildType)
	sources := []resolver.ArtifactSource{{
		Repo:  ins.cfg.ArtifactRepo,
		Match: resolver.UnifiedX86ArtifactMatch(sel.BuildType, ins.cfg.UnifiedX86Marker),
	}}
	names, err := ins.installArtifacts(ctx, dir, sources)
	if err != nil {
		return nil, err
	}

	pterm.Info.Println("Downloading dx8 binaries...")
	if err := postproc.InstallDX8Binaries(ctx, ins.fetcher, dir, ins.cfg); err != nil {
		return nil, err
	}

	if err := ins.fetchConfigsAndLicenses(ctx, dir); err != nil {
		return nil, err
	}
	return names, nil
}

func (ins *Installer) developmentX64(ctx context.Context, dir string, sel remix.BuildSelection) ([]string, error) {
	pterm.Info.Printfln("Fetching x64 package (%s build)...", sel.BuildType)
	sources := []resolver.ArtifactSource{{
		Repo:  ins.cfg.ArtifactRepo,
		Match: resolver.X64ArtifactMatch(sel.BuildType),
	}}
	names, err := ins.installArtifacts(ctx, dir, sources)
	if err != nil {
		return nil, err
	}

	pterm.Info.Println("Downloading license files...")
	if err := fetcher.FetchAuxiliaryFiles(ctx, ins.fetcher, dir, ins.cfg.X64Licenses); err != nil {
		return nil, err
	}
	return names, nil
}

// installArtifacts resolves every source, then downloads and extracts
// each resolved artifact into its destination subfolder. Resolution
// failures are isolated per repository inside ResolveArtifacts; download
// or extraction failures abort the run.
func (ins *Installer) installArtifacts(ctx context.Context, dir string, sources []resolver.ArtifactSource) ([]string, error) {
	resolved, err := ins.resolver.ResolveArtifacts(ctx, sources)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, r := range resolved {
		dest := filepath.Join(dir, r.Source.DestSubdir)
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return nil, err
		}
		if err := ins.fetchAndExtract(ctx, dest, r.Asset, r.Asset.Name+".zip"); err != nil {
			return nil, err
		}
		names = append(names, r.Asset.Name)
	}
	return names, nil
}

func (ins *Installer) fetchConfigsAndLicenses(ctx context.Context, dir string) error {
	pterm.Info.Println("Downloading additional files...")
	if err := fetcher.FetchAuxiliaryFiles(ctx, ins.fetcher, dir, ins.cfg.AdditionalFiles); err != nil {
		return err
	}
	pterm.Info.Println("Downloading license files...")
	return fetcher.FetchAuxiliaryFiles(ctx, ins.fetcher, dir, ins.cfg.Licenses)
}
