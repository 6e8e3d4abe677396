// Package config holds the fixed tables the downloader operates on:
// source repositories, endpoint templates and the auxiliary file lists.
// The configuration is built once at startup and never mutated.
package config

import (
	"time"

	"github.com/Kim2091/RTX-Remix-Downloader/remix"
)

const (
	// ReleaseRepo publishes the packaged stable builds.
	ReleaseRepo = "NVIDIAGameWorks/rtx-remix"
	// ArtifactRepo runs the CI workflows the development builds come from.
	ArtifactRepo = "NVIDIAGameWorks/dxvk-remix"
)

type InstallerConfig struct {
	BuildTypes []string

	ReleaseRepo  string
	ArtifactRepo string

	// APIBaseURL is the GitHub REST API root. Tests point it at a local
	// server.
	APIBaseURL string
	// ArtifactRedirectTemplate synthesizes an unauthenticated download URL
	// for a workflow artifact from its repository and numeric id. CI
	// artifacts cannot be fetched anonymously through the API itself.
	ArtifactRedirectTemplate string

	DX8BundleURL   string
	DX8LicenseURL  string
	DX8LicenseName string

	AdditionalFiles []remix.AuxiliaryFile
	Licenses        []remix.AuxiliaryFile
	X64Licenses     []remix.AuxiliaryFile

	// Debug cleanup matchers: extensions and exact file names removed
	// from the extracted tree.
	DebugExtensions []string
	DebugFileNames  []string

	// X64RootBlocklist are files never wanted in an x64 install root.
	X64RootBlocklist []string

	TrexDirName      string
	UsdDirName       string
	X64MarkerFile    string
	BridgeExecutable string
	ShimDLL          string
	ShimLicense      string
	D3D8DLL          string
	D3D8DisabledDLL  string

	// UnifiedX86Marker identifies the single-archive x86 CI artifact that
	// bundles the renderer and the bridge together.
	UnifiedX86Marker string

	TargetDirName string
	UserAgent     string
	GuideURL      string
	HTTPTimeout   time.Duration
}

// New creates the InstallerConfig used for a run.
func New() *InstallerConfig {
	return &InstallerConfig{
		BuildTypes: []string{"release", "debugoptimized", "debug"},

		ReleaseRepo:  ReleaseRepo,
		ArtifactRepo: ArtifactRepo,

		APIBaseURL:               "https://api.github.com",
		ArtifactRedirectTemplate: "https://nightly.link/%s/actions/artifacts/%d.zip",

		DX8BundleURL:   "https://nightly.link/elishacloud/dxwrapper/workflows/ci/master/dx8%20game%20binaries.zip",
		DX8LicenseURL:  "https://raw.githubusercontent.com/elishacloud/dxwrapper/refs/heads/master/License.txt",
		DX8LicenseName: "ThirdPartyLicenses-dxwrapper.txt",

		AdditionalFiles: []remix.AuxiliaryFile{
			{Name: "dxvk.conf", URL: "https://raw.githubusercontent.com/NVIDIAGameWorks/dxvk-remix/main/dxvk.conf"},
			{Name: "bridge.conf", URL: "https://raw.githubusercontent.com/NVIDIAGameWorks/bridge-remix/refs/heads/main/bridge.conf", DestSubdir: ".trex"},
		},
		Licenses: []remix.AuxiliaryFile{
			{Name: "LICENSE.txt", URL: "https://raw.githubusercontent.com/NVIDIAGameWorks/rtx-remix/refs/heads/main/LICENSE.txt"},
			{Name: "ThirdPartyLicenses-dxvk.txt", URL: "https://raw.githubusercontent.com/NVIDIAGameWorks/dxvk-remix/refs/heads/main/ThirdPartyLicenses.txt"},
			{Name: "ThirdPartyLicenses-bridge.txt", URL: "https://raw.githubusercontent.com/NVIDIAGameWorks/bridge-remix/refs/heads/main/ThirdPartyLicenses.txt"},
		},
		// x64 installs only carry the renderer, so only DXVK licensing
		// applies.
		X64Licenses: []remix.AuxiliaryFile{
			{Name: "LICENSE.txt", URL: "https://raw.githubusercontent.com/NVIDIAGameWorks/rtx-remix/refs/heads/main/LICENSE.txt"},
			{Name: "ThirdPartyLicenses.txt", URL: "https://raw.githubusercontent.com/NVIDIAGameWorks/dxvk-remix/refs/heads/main/ThirdPartyLicenses.txt"},
		},

		DebugExtensions: []string{".pdb"},
		DebugFileNames:  []string{"CRC.txt", "artifacts_readme.txt"},

		X64RootBlocklist: []string{
			"nvremixbridge.exe",
			"d3d8to9.dll",
			"d3d8.dll",
			"d3d8_off.dll",
			"dxwrapper.dll",
			"dxwrapper.ini",
		},

		TrexDirName:      ".trex",
		UsdDirName:       "usd",
		X64MarkerFile:    "dxvk.dll",
		BridgeExecutable: "nvremixbridge.exe",
		ShimDLL:          "d3d8to9.dll",
		ShimLicense:      "ThirdPartyLicenses-d3d8to9.txt",
		D3D8DLL:          "d3d8.dll",
		D3D8DisabledDLL:  "d3d8_off.dll",

		UnifiedX86Marker: "rtx-remix-for-x86-games",

		TargetDirName: "remix",
		UserAgent:     "RTX Remix Downloader",
		GuideURL:      "https://github.com/NVIDIAGameWorks/rtx-remix/wiki/runtime-user-guide",
		HTTPTimeout:   30 * time.Second,
	}
}
