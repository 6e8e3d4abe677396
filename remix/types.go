// Package remix holds the core types shared by the downloader pipeline:
// the user's build selection, resolved remote assets and the static
// auxiliary file entries, together with the error taxonomy and the
// logging seam used by the library packages.
package remix

// Stream selects between tagged stable releases and the latest
// continuous-integration artifacts.
type Stream int

const (
	StreamStable Stream = iota
	StreamDevelopment
)

func (s Stream) String() string {
	switch s {
	case StreamStable:
		return "stable"
	case StreamDevelopment:
		return "development"
	default:
		return "unknown"
	}
}

// Arch is the architecture of the games the runtime will be injected into.
type Arch int

const (
	ArchX86 Arch = iota
	ArchX64
)

func (a Arch) String() string {
	switch a {
	case ArchX86:
		return "x86"
	case ArchX64:
		return "x64"
	default:
		return "unknown"
	}
}

// BuildSelection holds the answers to the three interactive prompts.
// It is constructed once and never mutated afterwards; every branch of
// the pipeline is decided by it.
type BuildSelection struct {
	Stream    Stream
	Arch      Arch
	BuildType string
}

// RemoteAsset is a downloadable package resolved from the GitHub API,
// either a release asset or a workflow artifact. ID is only set for
// workflow artifacts.
type RemoteAsset struct {
	Name        string
	DownloadURL string
	ID          int64
}

// AuxiliaryFile is one entry of the static configuration and license
// file tables. DestSubdir is relative to the target directory, an empty
// string meaning the directory root.
type AuxiliaryFile struct {
	Name       string
	URL        string
	DestSubdir string
}
