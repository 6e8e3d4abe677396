package remix

import (
	"fmt"
)

// Error types used across the downloader. The names chosen should start
// with 'Err' except where there is a good reason not to, and provide that
// reason in those cases.

// Resolution errors

// ErrResolution - no matching release asset, successful workflow run or
// workflow artifact was found for the requested build.
type ErrResolution struct {
	Msg string
}

func (e ErrResolution) Error() string {
	return fmt.Sprintf("resolution error: %s", e.Msg)
}

func (e ErrResolution) Is(target error) bool {
	return target == ErrResolution{}
}

// Download errors

// ErrDownload - an error occurred while attempting to download a file
type ErrDownload struct {
	Msg string
}

func (e ErrDownload) Error() string {
	return fmt.Sprintf("download error: %s", e.Msg)
}

func (e ErrDownload) Is(target error) bool {
	return target == ErrDownload{}
}

// ErrDownloadHTTP - returned for non-2xx responses from any endpoint
type ErrDownloadHTTP struct {
	StatusCode int
	URL        string
}

func (e ErrDownloadHTTP) Error() string {
	return fmt.Sprintf("failed to download %s, http status code: %d", e.URL, e.StatusCode)
}

// ErrDownloadHTTP is a subset of ErrDownload
func (e ErrDownloadHTTP) Is(target error) bool {
	return target == ErrDownload{} || target == ErrDownloadHTTP{}
}

// Archive errors

// ErrArchive - the downloaded file is not a valid zip archive or one of
// its entries could not be written to the target directory.
type ErrArchive struct {
	Msg string
}

func (e ErrArchive) Error() string {
	return fmt.Sprintf("archive error: %s", e.Msg)
}

func (e ErrArchive) Is(target error) bool {
	return target == ErrArchive{}
}

// File system errors

// ErrStructure - the extracted package tree is missing a structural
// prerequisite for reorganization, such as the .trex directory.
type ErrStructure struct {
	Msg string
}

func (e ErrStructure) Error() string {
	return fmt.Sprintf("unexpected package structure: %s", e.Msg)
}

func (e ErrStructure) Is(target error) bool {
	return target == ErrStructure{}
}
