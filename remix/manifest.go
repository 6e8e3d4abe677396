package remix

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// BuildNamesFile is the manifest written into the target directory,
// recording which builds were actually installed, one name per line.
const BuildNamesFile = "build-names.txt"

// WriteBuildNames writes the resolved build names to the manifest file
// in dir, preserving their order.
func WriteBuildNames(dir string, names []string) error {
	f, err := os.Create(filepath.Join(dir, BuildNamesFile))
	if err != nil {
		return err
	}
	defer f.Close()
	for _, name := range names {
		if _, err := fmt.Fprintln(f, name); err != nil {
			return err
		}
	}
	return f.Sync()
}

// ReadBuildNames reads the manifest back, returning one entry per
// non-empty line in file order.
func ReadBuildNames(dir string) ([]string, error) {
	f, err := os.Open(filepath.Join(dir, BuildNamesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var names []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		if s.Text() != "" {
			names = append(names, s.Text())
		}
	}
	return names, s.Err()
}
