package loader

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteSegments writes one segment per line to path, replacing any existing file.
func WriteSegments(path string, segments []string) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return errors.Wrapf(err, "could not create segments file %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "could not close segments file %s", path)
		}
	}()

	w := bufio.NewWriter(f)
	for _, s := range segments {
		if _, err := w.WriteString(s + "\n"); err != nil {
			return errors.Wrapf(err, "could not write segments file %s", path)
		}
	}
	return errors.Wrapf(w.Flush(), "could not write segments file %s", path)
}
