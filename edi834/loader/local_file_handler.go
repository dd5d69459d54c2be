package loader

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	ers "github.com/CMSgov/edi834-app/edi834/errors"
	"github.com/dimchansky/utfbom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LocalFileHandler reads payloads from the local filesystem.
type LocalFileHandler struct {
	Logger logrus.FieldLogger
}

func (handler *LocalFileHandler) Load(ctx context.Context, path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			handler.Logger.Errorf("File %s not found", path)
			return "", &ers.FileNotFoundError{Path: path, Err: err}
		}
		handler.Logger.Error(errors.Wrapf(err, "could not open file %s", path))
		return "", &ers.FileReadError{Path: path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			handler.Logger.Error(err)
		}
	}()

	data, err := io.ReadAll(utfbom.SkipOnly(f))
	if err != nil {
		handler.Logger.Error(errors.Wrapf(err, "could not read file %s", path))
		return "", &ers.FileReadError{Path: path, Err: err}
	}

	handler.Logger.Infof("Read %d bytes from %s", len(data), path)
	return string(data), nil
}
