package loader

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// File handlers load an EDI payload from a given source.
// This interface allows us to read transactions from local directories and AWS S3.
type FileHandler interface {
	// Load returns the full text at path. A missing payload yields a *errors.FileNotFoundError,
	// any other failure a *errors.FileReadError.
	Load(ctx context.Context, path string) (string, error)
}

const s3Scheme = "s3://"

// IsS3Path reports whether path is an s3://bucket/key URI.
func IsS3Path(path string) bool {
	return strings.HasPrefix(path, s3Scheme)
}

// NewFileHandler returns the handler for path: S3 for s3:// URIs, the local filesystem otherwise.
// S3 settings are taken from the configuration.
func NewFileHandler(path string, logger logrus.FieldLogger) (FileHandler, error) {
	if !IsS3Path(path) {
		return &LocalFileHandler{Logger: logger}, nil
	}

	cfg := S3ConfigFromEnv()
	client, err := NewS3Client(cfg)
	if err != nil {
		return nil, err
	}
	return &S3FileHandler{Client: client, Logger: logger, MaxRetries: cfg.MaxRetries}, nil
}
