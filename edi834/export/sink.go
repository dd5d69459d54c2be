package export

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/CMSgov/edi834-app/edi834/constants"
	ers "github.com/CMSgov/edi834-app/edi834/errors"
	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/sirupsen/logrus"
)

// A Sink renders assembled records somewhere. source names the payload the records
// came from and is used to name the output.
type Sink interface {
	Write(ctx context.Context, source string, records []models.MemberRecord) error
}

// New returns the sink for format. File sinks write into dir; the db sink stores
// records through store.
func New(format, dir string, store models.Store, logger logrus.FieldLogger) (Sink, error) {
	switch strings.ToLower(format) {
	case constants.FormatXLSX:
		return &XLSXSink{Dir: dir, Logger: logger}, nil
	case constants.FormatCSV:
		return &CSVSink{Dir: dir, Logger: logger}, nil
	case constants.FormatDB:
		return &DBSink{Store: store, Logger: logger}, nil
	}
	return nil, &ers.UnsupportedFormatError{Format: format}
}

// baseName strips any directory, bucket and extension from source.
func baseName(source string) string {
	name := filepath.Base(strings.TrimPrefix(source, "s3://"))
	return strings.TrimSuffix(name, filepath.Ext(name))
}
