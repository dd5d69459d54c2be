package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CSVSink writes each table returned by Sheets to its own CSV file.
type CSVSink struct {
	Dir    string
	Logger logrus.FieldLogger
}

// Path returns the file written for the named sheet of source.
func (s *CSVSink) Path(source, sheet string) string {
	return filepath.Join(s.Dir, baseName(source)+"-"+sheet+".csv")
}

func (s *CSVSink) Write(ctx context.Context, source string, records []models.MemberRecord) error {
	for _, sheet := range Sheets(records) {
		path := s.Path(source, sheet.Name)
		if err := writeCSV(path, sheet); err != nil {
			return errors.Wrapf(err, "could not write %s", path)
		}
		s.Logger.Infof("Wrote %d rows to %s", len(sheet.Rows), path)
	}
	return nil
}

func writeCSV(path string, sheet Sheet) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return toDataFrame(sheet).WriteCSV(f)
}

// toDataFrame builds one string column per header so codes such as "030" keep
// their leading zeros.
func toDataFrame(sheet Sheet) dataframe.DataFrame {
	columns := make([]series.Series, len(sheet.Header))
	for c, name := range sheet.Header {
		values := make([]string, len(sheet.Rows))
		for r, row := range sheet.Rows {
			values[r] = row[c]
		}
		columns[c] = series.New(values, series.String, name)
	}
	return dataframe.New(columns...)
}
