package export

import (
	"context"
	"path/filepath"

	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const headerFill = "C4C4C4"

// XLSXSink writes a workbook with one sheet per table returned by Sheets.
type XLSXSink struct {
	Dir    string
	Logger logrus.FieldLogger
}

// Path returns the workbook written for source.
func (s *XLSXSink) Path(source string) string {
	return filepath.Join(s.Dir, baseName(source)+".xlsx")
}

func (s *XLSXSink) Write(ctx context.Context, source string, records []models.MemberRecord) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.Logger.Error(err)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "000000"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return errors.Wrap(err, "could not create header style")
	}

	for i, sheet := range Sheets(records) {
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			return errors.Wrapf(err, "could not create sheet %s", sheet.Name)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return errors.Wrapf(err, "could not write sheet %s", sheet.Name)
		}
		s.Logger.Infof("Wrote %d rows to sheet %s", len(sheet.Rows), sheet.Name)
	}

	path := s.Path(source)
	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "could not save workbook %s", path)
	}
	s.Logger.Infof("Excel spreadsheet created successfully: %s", path)
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
