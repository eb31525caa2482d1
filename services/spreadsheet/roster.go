// Package spreadsheet reads student rosters from and exports overviews to xlsx workbooks.
package spreadsheet

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ReadRoster returns the rows of the first sheet of the workbook, header row included.
func ReadRoster(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "spreadsheet.ReadRoster")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("spreadsheet.ReadRoster: workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	return rows, errors.Wrap(err, "spreadsheet.ReadRoster")
}
