package spreadsheet

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/missingwork/core/roster"
)

const defaultSheet = "Sheet1"

var overviewHeader = []interface{}{"Type", "Name", "Number", "Date", "Week", "Missing students"}

// WriteOverview writes one sheet per grade listing its assignments and their missing students.
func WriteOverview(w io.Writer, groups []roster.GradeGroup) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "spreadsheet.WriteOverview")
	}

	if len(groups) == 0 {
		if err := writeHeader(f, defaultSheet, bold); err != nil {
			return err
		}
	}
	for i, grp := range groups {
		sheet := grp.Grade.DisplayName()
		if i == 0 {
			err = f.SetSheetName(defaultSheet, sheet)
		} else {
			_, err = f.NewSheet(sheet)
		}
		if err != nil {
			return errors.Wrap(err, "spreadsheet.WriteOverview")
		}
		if err := writeHeader(f, sheet, bold); err != nil {
			return err
		}

		for j, a := range grp.Assignments {
			names := make([]string, 0, len(a.Missing))
			for _, s := range a.Missing {
				names = append(names, s.Name)
			}
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			row := []interface{}{string(a.Type), a.Name, a.Number, a.Date, a.WeekNumber, strings.Join(names, ", ")}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return errors.Wrap(err, "spreadsheet.WriteOverview")
			}
		}
	}

	return errors.Wrap(f.Write(w), "spreadsheet.WriteOverview")
}

func writeHeader(f *excelize.File, sheet string, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &overviewHeader); err != nil {
		return errors.Wrap(err, "spreadsheet.writeHeader")
	}
	return errors.Wrap(f.SetRowStyle(sheet, 1, 1, style), "spreadsheet.writeHeader")
}
