package main

import (
	"context"
	"os"

	"github.com/trezcool/missingwork/services/spreadsheet"
)

// export writes the overview to an xlsx workbook, one sheet per grade.
func (cli *commandLine) export(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("export")
	out := fs.String("out", "", "Path of the .xlsx file to write.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *out == "" {
		return usage(fs)
	}

	groups, err := cli.roster.Overview(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := spreadsheet.WriteOverview(f, groups); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	cli.printf("overview written to %s\n", *out)
	return nil
}
