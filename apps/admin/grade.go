package main

import (
	"context"

	"github.com/trezcool/missingwork/core/grade"
)

func (cli *commandLine) grade(ctx context.Context, args []string) error {
	sub, args, err := cli.subcommand("grade", args, "add", "list", "delete")
	if err != nil {
		return err
	}

	switch sub {
	case "add":
		fs := cli.newFlagSet("grade add")
		number := fs.Int("number", 0, "The grade number, 1 to 12.")
		class := fs.String("class", "", "Optional class letter, A to Z.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if !isSet(fs, "number") {
			return usage(fs)
		}
		grd, err := cli.grades.Add(ctx, grade.NewGrade{Number: *number, Class: *class})
		if err != nil {
			return err
		}
		cli.printf("%s\t%s\n", grd.ID, grd.DisplayName())

	case "list":
		grades, err := cli.grades.List(ctx)
		if err != nil {
			return err
		}
		for _, grd := range grades {
			cli.printf("%s\t%s\n", grd.ID, grd.DisplayName())
		}

	case "delete":
		fs := cli.newFlagSet("grade delete")
		id := fs.String("id", "", "The grade id.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *id == "" {
			return usage(fs)
		}
		return cli.grades.Delete(ctx, *id)
	}
	return nil
}
