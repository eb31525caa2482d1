package main

import (
	"context"
	"strings"

	"github.com/trezcool/missingwork/core/assignment"
)

func (cli *commandLine) assignment(ctx context.Context, args []string) error {
	sub, args, err := cli.subcommand("assignment", args, "add", "list", "delete", "remind")
	if err != nil {
		return err
	}

	switch sub {
	case "add":
		return cli.addAssignment(ctx, args)

	case "list":
		fs := cli.newFlagSet("assignment list")
		gradeID := fs.String("grade", "", "The grade id.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *gradeID == "" {
			return usage(fs)
		}
		assignments, err := cli.assignments.ListForGrade(ctx, *gradeID)
		if err != nil {
			return err
		}
		for _, a := range assignments {
			cli.printAssignment(a)
		}

	case "delete":
		fs := cli.newFlagSet("assignment delete")
		id := fs.String("id", "", "The assignment id.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *id == "" {
			return usage(fs)
		}
		return cli.assignments.Delete(ctx, *id)

	case "remind":
		fs := cli.newFlagSet("assignment remind")
		id := fs.String("id", "", "The assignment id.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *id == "" {
			return usage(fs)
		}
		n, err := cli.roster.SendReminders(ctx, *id)
		if err != nil {
			return err
		}
		cli.printf("%d reminder(s) sent\n", n)
	}
	return nil
}

func (cli *commandLine) printAssignment(a assignment.Assignment) {
	name := a.Name
	if a.Number != "" {
		name += " (" + a.Number + ")"
	}
	cli.printf("%s\t%s\t%s\t%s\tweek %d\t%d missing\n", a.ID, a.Date, a.Type, name, a.WeekNumber, len(a.StudentIDs))
}

func (cli *commandLine) addAssignment(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("assignment add")
	gradeID := fs.String("grade", "", "The grade id.")
	typ := fs.String("type", "", "One of homework, classwork, worksheet or project.")
	name := fs.String("name", "", "The assignment name.")
	number := fs.String("number", "", "Optional assignment number.")
	date := fs.String("date", "", "YYYY-MM-DD, defaults to today.")
	students := fs.String("students", "", "Comma separated ids of the students missing it.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *gradeID == "" || *typ == "" || *name == "" || *students == "" {
		return usage(fs)
	}

	a, err := cli.assignments.Add(ctx, assignment.NewAssignment{
		GradeID:    *gradeID,
		Type:       assignment.Type(*typ),
		Name:       *name,
		Number:     *number,
		Date:       *date,
		StudentIDs: strings.Split(*students, ","),
	})
	if err != nil {
		return err
	}
	cli.printAssignment(a)
	return nil
}
