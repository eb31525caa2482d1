package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/trezcool/missingwork/core/student"
	"github.com/trezcool/missingwork/services/spreadsheet"
)

func (cli *commandLine) student(ctx context.Context, args []string) error {
	sub, args, err := cli.subcommand("student", args, "add", "import", "update", "delete", "list", "missing")
	if err != nil {
		return err
	}

	switch sub {
	case "add":
		return cli.addStudent(ctx, args)
	case "import":
		return cli.importStudents(ctx, args)
	case "update":
		return cli.updateStudent(ctx, args)
	case "delete":
		fs := cli.newFlagSet("student delete")
		id := fs.String("id", "", "The student id.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *id == "" {
			return usage(fs)
		}
		return cli.students.Delete(ctx, *id)
	case "list":
		return cli.listStudents(ctx, args)
	default:
		return cli.missingWork(ctx, args)
	}
}

func (cli *commandLine) printStudent(s student.Student) {
	if s.Email != "" {
		cli.printf("%s\t%s <%s>\n", s.ID, s.Name, s.Email)
		return
	}
	cli.printf("%s\t%s\n", s.ID, s.Name)
}

func (cli *commandLine) addStudent(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("student add")
	name := fs.String("name", "", "The student's name.")
	gradeID := fs.String("grade", "", "The grade id.")
	email := fs.String("email", "", "Optional email address.")
	picture := fs.String("picture", "", "Optional path to a picture (JPEG, PNG or GIF).")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *name == "" || *gradeID == "" {
		return usage(fs)
	}

	ns := student.NewStudent{Name: *name, GradeID: *gradeID, Email: *email}
	if *picture != "" {
		var err error
		if ns.Picture, err = cli.encodeImage(*picture); err != nil {
			return err
		}
	}
	s, err := cli.students.Add(ctx, ns)
	if err != nil {
		return err
	}
	cli.printStudent(s)
	return nil
}

// importStudents reads a csv, or an xlsx workbook, with a header row into the grade.
func (cli *commandLine) importStudents(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("student import")
	gradeID := fs.String("grade", "", "The grade id.")
	file := fs.String("file", "", "Path to a .csv or .xlsx roster: name, then optional email.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *gradeID == "" || *file == "" {
		return usage(fs)
	}

	var res student.ImportResult
	if strings.EqualFold(filepath.Ext(*file), ".xlsx") {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		rows, err := spreadsheet.ReadRoster(f)
		if err != nil {
			return err
		}
		if res, err = cli.students.ImportRows(ctx, *gradeID, rows); err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		if res, err = cli.students.BulkImport(ctx, *gradeID, string(data)); err != nil {
			return err
		}
	}

	for _, s := range res.Created {
		cli.printStudent(s)
	}
	for _, row := range res.Skipped {
		cli.printf("skipped line %d: %s\n", row.Line, row.Reason)
	}
	cli.printf("%d created, %d skipped\n", len(res.Created), len(res.Skipped))
	return nil
}

// updateStudent only changes the fields given, an empty -email or -picture clears it.
func (cli *commandLine) updateStudent(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("student update")
	id := fs.String("id", "", "The student id.")
	name := fs.String("name", "", "New name.")
	gradeID := fs.String("grade", "", "New grade id.")
	email := fs.String("email", "", "New email address.")
	picture := fs.String("picture", "", "Path to a new picture.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == "" {
		return usage(fs)
	}

	var uu student.UpdateStudent
	if isSet(fs, "name") {
		uu.Name = name
	}
	if isSet(fs, "grade") {
		uu.GradeID = gradeID
	}
	if isSet(fs, "email") {
		uu.Email = email
	}
	if isSet(fs, "picture") {
		uri := ""
		if *picture != "" {
			var err error
			if uri, err = cli.encodeImage(*picture); err != nil {
				return err
			}
		}
		uu.Picture = &uri
	}

	s, err := cli.students.Update(ctx, *id, uu)
	if err != nil {
		return err
	}
	cli.printStudent(s)
	return nil
}

func (cli *commandLine) listStudents(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("student list")
	gradeID := fs.String("grade", "", "The grade id.")
	search := fs.String("search", "", "Only list names containing this text.")
	ci := fs.Bool("i", false, "Case-insensitive search.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *gradeID == "" {
		return usage(fs)
	}

	students, err := cli.students.Search(ctx, *gradeID, *search, *ci)
	if err != nil {
		return err
	}
	for _, s := range students {
		cli.printStudent(s)
	}
	return nil
}

func (cli *commandLine) missingWork(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("student missing")
	id := fs.String("id", "", "The student id.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == "" {
		return usage(fs)
	}

	assignments, err := cli.roster.MissingWork(ctx, *id)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		cli.printAssignment(a)
	}
	return nil
}
