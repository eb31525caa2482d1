package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/core/student"
	"github.com/trezcool/missingwork/services/media"
	"github.com/trezcool/missingwork/tests"
)

var ctx = context.Background()

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string // substring of the output
}

func setup(t *testing.T) (*commandLine, *testutil.App, *bytes.Buffer) {
	t.Helper()
	app := testutil.NewApp(t, nil)
	out := new(bytes.Buffer)
	cli := &commandLine{
		out:         out,
		mediaOpts:   mediaOptions(app.Conf),
		grades:      app.Grades,
		students:    app.Students,
		assignments: app.Assignments,
		profiles:    app.Profiles,
		roster:      app.Roster,
	}
	isTerminalFunc = func() bool { return false }
	return cli, app, out
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("os.WriteFile() failed: %v", err)
	}
	return path
}

func writeLogo(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("png.Encode() failed: %v", err)
	}
	return writeFile(t, "logo.png", buf.Bytes())
}

func Test_commandLine_setup(t *testing.T) {
	cli, app, out := setup(t)
	logo := writeLogo(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "status before setup", args: []string{"status"}, wantOut: "setup required"},
		{name: "grade before setup", args: []string{"grade", "list"}, wantErr: profile.ErrNotConfigured},
		{name: "export before setup", args: []string{"export", "-out", "x.xlsx"}, wantErrStr: "setup required"},
		{name: "setup: missing fields", args: []string{"setup", "-name", "Ms. Frizzle"}, wantErr: errHelp},
		{name: "setup: logo not found", args: []string{"setup", "-name", "Ms. Frizzle", "-app", "Magic Bus", "-logo", "nope.png"}, wantErr: os.ErrNotExist},
		{name: "setup: logo not an image", args: []string{"setup", "-name", "Ms. Frizzle", "-app", "Magic Bus", "-logo", writeFile(t, "logo.txt", []byte("lol"))}, wantErr: media.ErrUnsupportedImage},
		{name: "setup", args: []string{"setup", "-name", "Ms. Frizzle", "-app", "Magic Bus", "-logo", logo}, wantOut: "Welcome Ms. Frizzle"},
		{name: "setup again", args: []string{"setup", "-name", "Other", "-app", "Other", "-logo", logo}, wantErr: profile.ErrAlreadyConfigured},
		{name: "status after setup", args: []string{"status"}, wantOut: "Magic Bus (Ms. Frizzle)"},
		{name: "grade after setup", args: []string{"grade", "list"}},
	})

	p, err := app.Profiles.Get(ctx)
	if err != nil {
		t.Fatalf("Profiles.Get() failed: %v", err)
	}
	if !strings.HasPrefix(p.Logo, "data:image/png;base64,") {
		t.Errorf("Logo = %q, want a png data URI", p.Logo)
	}
}

func Test_commandLine_setup_prompts(t *testing.T) {
	cli, app, out := setup(t)
	answers := []string{"Magic Bus\n", writeLogo(t) + "\n"}

	isTerminalFunc = func() bool { return true }
	readLineFunc = func() (string, error) {
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	t.Cleanup(func() { readLineFunc = readLine })

	if err := cli.run([]string{"admin", "setup", "-name", "Ms. Frizzle"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	if got := out.String(); !strings.Contains(got, "App name: ") || strings.Contains(got, "Your name: ") {
		t.Errorf("prompts = %q, want only the missing fields", got)
	}
	if ok, _ := app.Profiles.IsConfigured(ctx); !ok {
		t.Error("setup should be complete")
	}
}

func Test_commandLine_grade(t *testing.T) {
	cli, app, out := setup(t)
	testutil.CompleteSetup(t, app.Profiles)
	g5 := testutil.CreateGrade(t, app.Grades, 5, "")

	runCLITests(t, cli, out, []cliTest{
		{name: "no subcommand", args: []string{"grade"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"grade", "lol"}, wantErr: errHelp},
		{name: "add: no number", args: []string{"grade", "add"}, wantErr: errHelp},
		{name: "add: out of range", args: []string{"grade", "add", "-number", "13"}, wantErr: grade.ErrOutOfRange},
		{name: "add: zero", args: []string{"grade", "add", "-number", "0"}, wantErr: grade.ErrOutOfRange},
		{name: "add: bad class", args: []string{"grade", "add", "-number", "4", "-class", "AB"}, wantErr: grade.ErrInvalidFormat},
		{name: "add: duplicate", args: []string{"grade", "add", "-number", "5"}, wantErr: grade.ErrDuplicateGrade},
		{name: "add", args: []string{"grade", "add", "-number", "4", "-class", "B"}, wantOut: "Grade 4 - B"},
		{name: "list", args: []string{"grade", "list"}, wantOut: g5.ID + "\tGrade 5"},
		{name: "delete: no id", args: []string{"grade", "delete"}, wantErr: errHelp},
		{name: "delete", args: []string{"grade", "delete", "-id", g5.ID}},
		{name: "delete unknown", args: []string{"grade", "delete", "-id", "nope"}},
	})

	grades, _ := app.Grades.List(ctx)
	if len(grades) != 1 || grades[0].DisplayName() != "Grade 4 - B" {
		t.Errorf("grades = %v, want only Grade 4 - B", grades)
	}
}

func Test_commandLine_student(t *testing.T) {
	cli, app, out := setup(t)
	testutil.CompleteSetup(t, app.Profiles)
	grd := testutil.CreateGrade(t, app.Grades, 5, "A")
	other := testutil.CreateGrade(t, app.Grades, 6, "")
	john := testutil.CreateStudent(t, app.Students, "John Doe", grd.ID, "john@school.test")

	f := excelize.NewFile()
	for i, row := range [][]interface{}{{"Name"}, {"Ada"}} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		_ = f.SetSheetRow("Sheet1", cell, &row)
	}
	var xlsx bytes.Buffer
	if err := f.Write(&xlsx); err != nil {
		t.Fatalf("excelize.Write() failed: %v", err)
	}
	csvFile := writeFile(t, "roster.csv", []byte("Name,Email\nJane,jane@school.test\n,x@x.com\n"))
	xlsxFile := writeFile(t, "roster.xlsx", xlsx.Bytes())

	runCLITests(t, cli, out, []cliTest{
		{name: "no subcommand", args: []string{"student"}, wantErr: errHelp},
		{name: "add: no grade", args: []string{"student", "add", "-name", "Bob"}, wantErr: errHelp},
		{name: "add: unknown grade", args: []string{"student", "add", "-name", "Bob", "-grade", "nope"}, wantErr: student.ErrInvalidGrade},
		{name: "add: bad email", args: []string{"student", "add", "-name", "Bob", "-grade", grd.ID, "-email", "bob@"}, wantErr: student.ErrInvalidEmail},
		{name: "add", args: []string{"student", "add", "-name", "Bob", "-grade", other.ID}, wantOut: "\tBob\n"},
		{name: "import csv", args: []string{"student", "import", "-grade", grd.ID, "-file", csvFile}, wantOut: "1 created, 1 skipped"},
		{name: "import xlsx", args: []string{"student", "import", "-grade", grd.ID, "-file", xlsxFile}, wantOut: "1 created, 0 skipped"},
		{name: "import: unknown grade", args: []string{"student", "import", "-grade", "nope", "-file", csvFile}, wantErr: student.ErrInvalidGrade},
		{name: "list: no grade", args: []string{"student", "list"}, wantErr: errHelp},
		{name: "list", args: []string{"student", "list", "-grade", grd.ID, "-search", "JOHN", "-i"}, wantOut: "John Doe <john@school.test>"},
		{name: "update: unknown", args: []string{"student", "update", "-id", "nope", "-name", "X"}, wantErr: student.ErrNotFound},
		{name: "update", args: []string{"student", "update", "-id", john.ID, "-name", "John Roe", "-email", ""}, wantOut: john.ID + "\tJohn Roe\n"},
		{name: "missing: unknown", args: []string{"student", "missing", "-id", "nope"}, wantErr: student.ErrNotFound},
		{name: "missing", args: []string{"student", "missing", "-id", john.ID}},
	})

	students, _ := app.Students.ListForGrade(ctx, grd.ID)
	names := make([]string, 0, len(students))
	for _, s := range students {
		names = append(names, s.Name)
	}
	if got, want := strings.Join(names, ","), "John Roe,Jane,Ada"; got != want {
		t.Errorf("students = %s, want %s", got, want)
	}

	out.Reset()
	if err := cli.run([]string{"admin", "student", "delete", "-id", john.ID}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	if _, err := app.Students.Get(ctx, john.ID); !errors.Is(err, student.ErrNotFound) {
		t.Errorf("student should be deleted, got %v", err)
	}
}

func Test_commandLine_assignment(t *testing.T) {
	cli, app, out := setup(t)
	testutil.CompleteSetup(t, app.Profiles)
	grd := testutil.CreateGrade(t, app.Grades, 5, "")
	john := testutil.CreateStudent(t, app.Students, "John Doe", grd.ID, "john@school.test")
	jane := testutil.CreateStudent(t, app.Students, "Jane", grd.ID, "")

	runCLITests(t, cli, out, []cliTest{
		{name: "no subcommand", args: []string{"assignment"}, wantErr: errHelp},
		{name: "add: missing flags", args: []string{"assignment", "add", "-grade", grd.ID}, wantErr: errHelp},
		{
			name:    "add: bad type",
			args:    []string{"assignment", "add", "-grade", grd.ID, "-type", "quiz", "-name", "Fractions", "-students", john.ID},
			wantErr: assignment.ErrInvalidType,
		},
		{
			name:    "add: bad date",
			args:    []string{"assignment", "add", "-grade", grd.ID, "-type", "homework", "-name", "Fractions", "-date", "01/02/2024", "-students", john.ID},
			wantErr: assignment.ErrInvalidDate,
		},
		{
			name:    "add: unknown student",
			args:    []string{"assignment", "add", "-grade", grd.ID, "-type", "homework", "-name", "Fractions", "-students", john.ID + ",nope"},
			wantErr: assignment.ErrInvalidStudents,
		},
		{
			name:    "add",
			args:    []string{"assignment", "add", "-grade", grd.ID, "-type", "Homework", "-name", "Fractions", "-number", "3", "-date", "2024-01-01", "-students", john.ID + "," + jane.ID},
			wantOut: "2024-01-01\thomework\tFractions (3)\tweek 1\t2 missing",
		},
		{name: "list", args: []string{"assignment", "list", "-grade", grd.ID}, wantOut: "Fractions (3)"},
		{name: "remind: unknown", args: []string{"assignment", "remind", "-id", "nope"}, wantErr: assignment.ErrNotFound},
		{name: "delete: no id", args: []string{"assignment", "delete"}, wantErr: errHelp},
	})

	assignments, _ := app.Assignments.ListForGrade(ctx, grd.ID)
	if len(assignments) != 1 {
		t.Fatalf("assignments = %v, want 1", assignments)
	}
	a := assignments[0]

	runCLITests(t, cli, out, []cliTest{
		{name: "remind", args: []string{"assignment", "remind", "-id", a.ID}, wantOut: "1 reminder(s) sent"},
		{name: "missing", args: []string{"student", "missing", "-id", jane.ID}, wantOut: a.ID},
		{name: "delete", args: []string{"assignment", "delete", "-id", a.ID}},
	})
	if sent := app.Mail.SentMessages(); len(sent) != 1 || sent[0].To[0].Address != john.Email {
		t.Errorf("sent = %v, want one reminder to %s", sent, john.Email)
	}
}

func Test_commandLine_export(t *testing.T) {
	cli, app, out := setup(t)
	testutil.CompleteSetup(t, app.Profiles)
	grd := testutil.CreateGrade(t, app.Grades, 5, "A")
	john := testutil.CreateStudent(t, app.Students, "John Doe", grd.ID, "")
	testutil.CreateAssignment(t, app.Assignments, grd.ID, "Fractions", "2024-01-01", john.ID)
	path := filepath.Join(t.TempDir(), "overview.xlsx")

	runCLITests(t, cli, out, []cliTest{
		{name: "no out", args: []string{"export"}, wantErr: errHelp},
		{name: "export", args: []string{"export", "-out", path}, wantOut: "overview written to " + path},
	})

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize.OpenFile() failed: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 1 || got[0] != grd.DisplayName() {
		t.Errorf("sheets = %v, want [%s]", got, grd.DisplayName())
	}
}

func Test_commandLine_storageWarning(t *testing.T) {
	cli, app, out := setup(t)
	testutil.CompleteSetup(t, app.Profiles)
	app.Store.FailWrites(true)

	runCLITests(t, cli, out, []cliTest{
		{name: "add grade", args: []string{"grade", "add", "-number", "3"}, wantOut: "warning: saving grades"},
	})

	grades, _ := app.Grades.List(ctx)
	if len(grades) != 1 {
		t.Errorf("grades = %v, the change should be kept in memory", grades)
	}
}
