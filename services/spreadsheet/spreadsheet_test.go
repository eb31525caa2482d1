package spreadsheet

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/roster"
	"github.com/trezcool/missingwork/core/student"
)

func TestReadRoster(t *testing.T) {
	f := excelize.NewFile()
	for i, row := range [][]interface{}{{"Name", "Email"}, {"John Doe", "john@x.com"}, {"Jane"}} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := ReadRoster(&buf)
	if err != nil {
		t.Fatalf("ReadRoster() error = %v", err)
	}
	want := [][]string{{"Name", "Email"}, {"John Doe", "john@x.com"}, {"Jane"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadRoster() = %v, want %v", got, want)
	}
}

func TestReadRoster_notAWorkbook(t *testing.T) {
	if _, err := ReadRoster(bytes.NewBufferString("Name,Email\n")); err == nil {
		t.Error("ReadRoster() should fail on csv input")
	}
}

func TestWriteOverview(t *testing.T) {
	john := student.Student{ID: "s1", Name: "John Doe", GradeID: "g1"}
	jane := student.Student{ID: "s2", Name: "Jane", GradeID: "g1"}
	groups := []roster.GradeGroup{
		{
			Grade:    grade.Grade{ID: "g1", Number: 5, Class: "A"},
			Students: []student.Student{john, jane},
			Assignments: []roster.AssignmentView{{
				Assignment: assignment.Assignment{
					ID: "a1", Type: assignment.Homework, Name: "Fractions", Number: "3",
					Date: "2024-01-01", WeekNumber: 1, GradeID: "g1", StudentIDs: []string{"s1", "s2"},
				},
				Missing: []student.Student{john, jane},
			}},
		},
		{Grade: grade.Grade{ID: "g2", Number: 6}},
	}

	var buf bytes.Buffer
	if err := WriteOverview(&buf, groups); err != nil {
		t.Fatalf("WriteOverview() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if got, want := f.GetSheetList(), []string{"Grade 5 - A", "Grade 6"}; !reflect.DeepEqual(got, want) {
		t.Errorf("sheets = %v, want %v", got, want)
	}
	rows, _ := f.GetRows("Grade 5 - A")
	want := [][]string{
		{"Type", "Name", "Number", "Date", "Week", "Missing students"},
		{"homework", "Fractions", "3", "2024-01-01", "1", "John Doe, Jane"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}
