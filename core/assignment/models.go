package assignment

import (
	"time"

	"github.com/trezcool/missingwork/core"
)

// DateLayout is the layout of Assignment.Date.
const DateLayout = "2006-01-02"

type Type string

const (
	Homework  Type = "homework"
	Classwork Type = "classwork"
	Worksheet Type = "worksheet"
	Project   Type = "project"
)

var Types = []Type{Homework, Classwork, Worksheet, Project}

func (t Type) IsValid() bool {
	for _, tt := range Types {
		if t == tt {
			return true
		}
	}
	return false
}

type (
	Assignment struct {
		ID         string   `json:"id"`
		Type       Type     `json:"type"`
		Name       string   `json:"name"`
		Number     string   `json:"number"`
		Date       string   `json:"date"`
		WeekNumber int      `json:"weekNumber"`
		GradeID    string   `json:"gradeId"`
		StudentIDs []string `json:"studentIds"`
	}

	// NewAssignment contains information needed to record a new Assignment.
	NewAssignment struct {
		GradeID    string   `json:"gradeId" validate:"required"`
		Type       Type     `json:"type" validate:"assignmenttype"`
		Name       string   `json:"name" validate:"notblank"`
		Number     string   `json:"number"`
		Date       string   `json:"date" validate:"isodate"`
		StudentIDs []string `json:"studentIds" validate:"nonempty"`
	}
)

func (a Assignment) RefID() string { return a.ID }

// ParsedDate returns Date as a time, the zero time if it is malformed.
func (a Assignment) ParsedDate() time.Time {
	t, _ := time.Parse(DateLayout, a.Date)
	return t
}

func (na *NewAssignment) clean() {
	na.GradeID = core.CleanString(na.GradeID)
	na.Type = Type(core.CleanString(string(na.Type), true /* lower */))
	na.Name = core.CleanString(na.Name)
	na.Number = core.CleanString(na.Number)
	na.Date = core.CleanString(na.Date)

	// collapse duplicates, keep order
	seen := make(map[string]struct{}, len(na.StudentIDs))
	ids := make([]string, 0, len(na.StudentIDs))
	for _, id := range na.StudentIDs {
		id = core.CleanString(id)
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	na.StudentIDs = ids
}

func (na *NewAssignment) Validate(v *core.Validator) error {
	na.clean()
	return v.Check(na, func(field string) error {
		switch field {
		case "gradeId":
			return ErrMissingGrade
		case "type":
			return ErrInvalidType
		case "name":
			return ErrMissingName
		case "date":
			return ErrInvalidDate
		default:
			return ErrMissingStudents
		}
	})
}
