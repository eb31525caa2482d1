package student

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/grade"
)

var (
	// errors
	ErrNotFound       = errors.New("student not found")
	ErrMissingName    = errors.New("student name is required")
	ErrInvalidGrade   = errors.New("grade does not exist")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidPicture = errors.New("picture must be a data URI")
)

type (
	Repository interface {
		// CreateStudents appends all students and persists the collection once.
		CreateStudents(ctx context.Context, students ...Student) ([]Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		// UpdateStudent replaces the stored student with the same ID.
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudent(ctx context.Context, id string) error
	}

	// Grades is what the student registry needs from the grade registry.
	Grades interface {
		Get(ctx context.Context, id string) (grade.Grade, error)
	}

	Service struct {
		repo   Repository
		grades Grades
		v      *core.Validator
	}
)

func NewService(repo Repository, grades Grades, v *core.Validator) *Service {
	return &Service{repo: repo, grades: grades, v: v}
}

func (svc *Service) checkGrade(ctx context.Context, gradeID string) error {
	if _, err := svc.grades.Get(ctx, gradeID); err != nil {
		if errors.Is(err, grade.ErrNotFound) {
			return core.NewValidationError(ErrInvalidGrade, core.FieldError{Field: "gradeId", Error: ErrInvalidGrade.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Add(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.v); err != nil {
		return Student{}, err
	}
	if err := svc.checkGrade(ctx, ns.GradeID); err != nil {
		return Student{}, err
	}

	created, err := svc.repo.CreateStudents(ctx, Student{
		ID:      core.NewID(),
		Name:    ns.Name,
		GradeID: ns.GradeID,
		Email:   ns.Email,
		Picture: ns.Picture,
	})
	if len(created) == 0 {
		return Student{}, err
	}
	return created[0], err
}

// BulkImport creates one Student in the grade per row of a comma separated text.
// The first line is a header and is ignored. See ImportRows for the row contract.
func (svc *Service) BulkImport(ctx context.Context, gradeID, rawText string) (ImportResult, error) {
	return svc.importRows(ctx, gradeID, parseCSV(rawText))
}

// ImportRows creates one Student in the grade per row, header row included.
// Column 0 is the name (the row is skipped if blank), column 1 the optional email.
// The email is stored as given.
func (svc *Service) ImportRows(ctx context.Context, gradeID string, rows [][]string) (ImportResult, error) {
	numbered := make([]importRow, 0, len(rows))
	for i, r := range rows {
		if i == 0 {
			continue // header
		}
		numbered = append(numbered, importRow{line: i + 1, fields: r})
	}
	return svc.importRows(ctx, gradeID, numbered)
}

func (svc *Service) importRows(ctx context.Context, gradeID string, rows []importRow) (ImportResult, error) {
	gradeID = core.CleanString(gradeID)
	if err := svc.checkGrade(ctx, gradeID); err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Created: []Student{}, Skipped: []SkippedRow{}}
	students := make([]Student, 0, len(rows))
	for _, r := range rows {
		name, email := r.column(0), r.column(1)
		if name == "" {
			res.Skipped = append(res.Skipped, SkippedRow{Line: r.line, Reason: ErrMissingName.Error()})
			continue
		}
		students = append(students, Student{ID: core.NewID(), Name: name, GradeID: gradeID, Email: email})
	}
	if len(students) == 0 {
		return res, nil
	}

	created, err := svc.repo.CreateStudents(ctx, students...)
	res.Created = append(res.Created, created...)
	return res, err
}

func (svc *Service) Update(ctx context.Context, id string, uu UpdateStudent) (Student, error) {
	s, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}

	ns := uu.apply(s)
	if err := ns.Validate(svc.v); err != nil {
		return Student{}, err
	}
	if ns.GradeID != s.GradeID {
		if err := svc.checkGrade(ctx, ns.GradeID); err != nil {
			return Student{}, err
		}
	}

	s.Name, s.GradeID, s.Email, s.Picture = ns.Name, ns.GradeID, ns.Email, ns.Picture
	return svc.repo.UpdateStudent(ctx, s)
}

// Delete removes the student. Deleting an unknown id is a no-op, assignments listing
// the student are left in place.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteStudent(ctx, id)
}

func (svc *Service) List(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) Get(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

// ListForGrade returns the students of the grade in insertion order,
// or none if the grade does not exist.
func (svc *Service) ListForGrade(ctx context.Context, gradeID string) ([]Student, error) {
	return svc.Search(ctx, gradeID, "", false)
}

// Search returns the students of the grade whose name contains substr.
func (svc *Service) Search(ctx context.Context, gradeID, substr string, caseInsensitive bool) ([]Student, error) {
	res := make([]Student, 0)
	if _, err := svc.grades.Get(ctx, gradeID); err != nil {
		if errors.Is(err, grade.ErrNotFound) {
			return res, nil
		}
		return nil, err
	}

	all, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	if caseInsensitive {
		substr = strings.ToLower(substr)
	}
	for _, s := range all {
		if s.GradeID != gradeID {
			continue
		}
		name := s.Name
		if caseInsensitive {
			name = strings.ToLower(name)
		}
		if strings.Contains(name, substr) {
			res = append(res, s)
		}
	}
	return res, nil
}
