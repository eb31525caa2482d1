package assignment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/student"
)

var (
	// errors
	ErrNotFound        = errors.New("assignment not found")
	ErrMissingGrade    = errors.New("select a grade")
	ErrInvalidGrade    = errors.New("grade does not exist")
	ErrMissingName     = errors.New("assignment name is required")
	ErrMissingStudents = errors.New("select at least one student")
	ErrInvalidStudents = errors.New("some students are not in this grade")
	ErrInvalidType     = errors.New("invalid assignment type")
	ErrInvalidDate     = errors.New("date must be formatted as YYYY-MM-DD")
)

// nowFunc is mockable
var nowFunc = time.Now

type (
	Repository interface {
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id string) (Assignment, error)
		DeleteAssignment(ctx context.Context, id string) error
	}

	// Grades is what the assignment tracker needs from the grade registry.
	Grades interface {
		Get(ctx context.Context, id string) (grade.Grade, error)
	}

	// Students is what the assignment tracker needs from the student registry.
	Students interface {
		ListForGrade(ctx context.Context, gradeID string) ([]student.Student, error)
	}

	Service struct {
		repo     Repository
		grades   Grades
		students Students
		v        *core.Validator
	}
)

func NewService(repo Repository, grades Grades, students Students, v *core.Validator) *Service {
	InitValidators(v)
	return &Service{repo: repo, grades: grades, students: students, v: v}
}

// Add records a new Assignment. An empty Date defaults to today.
func (svc *Service) Add(ctx context.Context, na NewAssignment) (Assignment, error) {
	if core.CleanString(na.Date) == "" {
		na.Date = nowFunc().Format(DateLayout)
	}
	if err := na.Validate(svc.v); err != nil {
		return Assignment{}, err
	}

	if _, err := svc.grades.Get(ctx, na.GradeID); err != nil {
		if errors.Is(err, grade.ErrNotFound) {
			return Assignment{}, core.NewValidationError(ErrInvalidGrade, core.FieldError{Field: "gradeId", Error: ErrInvalidGrade.Error()})
		}
		return Assignment{}, err
	}
	if err := svc.checkStudents(ctx, na.GradeID, na.StudentIDs); err != nil {
		return Assignment{}, err
	}

	date, _ := time.Parse(DateLayout, na.Date) // validated
	return svc.repo.CreateAssignment(ctx, Assignment{
		ID:         core.NewID(),
		Type:       na.Type,
		Name:       na.Name,
		Number:     na.Number,
		Date:       na.Date,
		WeekNumber: ISOWeek(date),
		GradeID:    na.GradeID,
		StudentIDs: na.StudentIDs,
	})
}

func (svc *Service) checkStudents(ctx context.Context, gradeID string, ids []string) error {
	students, err := svc.students.ListForGrade(ctx, gradeID)
	if err != nil {
		return err
	}
	inGrade := make(map[string]struct{}, len(students))
	for _, s := range students {
		inGrade[s.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := inGrade[id]; !ok {
			return core.NewValidationError(ErrInvalidStudents, core.FieldError{Field: "studentIds", Error: ErrInvalidStudents.Error()})
		}
	}
	return nil
}

// Delete removes the assignment. Deleting an unknown id is a no-op.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteAssignment(ctx, id)
}

func (svc *Service) List(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAllAssignments(ctx)
}

func (svc *Service) Get(ctx context.Context, id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

// ListForGrade returns the assignments of the grade in insertion order,
// or none if the grade does not exist.
func (svc *Service) ListForGrade(ctx context.Context, gradeID string) ([]Assignment, error) {
	res := make([]Assignment, 0)
	if _, err := svc.grades.Get(ctx, gradeID); err != nil {
		if errors.Is(err, grade.ErrNotFound) {
			return res, nil
		}
		return nil, err
	}

	all, err := svc.repo.QueryAllAssignments(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if a.GradeID == gradeID {
			res = append(res, a)
		}
	}
	return res, nil
}
