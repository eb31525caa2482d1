package grade

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
)

var (
	// errors
	ErrNotFound       = errors.New("grade not found")
	ErrOutOfRange     = errors.New("grade number must be between 1 and 12")
	ErrInvalidFormat  = errors.New("class must be a single uppercase letter (A-Z)")
	ErrDuplicateGrade = errors.New("this grade already exists")
)

type (
	Repository interface {
		// CreateGrade returns ErrDuplicateGrade if a grade with the same (number, class) exists.
		CreateGrade(ctx context.Context, grd Grade) (Grade, error)
		QueryAllGrades(ctx context.Context) ([]Grade, error)
		GetGradeByID(ctx context.Context, id string) (Grade, error)
		DeleteGrade(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
		v    *core.Validator
	}
)

func NewService(repo Repository, v *core.Validator) *Service {
	InitValidators(v)
	return &Service{repo: repo, v: v}
}

func (svc *Service) Add(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := ng.Validate(svc.v); err != nil {
		return Grade{}, err
	}

	grd, err := svc.repo.CreateGrade(ctx, Grade{
		ID:     core.NewID(),
		Number: ng.Number,
		Class:  ng.Class,
	})
	if errors.Is(err, ErrDuplicateGrade) {
		return Grade{}, core.NewValidationError(err, core.FieldError{Field: "class", Error: err.Error()})
	}
	return grd, err
}

// Delete removes the grade. Deleting an unknown id is a no-op, students and assignments
// of the grade are left in place.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteGrade(ctx, id)
}

// List returns all grades in insertion order.
func (svc *Service) List(ctx context.Context) ([]Grade, error) {
	return svc.repo.QueryAllGrades(ctx)
}

func (svc *Service) Get(ctx context.Context, id string) (Grade, error) {
	return svc.repo.GetGradeByID(ctx, id)
}
