package student

import (
	"github.com/trezcool/missingwork/core"
)

type (
	Student struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		GradeID string `json:"gradeId"`
		Email   string `json:"email,omitempty"`
		Picture string `json:"picture,omitempty"` // data URI
	}

	// NewStudent contains information needed to create a new Student.
	NewStudent struct {
		Name    string `json:"name" validate:"notblank"`
		GradeID string `json:"gradeId" validate:"required"`
		Email   string `json:"email" validate:"omitempty,email"`
		Picture string `json:"picture" validate:"omitempty,datauri"`
	}

	// UpdateStudent contains the Student fields to change; nil fields are left as is.
	// An empty Email or Picture clears it.
	UpdateStudent struct {
		Name    *string `json:"name"`
		GradeID *string `json:"gradeId"`
		Email   *string `json:"email"`
		Picture *string `json:"picture"`
	}

	// SkippedRow is an import row that did not produce a Student.
	SkippedRow struct {
		Line   int    `json:"line"`
		Reason string `json:"reason"`
	}

	ImportResult struct {
		Created []Student    `json:"created"`
		Skipped []SkippedRow `json:"skipped"`
	}
)

func (s Student) RefID() string { return s.ID }

func (ns *NewStudent) clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.GradeID = core.CleanString(ns.GradeID)
	ns.Email = core.CleanString(ns.Email)
	ns.Picture = core.CleanString(ns.Picture)
}

func (ns *NewStudent) Validate(v *core.Validator) error {
	ns.clean()
	return v.Check(ns, func(field string) error {
		switch field {
		case "name":
			return ErrMissingName
		case "gradeId":
			return ErrInvalidGrade
		case "email":
			return ErrInvalidEmail
		default:
			return ErrInvalidPicture
		}
	})
}

// apply returns s with the fields set in uu.
func (uu UpdateStudent) apply(s Student) NewStudent {
	ns := NewStudent{Name: s.Name, GradeID: s.GradeID, Email: s.Email, Picture: s.Picture}
	if uu.Name != nil {
		ns.Name = *uu.Name
	}
	if uu.GradeID != nil {
		ns.GradeID = *uu.GradeID
	}
	if uu.Email != nil {
		ns.Email = *uu.Email
	}
	if uu.Picture != nil {
		ns.Picture = *uu.Picture
	}
	return ns
}
