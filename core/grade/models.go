package grade

import (
	"strconv"

	"github.com/trezcool/missingwork/core"
)

const (
	MinNumber = 1
	MaxNumber = 12
)

type Grade struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Class  string `json:"class,omitempty"`
}

func (g Grade) RefID() string { return g.ID }

// DisplayName renders the grade the way it is shown to the teacher, eg. "Grade 4 - B".
func (g Grade) DisplayName() string {
	name := "Grade " + strconv.Itoa(g.Number)
	if g.Class != "" {
		name += " - " + g.Class
	}
	return name
}

// Same reports whether g is the (number, class) section.
func (g Grade) Same(number int, class string) bool {
	return g.Number == number && g.Class == class
}

// NewGrade contains information needed to create a new Grade.
type NewGrade struct {
	Number int    `json:"number" validate:"gradenumber"`
	Class  string `json:"class" validate:"omitempty,classletter"`
}

func (ng *NewGrade) Validate(v *core.Validator) error {
	ng.Class = core.CleanString(ng.Class)
	return v.Check(ng, func(field string) error {
		if field == "number" {
			return ErrOutOfRange
		}
		return ErrInvalidFormat
	})
}
