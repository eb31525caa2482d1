package grade

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/missingwork/core"
)

var (
	gradeNumberTag  = "gradenumber"
	gradeNumberText = "grade number must be between 1 and 12"

	classLetterTag   = "classletter"
	classLetterText  = "class must be a single uppercase letter (A-Z)"
	classLetterRegex = regexp.MustCompile(`^[A-Z]$`)
)

// InitValidators registers the grade validators on v.
func InitValidators(v *core.Validator) {
	_ = v.RegisterValidation(gradeNumberTag, gradeNumberValidation)
	v.RegisterCustomTranslation(gradeNumberTag, gradeNumberText)

	_ = v.RegisterValidation(classLetterTag, classLetterValidation)
	v.RegisterCustomTranslation(classLetterTag, classLetterText)
}

// Custom Validators

func gradeNumberValidation(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= MinNumber && n <= MaxNumber
}

func classLetterValidation(fl validator.FieldLevel) bool {
	return classLetterRegex.MatchString(fl.Field().String())
}
