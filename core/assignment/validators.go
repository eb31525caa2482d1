package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/missingwork/core"
)

var (
	assignmentTypeTag  = "assignmenttype"
	assignmentTypeText = "type must be one of homework, classwork, worksheet or project"

	isoDateTag  = "isodate"
	isoDateText = "date must be formatted as YYYY-MM-DD"

	nonEmptyTag  = "nonempty"
	nonEmptyText = "select at least one student"
)

func InitValidators(v *core.Validator) {
	_ = v.RegisterValidation(assignmentTypeTag, assignmentTypeValidation)
	v.RegisterCustomTranslation(assignmentTypeTag, assignmentTypeText)

	_ = v.RegisterValidation(isoDateTag, isoDateValidation)
	v.RegisterCustomTranslation(isoDateTag, isoDateText)

	_ = v.RegisterValidation(nonEmptyTag, nonEmptyValidation)
	v.RegisterCustomTranslation(nonEmptyTag, nonEmptyText)
}

// Custom Validators

func assignmentTypeValidation(fl validator.FieldLevel) bool {
	return Type(fl.Field().String()).IsValid()
}

func isoDateValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

func nonEmptyValidation(fl validator.FieldLevel) bool {
	return fl.Field().Len() > 0
}
