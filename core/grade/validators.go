package grade

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/edukube/gradebook/core"
)

var (
	gradeTag  = "grade_"
	gradeText = "invalid grade, must be one of: " + strings.Join(ValidGrades, ", ")
)

// InitValidators registers the grade-specific validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(validate, translator, gradeTag, gradeText)
}

func gradeValidation(fl validator.FieldLevel) bool {
	return IsValidGrade(fl.Field().String())
}
