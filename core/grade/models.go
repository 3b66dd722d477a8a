package grade

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/edukube/gradebook/core"
)

// DefaultCredits applies when a new grade does not carry a credits value.
const DefaultCredits = 3

const (
	minCredits, maxCredits = 1, 6
)

// ValidGrades is the fixed letter-grade scale; matching is exact and
// case-sensitive (no "A+").
var ValidGrades = []string{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D", "F"}

func IsValidGrade(g string) bool {
	for _, valid := range ValidGrades {
		if g == valid {
			return true
		}
	}
	return false
}

type Grade struct {
	ID        int    `json:"id" db:"id"`
	StudentID int    `json:"student_id" db:"student_id"`
	Course    string `json:"course" db:"course"`
	Grade     string `json:"grade" db:"grade"`
	Semester  string `json:"semester" db:"semester"`
	Credits   int    `json:"credits" db:"credits"`

	// StudentName is attached on the read path only; it is never persisted
	// and is not part of the entity identity.
	StudentName string `json:"student_name,omitempty" db:"-"`
}

// NewGrade contains information needed to record a new Grade.
type NewGrade struct {
	StudentID int         `json:"student_id" validate:"required"`
	Course    string      `json:"course" validate:"min=2"`
	Grade     string      `json:"grade" validate:"required,grade_"`
	Semester  string      `json:"semester" validate:"required"`
	Credits   core.Number `json:"credits" validate:"-"`
}

func (ng *NewGrade) Validate(validate *validator.Validate, translator ut.Translator) core.ValidationResult {
	ng.Course = core.CleanString(ng.Course)
	ng.Grade = core.CleanString(ng.Grade)
	ng.Semester = core.CleanString(ng.Semester)

	res := core.NewValidationResult(validate.Struct(ng), translator)
	if ng.Credits.IsSet() {
		credits, err := ng.Credits.Int()
		if err != nil {
			res.Add("credits must be a number")
		} else if credits < minCredits || credits > maxCredits {
			res.Add("credits must be between 1 and 6")
		}
	}
	return res
}

// Record returns the entity the input describes; call only after Validate.
func (ng NewGrade) Record() Grade {
	g := Grade{
		StudentID: ng.StudentID,
		Course:    ng.Course,
		Grade:     ng.Grade,
		Semester:  ng.Semester,
		Credits:   DefaultCredits,
	}
	if ng.Credits.IsSet() {
		g.Credits, _ = ng.Credits.Int()
	}
	return g
}

type QueryFilter struct {
	StudentID int    `query:"student_id"`
	Course    string `query:"course"`
	Semester  string `query:"semester"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.StudentID == 0 && qf.Course == "" && qf.Semester == ""
}

func (qf *QueryFilter) Clean() {
	qf.Course = core.CleanString(qf.Course)
	qf.Semester = core.CleanString(qf.Semester)
}

// NotifyResult classifies one outbound notification attempt. It is transient
// workflow output, surfaced for observability only.
type NotifyResult struct {
	Delivered bool                   `json:"delivered"`
	Blocked   bool                   `json:"blocked"`
	Detail    string                 `json:"detail"`
	Response  map[string]interface{} `json:"response,omitempty"`
}

// CreateResult is the structured outcome of the grade-creation workflow.
type CreateResult struct {
	OK           bool
	Message      string
	GradeID      int
	Notification *NotifyResult
}
