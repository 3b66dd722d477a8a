package student

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/edukube/gradebook/core"
)

const (
	minAge, maxAge = 16, 100
	maxGPA         = 4.0
)

type Student struct {
	ID    int          `json:"id" db:"id"`
	Name  string       `json:"name" db:"name"`
	Email string       `json:"email" db:"email"`
	Age   null.Int     `json:"age" db:"age"`
	Major null.String  `json:"major" db:"major"`
	GPA   null.Float64 `json:"gpa" db:"gpa"`
}

// NewStudent contains information needed to create a new Student.
// Age and GPA ride core.Number so a malformed value surfaces as a
// validation error rather than a bind failure.
type NewStudent struct {
	Name  string      `json:"name" validate:"min=2"`
	Email string      `json:"email" validate:"email_"`
	Age   core.Number `json:"age" validate:"-"`
	Major string      `json:"major" validate:"-"`
	GPA   core.Number `json:"gpa" validate:"-"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, translator ut.Translator) core.ValidationResult {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Major = core.CleanString(ns.Major)

	res := core.NewValidationResult(validate.Struct(ns), translator)
	checkAge(&res, ns.Age)
	checkGPA(&res, ns.GPA)
	return res
}

// Student returns the entity the input describes; call only after Validate.
func (ns NewStudent) Student() Student {
	s := Student{Name: ns.Name, Email: ns.Email}
	if ns.Age.IsSet() {
		age, _ := ns.Age.Int()
		s.Age = null.IntFrom(age)
	}
	if ns.Major != "" {
		s.Major = null.StringFrom(ns.Major)
	}
	if ns.GPA.IsSet() {
		gpa, _ := ns.GPA.Float64()
		s.GPA = null.Float64From(gpa)
	}
	return s
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Blank fields keep the stored value.
type UpdateStudent struct {
	Name  string      `json:"name" validate:"omitempty,min=2"`
	Email string      `json:"email" validate:"omitempty,email_"`
	Age   core.Number `json:"age" validate:"-"`
	Major *string     `json:"major" validate:"-"`
	GPA   core.Number `json:"gpa" validate:"-"`
}

func (us *UpdateStudent) Validate(origStd Student, validate *validator.Validate, translator ut.Translator) core.ValidationResult {
	us.Name = core.CleanString(us.Name)
	if us.Name == "" {
		us.Name = origStd.Name
	}
	us.Email = core.CleanString(us.Email, true /* lower */)
	if us.Email == "" {
		us.Email = origStd.Email
	}

	res := core.NewValidationResult(validate.Struct(us), translator)
	checkAge(&res, us.Age)
	checkGPA(&res, us.GPA)
	return res
}

// Apply merges the set fields onto the stored entity; call only after Validate.
func (us UpdateStudent) Apply(origStd Student) Student {
	origStd.Name = us.Name
	origStd.Email = us.Email
	if us.Age.IsSet() {
		age, _ := us.Age.Int()
		origStd.Age = null.IntFrom(age)
	}
	if us.Major != nil {
		if major := core.CleanString(*us.Major); major != "" {
			origStd.Major = null.StringFrom(major)
		} else {
			origStd.Major = null.String{}
		}
	}
	if us.GPA.IsSet() {
		gpa, _ := us.GPA.Float64()
		origStd.GPA = null.Float64From(gpa)
	}
	return origStd
}

func checkAge(res *core.ValidationResult, n core.Number) {
	if !n.IsSet() {
		return
	}
	age, err := n.Int()
	if err != nil {
		res.Add("age must be a number")
		return
	}
	if age < minAge || age > maxAge {
		res.Add("age must be between 16 and 100")
	}
}

func checkGPA(res *core.ValidationResult, n core.Number) {
	if !n.IsSet() {
		return
	}
	gpa, err := n.Float64()
	if err != nil {
		res.Add("gpa must be a number")
		return
	}
	if gpa < 0 || gpa > maxGPA {
		res.Add("gpa must be between 0 and 4.0")
	}
}
