package testutil

import (
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/edukube/gradebook/core"
	"github.com/edukube/gradebook/core/grade"
	"github.com/edukube/gradebook/core/student"
)

// NopLogger discards everything. Keeps service wiring quiet in tests.
type NopLogger struct{}

func (NopLogger) Debug(msg string, args ...interface{}) {}
func (NopLogger) Info(msg string, args ...interface{})  {}
func (NopLogger) Warn(msg string, args ...interface{})  {}
func (NopLogger) Error(msg string, args ...interface{}) {}
func (NopLogger) Fatal(msg string, args ...interface{}) {}

func NewValidators() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)
	return validate, translator
}

func CreateStudent(t *testing.T, repo student.Repository, name, email, major string) student.Student {
	std := student.Student{Name: name, Email: email}
	if major != "" {
		std.Major = null.StringFrom(major)
	}
	std, err := repo.CreateStudent(std)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateGrade(t *testing.T, repo grade.Repository, studentID int, course, letter, semester string) grade.Grade {
	g, err := repo.CreateGrade(grade.Grade{
		StudentID: studentID,
		Course:    course,
		Grade:     letter,
		Semester:  semester,
		Credits:   grade.DefaultCredits,
	})
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return g
}
