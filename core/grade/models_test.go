package grade

import (
	"encoding/json"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukube/gradebook/core"
)

func newValidators() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate, translator
}

func TestNewGrade_Validate(t *testing.T) {
	validate, translator := newValidators()

	tests := []struct {
		name     string
		body     string
		wantMsgs []string
	}{
		{
			name: "valid",
			body: `{"student_id": 1, "course": "Data Structures", "grade": "A", "semester": "Fall 2024", "credits": 4}`,
		},
		{
			name: "valid without credits",
			body: `{"student_id": 1, "course": "Data Structures", "grade": "B+", "semester": "Fall 2024"}`,
		},
		{
			name:     "missing student id",
			body:     `{"course": "Data Structures", "grade": "A", "semester": "Fall 2024"}`,
			wantMsgs: []string{"student id is required"},
		},
		{
			name:     "short course",
			body:     `{"student_id": 1, "course": "D", "grade": "A", "semester": "Fall 2024"}`,
			wantMsgs: []string{"course must be at least 2 characters"},
		},
		{
			name:     "missing grade",
			body:     `{"student_id": 1, "course": "Data Structures", "semester": "Fall 2024"}`,
			wantMsgs: []string{"grade is required"},
		},
		{
			name:     "invalid letter grade",
			body:     `{"student_id": 1, "course": "Data Structures", "grade": "A+", "semester": "Fall 2024"}`,
			wantMsgs: []string{"invalid grade, must be one of: A, A-, B+, B, B-, C+, C, C-, D, F"},
		},
		{
			name:     "missing semester",
			body:     `{"student_id": 1, "course": "Data Structures", "grade": "A"}`,
			wantMsgs: []string{"semester is required"},
		},
		{
			name:     "credits not a number",
			body:     `{"student_id": 1, "course": "Data Structures", "grade": "A", "semester": "Fall 2024", "credits": "three"}`,
			wantMsgs: []string{"credits must be a number"},
		},
		{
			name:     "credits out of range",
			body:     `{"student_id": 1, "course": "Data Structures", "grade": "A", "semester": "Fall 2024", "credits": 7}`,
			wantMsgs: []string{"credits must be between 1 and 6"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ng NewGrade
			require.NoError(t, json.Unmarshal([]byte(tt.body), &ng))

			res := ng.Validate(validate, translator)
			if len(tt.wantMsgs) == 0 {
				assert.True(t, res.Valid(), "unexpected errors: %v", res.Errors)
				return
			}
			assert.Equal(t, tt.wantMsgs, res.Errors)
		})
	}
}

func TestNewGrade_Record(t *testing.T) {
	t.Run("defaults credits", func(t *testing.T) {
		ng := NewGrade{StudentID: 1, Course: "Calculus", Grade: "B", Semester: "Fall 2024"}
		g := ng.Record()
		assert.Equal(t, DefaultCredits, g.Credits)
	})

	t.Run("keeps provided credits", func(t *testing.T) {
		var ng NewGrade
		body := `{"student_id": 1, "course": "Calculus", "grade": "B", "semester": "Fall 2024", "credits": "4"}`
		require.NoError(t, json.Unmarshal([]byte(body), &ng))
		assert.Equal(t, 4, ng.Record().Credits)
	})
}

func TestIsValidGrade(t *testing.T) {
	for _, g := range ValidGrades {
		assert.True(t, IsValidGrade(g), g)
	}
	assert.False(t, IsValidGrade("A+"))
	assert.False(t, IsValidGrade("a"))
	assert.False(t, IsValidGrade(""))
}
