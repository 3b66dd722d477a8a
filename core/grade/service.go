package grade

import (
	"context"
	"errors"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/edukube/gradebook/core"
)

var ErrNotFound = errors.New("Grade not found")

type (
	Repository interface {
		CreateGrade(g Grade) (Grade, error)
		// FilterGrades applies AND on the set QueryFilter fields: exact match
		// on student_id and semester, substring match on course. Results are
		// ordered by semester descending, then course ascending.
		FilterGrades(filter QueryFilter) ([]Grade, error)
		GetGradeByID(id int) (Grade, error)
		QuerySemesters() ([]string, error)
		QueryCourses() ([]string, error)
		DeleteGrade(id int) error
	}

	// StudentDirectory resolves students owned by the student subsystem.
	// Implementations never surface transport failures: existence checks
	// fail open and name lookups degrade to "Unknown".
	StudentDirectory interface {
		StudentExists(ctx context.Context, id int) bool
		StudentName(ctx context.Context, id int) string
	}

	// Notifier announces a committed grade to the outside world. The result
	// is a classification, never an error; a failed delivery must not undo
	// the write it describes.
	Notifier interface {
		NotifyGradeCreated(ctx context.Context, g Grade, studentName string) NotifyResult
	}

	Service struct {
		repo       Repository
		students   StudentDirectory
		notifier   Notifier
		logger     core.Logger
		validate   *validator.Validate
		translator ut.Translator
	}
)

func NewService(
	repo Repository,
	students StudentDirectory,
	notifier Notifier,
	logger core.Logger,
	validate *validator.Validate,
	translator ut.Translator,
) *Service {
	return &Service{
		repo:       repo,
		students:   students,
		notifier:   notifier,
		logger:     logger,
		validate:   validate,
		translator: translator,
	}
}

// Create runs the grade-creation workflow: validate, confirm the referenced
// student, persist, then notify exactly once. The notification happens after
// the record is committed and its outcome can never demote the creation to a
// failure.
func (svc *Service) Create(ctx context.Context, ng NewGrade) CreateResult {
	if res := ng.Validate(svc.validate, svc.translator); !res.Valid() {
		return CreateResult{Message: res.Message()}
	}

	if !svc.students.StudentExists(ctx, ng.StudentID) {
		return CreateResult{Message: "Student not found"}
	}

	// for the notification payload only; degrades to "Unknown"
	studentName := svc.students.StudentName(ctx, ng.StudentID)

	g, err := svc.repo.CreateGrade(ng.Record())
	if err != nil {
		svc.logger.Error(fmt.Sprintf("grade creation failed: %v", err), err)
		return CreateResult{Message: fmt.Sprintf("Failed to create grade: %v", err)}
	}
	svc.logger.Info(fmt.Sprintf("grade created: id=%d student=%s course=%s grade=%s", g.ID, studentName, g.Course, g.Grade))

	notif := svc.notifier.NotifyGradeCreated(ctx, g, studentName)

	return CreateResult{
		OK:           true,
		Message:      "Grade created successfully",
		GradeID:      g.ID,
		Notification: &notif,
	}
}

// Query lists grades; with enrich set, each distinct student id is resolved
// to a name at most once per call.
func (svc *Service) Query(ctx context.Context, filter QueryFilter, enrich bool) ([]Grade, error) {
	grades, err := svc.repo.FilterGrades(filter)
	if err != nil {
		return nil, err
	}
	if enrich {
		svc.enrich(ctx, grades)
	}
	return grades, nil
}

func (svc *Service) Get(ctx context.Context, id int, enrich bool) (Grade, error) {
	g, err := svc.repo.GetGradeByID(id)
	if err != nil {
		return Grade{}, err
	}
	if enrich {
		g.StudentName = svc.students.StudentName(ctx, g.StudentID)
	}
	return g, nil
}

func (svc *Service) Semesters() ([]string, error) {
	return svc.repo.QuerySemesters()
}

func (svc *Service) Courses() ([]string, error) {
	return svc.repo.QueryCourses()
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteGrade(id)
}

func (svc *Service) enrich(ctx context.Context, grades []Grade) {
	names := make(map[int]string)
	for i := range grades {
		id := grades[i].StudentID
		name, ok := names[id]
		if !ok {
			name = svc.students.StudentName(ctx, id)
			names[id] = name
		}
		grades[i].StudentName = name
	}
}
