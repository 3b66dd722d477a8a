package student

import (
	"errors"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/edukube/gradebook/core"
)

var (
	// errors
	ErrNotFound    = errors.New("Student not found")
	ErrEmailExists = errors.New("Email already exists")
)

type (
	Repository interface {
		// CheckEmailUniqueness returns ErrEmailExists when another student
		// (outside excludedStudents) already holds the email.
		CheckEmailUniqueness(email string, excludedStudents ...Student) error
		CreateStudent(std Student) (Student, error)
		// QueryAllStudents returns students ordered by name ascending.
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		GetStudentByEmail(email string) (Student, error)
		// SearchStudentsByName does a case-insensitive substring match.
		SearchStudentsByName(term string) ([]Student, error)
		FilterStudentsByMajor(major string) ([]Student, error)
		QueryMajors() ([]string, error)
		UpdateStudent(std Student) (Student, error)
		DeleteStudent(id int) error
	}

	Service struct {
		repo       Repository
		logger     core.Logger
		validate   *validator.Validate
		translator ut.Translator
	}
)

func NewService(repo Repository, logger core.Logger, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		validate:   validate,
		translator: translator,
	}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	if res := ns.Validate(svc.validate, svc.translator); !res.Valid() {
		return Student{}, core.NewValidationError(errors.New(res.Message()))
	}
	if err := svc.checkUniqueness(ns.Email); err != nil {
		return Student{}, err
	}

	std, err := svc.repo.CreateStudent(ns.Student())
	if err != nil {
		return Student{}, pkgerrors.Wrap(err, "creating student")
	}
	svc.logger.Info(fmt.Sprintf("student created: id=%d email=%s", std.ID, std.Email))
	return std, nil
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) Search(term string) ([]Student, error) {
	return svc.repo.SearchStudentsByName(core.CleanString(term))
}

func (svc *Service) FilterByMajor(major string) ([]Student, error) {
	return svc.repo.FilterStudentsByMajor(core.CleanString(major))
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) Majors() ([]string, error) {
	return svc.repo.QueryMajors()
}

func (svc *Service) Update(id int, us UpdateStudent) (Student, error) {
	origStd, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if res := us.Validate(origStd, svc.validate, svc.translator); !res.Valid() {
		return Student{}, core.NewValidationError(errors.New(res.Message()))
	}
	if err := svc.checkUniqueness(us.Email, origStd); err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateStudent(us.Apply(origStd))
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteStudent(id)
}

func (svc *Service) checkUniqueness(email string, exclStudents ...Student) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclStudents...); err != nil {
		if pkgerrors.Cause(err) == ErrEmailExists {
			return core.NewConflictError(err)
		}
		return err
	}
	return nil
}
