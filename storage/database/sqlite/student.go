package sqlitedb

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edukube/gradebook/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckEmailUniqueness(email string, excludedStudents ...student.Student) error {
	var id int
	err := repo.db.Get(&id, `SELECT id FROM students WHERE email = ?`, email)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	for _, excl := range excludedStudents {
		if excl.ID == id {
			return nil
		}
	}
	return student.ErrEmailExists
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	res, err := repo.db.Exec(
		`INSERT INTO students (name, email, age, major, gpa) VALUES (?, ?, ?, ?, ?)`,
		std.Name, std.Email, std.Age, std.Major, std.GPA,
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "reading student id")
	}
	std.ID = int(id)
	return std, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.Select(&students, `SELECT * FROM students ORDER BY name`)
	return students, errors.Wrap(err, "querying students")
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	var std student.Student
	err := repo.db.Get(&std, `SELECT * FROM students WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	return std, errors.Wrap(err, "getting student by id")
}

func (repo *studentRepository) GetStudentByEmail(email string) (student.Student, error) {
	var std student.Student
	err := repo.db.Get(&std, `SELECT * FROM students WHERE email = ?`, email)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	return std, errors.Wrap(err, "getting student by email")
}

func (repo *studentRepository) SearchStudentsByName(term string) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.Select(&students,
		`SELECT * FROM students WHERE name LIKE ? ORDER BY name`, "%"+term+"%")
	return students, errors.Wrap(err, "searching students")
}

func (repo *studentRepository) FilterStudentsByMajor(major string) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.Select(&students,
		`SELECT * FROM students WHERE major = ? ORDER BY name`, major)
	return students, errors.Wrap(err, "filtering students by major")
}

func (repo *studentRepository) QueryMajors() ([]string, error) {
	majors := make([]string, 0)
	err := repo.db.Select(&majors,
		`SELECT DISTINCT major FROM students WHERE major IS NOT NULL AND major != '' ORDER BY major`)
	return majors, errors.Wrap(err, "querying majors")
}

func (repo *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	res, err := repo.db.Exec(
		`UPDATE students SET name = ?, email = ?, age = ?, major = ?, gpa = ? WHERE id = ?`,
		std.Name, std.Email, std.Age, std.Major, std.GPA, std.ID,
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudent(id int) error {
	res, err := repo.db.Exec(`DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.ErrNotFound
	}
	return nil
}
