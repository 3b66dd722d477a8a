package sqlitedb

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edukube/gradebook/core/grade"
)

type gradeRepository struct {
	db *sqlx.DB
}

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) CreateGrade(g grade.Grade) (grade.Grade, error) {
	res, err := repo.db.Exec(
		`INSERT INTO grades (student_id, course, grade, semester, credits) VALUES (?, ?, ?, ?, ?)`,
		g.StudentID, g.Course, g.Grade, g.Semester, g.Credits,
	)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "reading grade id")
	}
	g.ID = int(id)
	return g, nil
}

func (repo *gradeRepository) FilterGrades(filter grade.QueryFilter) ([]grade.Grade, error) {
	query := `SELECT * FROM grades WHERE 1=1`
	args := make([]interface{}, 0, 3)

	if filter.StudentID != 0 {
		query += ` AND student_id = ?`
		args = append(args, filter.StudentID)
	}
	if filter.Course != "" {
		query += ` AND course LIKE ?`
		args = append(args, "%"+filter.Course+"%")
	}
	if filter.Semester != "" {
		query += ` AND semester = ?`
		args = append(args, filter.Semester)
	}
	query += ` ORDER BY semester DESC, course`

	grades := make([]grade.Grade, 0)
	err := repo.db.Select(&grades, query, args...)
	return grades, errors.Wrap(err, "filtering grades")
}

func (repo *gradeRepository) GetGradeByID(id int) (grade.Grade, error) {
	var g grade.Grade
	err := repo.db.Get(&g, `SELECT * FROM grades WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return grade.Grade{}, grade.ErrNotFound
	}
	return g, errors.Wrap(err, "getting grade by id")
}

func (repo *gradeRepository) QuerySemesters() ([]string, error) {
	semesters := make([]string, 0)
	err := repo.db.Select(&semesters,
		`SELECT DISTINCT semester FROM grades WHERE semester != '' ORDER BY semester DESC`)
	return semesters, errors.Wrap(err, "querying semesters")
}

func (repo *gradeRepository) QueryCourses() ([]string, error) {
	courses := make([]string, 0)
	err := repo.db.Select(&courses,
		`SELECT DISTINCT course FROM grades WHERE course != '' ORDER BY course`)
	return courses, errors.Wrap(err, "querying courses")
}

func (repo *gradeRepository) DeleteGrade(id int) error {
	res, err := repo.db.Exec(`DELETE FROM grades WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return grade.ErrNotFound
	}
	return nil
}
