package database

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type (
	seedStudent struct {
		name  string
		email string
		age   int
		major string
		gpa   float64
	}

	seedGrade struct {
		studentID int
		course    string
		grade     string
		semester  string
		credits   int
	}
)

var sampleStudents = []seedStudent{
	{"Alice Johnson", "alice@university.edu", 20, "Computer Science", 3.8},
	{"Bob Smith", "bob@university.edu", 22, "Mathematics", 3.5},
	{"Charlie Brown", "charlie@university.edu", 21, "Physics", 3.9},
	{"Diana Prince", "diana@university.edu", 19, "Engineering", 3.7},
	{"Edward Norton", "edward@university.edu", 23, "Computer Science", 3.2},
	{"Fiona Apple", "fiona@university.edu", 20, "Biology", 3.6},
	{"George Lucas", "george@university.edu", 22, "Film Studies", 3.4},
	{"Hannah Montana", "hannah@university.edu", 21, "Music", 3.9},
	{"Ian McKellen", "ian@university.edu", 24, "Theater", 3.1},
	{"Julia Roberts", "julia@university.edu", 20, "Chemistry", 3.8},
}

var sampleGrades = []seedGrade{
	{1, "Introduction to Programming", "A", "Fall 2024", 4},
	{1, "Data Structures", "A-", "Fall 2024", 4},
	{1, "Web Development", "B+", "Spring 2024", 3},
	{2, "Calculus I", "B", "Fall 2024", 4},
	{2, "Linear Algebra", "A-", "Fall 2024", 3},
	{3, "Quantum Mechanics", "A", "Fall 2024", 4},
	{3, "Classical Mechanics", "A", "Spring 2024", 4},
	{4, "Thermodynamics", "B+", "Fall 2024", 3},
	{4, "Circuit Design", "A-", "Fall 2024", 4},
	{5, "Operating Systems", "C+", "Fall 2024", 4},
	{5, "Computer Networks", "B", "Spring 2024", 3},
	{6, "Molecular Biology", "A-", "Fall 2024", 4},
	{6, "Genetics", "A", "Spring 2024", 4},
	{7, "Film History", "B+", "Fall 2024", 3},
	{7, "Screenwriting", "B", "Spring 2024", 3},
	{8, "Music Theory", "A", "Fall 2024", 4},
	{8, "Performance Art", "A", "Fall 2024", 2},
	{9, "Shakespeare Studies", "C", "Fall 2024", 3},
	{9, "Modern Drama", "B-", "Spring 2024", 3},
	{10, "Organic Chemistry", "A-", "Fall 2024", 4},
	{10, "Analytical Chemistry", "A", "Spring 2024", 3},
}

// SeedStudents inserts the demo roster, skipping rows whose email is already
// taken so reseeding a file-backed database stays quiet.
func SeedStudents(db *sqlx.DB) (int, error) {
	n := 0
	for _, std := range sampleStudents {
		_, err := db.Exec(
			`INSERT OR IGNORE INTO students (name, email, age, major, gpa) VALUES (?, ?, ?, ?, ?)`,
			std.name, std.email, std.age, std.major, std.gpa,
		)
		if err != nil {
			return n, errors.Wrap(err, "seeding students")
		}
		n++
	}
	return n, nil
}

func SeedGrades(db *sqlx.DB) (int, error) {
	n := 0
	for _, g := range sampleGrades {
		_, err := db.Exec(
			`INSERT INTO grades (student_id, course, grade, semester, credits) VALUES (?, ?, ?, ?, ?)`,
			g.studentID, g.course, g.grade, g.semester, g.credits,
		)
		if err != nil {
			return n, errors.Wrap(err, "seeding grades")
		}
		n++
	}
	return n, nil
}
