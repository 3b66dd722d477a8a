package inmemdb

import (
	"sort"
	"strings"

	"github.com/edukube/gradebook/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) query() []grade.Grade {
	grades := make([]grade.Grade, 0, len(repo.db.table))
	for _, g := range repo.db.table {
		grades = append(grades, *g)
	}
	// semester descending, then course ascending
	sort.Slice(grades, func(i, j int) bool {
		if grades[i].Semester != grades[j].Semester {
			return grades[i].Semester > grades[j].Semester
		}
		return grades[i].Course < grades[j].Course
	})
	return grades
}

func (repo *gradeRepository) CreateGrade(g grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	g.ID = repo.db.seq
	repo.db.table[g.ID] = &g
	return g, nil
}

func (repo *gradeRepository) FilterGrades(filter grade.QueryFilter) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	course := strings.ToLower(filter.Course)
	grades := make([]grade.Grade, 0)
	for _, g := range repo.query() {
		if filter.StudentID != 0 && g.StudentID != filter.StudentID {
			continue
		}
		if course != "" && !strings.Contains(strings.ToLower(g.Course), course) {
			continue
		}
		if filter.Semester != "" && g.Semester != filter.Semester {
			continue
		}
		grades = append(grades, g)
	}
	return grades, nil
}

func (repo *gradeRepository) GetGradeByID(id int) (grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if g, ok := repo.db.table[id]; ok {
		return *g, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) QuerySemesters() ([]string, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	semesters := repo.distinct(func(g grade.Grade) string { return g.Semester })
	sort.Sort(sort.Reverse(sort.StringSlice(semesters)))
	return semesters, nil
}

func (repo *gradeRepository) QueryCourses() ([]string, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := repo.distinct(func(g grade.Grade) string { return g.Course })
	sort.Strings(courses)
	return courses, nil
}

func (repo *gradeRepository) DeleteGrade(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return grade.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *gradeRepository) distinct(key func(grade.Grade) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, g := range repo.db.table {
		if v := key(*g); v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}
