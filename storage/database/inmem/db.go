package inmemdb

import (
	"sync"

	"github.com/edukube/gradebook/core/grade"
	"github.com/edukube/gradebook/core/student"
)

type (
	// DB is the process-lifetime map store. A table-level RWMutex is the
	// whole concurrency story; expected load is a handful of short-lived
	// request handlers.
	DB struct {
		student *studentTable
		grade   *gradeTable
	}

	studentTable struct {
		mutex sync.RWMutex
		seq   int
		table map[int]*student.Student
	}

	gradeTable struct {
		mutex sync.RWMutex
		seq   int
		table map[int]*grade.Grade
	}
)

func Open() *DB {
	return &DB{
		student: &studentTable{table: make(map[int]*student.Student)},
		grade:   &gradeTable{table: make(map[int]*grade.Grade)},
	}
}
