package database

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/edukube/gradebook/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS students (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	age INTEGER,
	major TEXT,
	gpa REAL
);

CREATE TABLE IF NOT EXISTS grades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id INTEGER NOT NULL,
	course TEXT NOT NULL,
	grade TEXT NOT NULL,
	semester TEXT NOT NULL,
	credits INTEGER NOT NULL DEFAULT 3
);
`

func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", conf.Database.Path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// a ":memory:" database exists per connection; keep a single one
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err = ping(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// CreateSchema is idempotent; the demo recreates its tables at startup the
// same way it reseeds.
func CreateSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "creating schema")
	}
	return nil
}
