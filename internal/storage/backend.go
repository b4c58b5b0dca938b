// Package storage persists whole record tables as JSON arrays. A table is
// always read and written in full; there is no per-record access.
package storage

import (
	"context"
	"errors"
)

const (
	StudentsTable    = "students"
	TeachersTable    = "teachers"
	ClassroomsTable  = "classrooms"
	QuizzesTable     = "quizzes"
	QuizResultsTable = "quiz_results"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

type Backend interface {
	// Load returns the raw JSON document for table, or ErrTableNotFound.
	Load(ctx context.Context, table string) ([]byte, error)
	// Save overwrites the document for table.
	Save(ctx context.Context, table string, data []byte) error
	Close() error
}
