// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/gitelweb/ossync/internal/services"
	"github.com/gitelweb/ossync/internal/shared"
)

// MemoryDB creates an in-memory SQLite database with migrations applied,
// closed automatically when the test finishes.
func MemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// Item builds a payload item with both natural keys set and a default
// open status. Mutate the result for scenario-specific fields.
func Item(folio string, taskID int64) services.WorkOrderTaskItem {
	return services.WorkOrderTaskItem{
		Folio:    folio,
		TaskID:   taskID,
		StatusID: 1,
	}
}

// Str returns a pointer to s, for filling optional payload fields.
func Str(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Num returns a pointer to a [json.Number] holding s.
func Num(s string) *json.Number {
	n := json.Number(s)
	return &n
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

var _ io.Writer = (*FWriter)(nil)
