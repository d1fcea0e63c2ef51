package tasks

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// The schema must already exist; run `taskbot migrate` against the DSN first.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TASKBOT_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TASKBOT_TEST_DATABASE_DSN not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM tasks`)
		_ = db.Close()
	})
	if _, err := db.Exec(`DELETE FROM tasks`); err != nil {
		t.Fatalf("reset: %v", err)
	}
	return db
}

func TestPostgresRoundTrip(t *testing.T) {
	db := openTestDB(t)
	p := NewPostgres(db)
	ctx := context.Background()

	if _, err := p.Load(ctx); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("empty table err = %v", err)
	}

	due := Date{2030, time.June, 15}
	list := []Task{{Text: "a"}, {Text: "b", DueDate: &due, IsCompleted: true}}
	if err := p.Save(ctx, list); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, list) {
		t.Fatalf("load = %+v, want %+v", got, list)
	}

	if err := p.Save(ctx, list[1:]); err != nil {
		t.Fatalf("save shorter: %v", err)
	}
	got, err = p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Text != "b" {
		t.Fatalf("after shrink = %+v", got)
	}
}
