package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"
)

// Postgres persists the list into the tasks table, one row per position.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an open connection pool. The schema is created by database.RunMigrations.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Name() string { return "postgres" }

type taskRow struct {
	Position     int          `db:"position"`
	Text         string       `db:"text"`
	ToCompleteAt sql.NullTime `db:"to_complete_at"`
	IsCompleted  bool         `db:"is_completed"`
}

// Load returns fs.ErrNotExist for an empty table so it is treated like a missing file.
func (p *Postgres) Load(ctx context.Context) ([]Task, error) {
	var rows []taskRow
	err := p.db.SelectContext(ctx, &rows,
		`SELECT position, text, to_complete_at, is_completed FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("tasks table: %w", fs.ErrNotExist)
	}
	list := make([]Task, 0, len(rows))
	for _, r := range rows {
		if r.Text == "" {
			return nil, fmt.Errorf("%w: row %d has empty text", ErrCorrupt, r.Position)
		}
		t := Task{Text: r.Text, IsCompleted: r.IsCompleted}
		if r.ToCompleteAt.Valid {
			d := DateOf(r.ToCompleteAt.Time.UTC())
			t.DueDate = &d
		}
		list = append(list, t)
	}
	return list, nil
}

// Save rewrites the table inside one transaction.
func (p *Postgres) Save(ctx context.Context, list []Task) (err error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	if len(list) > 0 {
		rows := make([]taskRow, len(list))
		for i, t := range list {
			rows[i] = taskRow{Position: i + 1, Text: t.Text, IsCompleted: t.IsCompleted}
			if t.DueDate != nil {
				rows[i].ToCompleteAt = sql.NullTime{Time: t.DueDate.Time(time.UTC), Valid: true}
			}
		}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO tasks (position, text, to_complete_at, is_completed)
			 VALUES (:position, :text, :to_complete_at, :is_completed)`, rows); err != nil {
			return fmt.Errorf("insert tasks: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
