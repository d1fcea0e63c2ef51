package tasks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/m3rciful/taskbot/core/logger"
)

// Persister loads and saves the whole task list. Load returns an error
// wrapping fs.ErrNotExist when nothing was persisted yet and ErrCorrupt
// when the content cannot be decoded.
type Persister interface {
	Name() string
	Load(ctx context.Context) ([]Task, error)
	Save(ctx context.Context, list []Task) error
}

// Store is the single process-wide task list. Every mutation is saved in
// full before it returns; a failed save rolls the mutation back.
type Store struct {
	mu        sync.Mutex
	list      []Task
	persister Persister
}

// Open loads the persisted list once. A missing or corrupt artifact yields
// an empty list; any other load failure is returned.
func Open(ctx context.Context, p Persister) (*Store, error) {
	if p == nil {
		return nil, errors.New("tasks: nil persister")
	}
	start := time.Now()
	list, err := p.Load(ctx)
	switch {
	case err == nil:
		logger.Store.Info("store loaded",
			slog.String("event", "store.load"),
			slog.String("backend", p.Name()),
			slog.Int("tasks", len(list)),
			slog.Duration("duration", logger.Took(start)),
		)
	case errors.Is(err, fs.ErrNotExist):
		logger.Store.Info("store empty",
			slog.String("event", "store.load"),
			slog.String("status", "skip"),
			slog.String("backend", p.Name()),
			slog.String("cause", "not_found"),
		)
		list = nil
	case errors.Is(err, ErrCorrupt):
		logger.Store.Warn("store corrupt",
			slog.String("event", "store.load"),
			slog.String("status", "fail"),
			slog.String("backend", p.Name()),
			slog.String("err", err.Error()),
		)
		list = nil
	default:
		return nil, fmt.Errorf("tasks: load from %s: %w", p.Name(), err)
	}
	if list == nil {
		list = []Task{}
	}
	return &Store{list: list, persister: p}, nil
}

// List returns a copy of the current list in display order.
func (s *Store) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneList(s.list)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

// Append adds t at the end of the list.
func (s *Store) Append(ctx context.Context, t Task) error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, "append", append(cloneList(s.list), t))
}

// MarkCompleted sets is_completed on the task at the 0-based index and returns it.
func (s *Store) MarkCompleted(ctx context.Context, index int) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.list) {
		return Task{}, &IndexError{Index: index, Len: len(s.list)}
	}
	next := cloneList(s.list)
	next[index].IsCompleted = true
	if err := s.commit(ctx, "complete", next); err != nil {
		return Task{}, err
	}
	return next[index], nil
}

// Delete removes the task at the 0-based index and returns it.
func (s *Store) Delete(ctx context.Context, index int) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.list) {
		return Task{}, &IndexError{Index: index, Len: len(s.list)}
	}
	removed := s.list[index]
	next := make([]Task, 0, len(s.list)-1)
	next = append(next, s.list[:index]...)
	next = append(next, s.list[index+1:]...)
	if err := s.commit(ctx, "delete", next); err != nil {
		return Task{}, err
	}
	return removed, nil
}

// commit saves next and swaps it in only when the save succeeded. Caller holds mu.
func (s *Store) commit(ctx context.Context, op string, next []Task) error {
	start := time.Now()
	if err := s.persister.Save(ctx, next); err != nil {
		logger.Store.Error("store save failed",
			slog.String("event", "store.save"),
			slog.String("status", "fail"),
			slog.String("op", op),
			slog.String("backend", s.persister.Name()),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("tasks: %s: save: %w", op, err)
	}
	s.list = next
	logger.Store.Debug("store saved",
		slog.String("event", "store.save"),
		slog.String("status", "ok"),
		slog.String("op", op),
		slog.String("backend", s.persister.Name()),
		slog.Int("tasks", len(next)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

func cloneList(list []Task) []Task {
	out := make([]Task, len(list))
	for i, t := range list {
		if t.DueDate != nil {
			d := *t.DueDate
			t.DueDate = &d
		}
		out[i] = t
	}
	return out
}
