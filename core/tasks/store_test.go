package tasks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sync"
	"testing"
	"time"
)

// memPersister keeps the last saved list and can be told to fail.
type memPersister struct {
	saved   []Task
	loadErr error
	saveErr error
	saves   int
}

func (m *memPersister) Name() string { return "mem" }

func (m *memPersister) Load(context.Context) ([]Task, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return cloneList(m.saved), nil
}

func (m *memPersister) Save(_ context.Context, list []Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = cloneList(list)
	return nil
}

func openMem(t *testing.T, seed ...Task) (*Store, *memPersister) {
	t.Helper()
	p := &memPersister{saved: seed}
	s, err := Open(context.Background(), p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, p
}

func texts(list []Task) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Text
	}
	return out
}

func TestOpenFailSoft(t *testing.T) {
	for name, loadErr := range map[string]error{
		"missing": fmt.Errorf("read: %w", fs.ErrNotExist),
		"corrupt": fmt.Errorf("decode: %w", ErrCorrupt),
	} {
		t.Run(name, func(t *testing.T) {
			s, err := Open(context.Background(), &memPersister{loadErr: loadErr})
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if s.Len() != 0 {
				t.Fatalf("len = %d, want 0", s.Len())
			}
		})
	}
}

func TestOpenOtherErrorFails(t *testing.T) {
	boom := errors.New("permission denied")
	if _, err := Open(context.Background(), &memPersister{loadErr: boom}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestAppendPersistsWholeList(t *testing.T) {
	s, p := openMem(t, Task{Text: "first"})
	due := Date{2030, time.January, 1}
	if err := s.Append(context.Background(), Task{Text: "second", DueDate: &due}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := texts(p.saved); !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Fatalf("saved = %v", got)
	}
	if !reflect.DeepEqual(s.List(), p.saved) {
		t.Fatalf("memory %+v != persisted %+v", s.List(), p.saved)
	}
}

func TestAppendRejectsBlankText(t *testing.T) {
	s, p := openMem(t)
	if err := s.Append(context.Background(), Task{Text: "   "}); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("err = %v, want ErrEmptyText", err)
	}
	if p.saves != 0 {
		t.Fatalf("saves = %d, want 0", p.saves)
	}
}

func TestMarkCompletedEveryIndex(t *testing.T) {
	seed := []Task{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	for i := range seed {
		s, _ := openMem(t, seed...)
		got, err := s.MarkCompleted(context.Background(), i)
		if err != nil {
			t.Fatalf("complete %d: %v", i, err)
		}
		if got.Text != seed[i].Text || !got.IsCompleted {
			t.Fatalf("complete %d returned %+v", i, got)
		}
		for j, task := range s.List() {
			if task.IsCompleted != (j == i) {
				t.Fatalf("after completing %d, task %d completed=%v", i, j, task.IsCompleted)
			}
		}
	}
}

func TestMarkCompletedIsIdempotent(t *testing.T) {
	s, p := openMem(t, Task{Text: "a", IsCompleted: true})
	if _, err := s.MarkCompleted(context.Background(), 0); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !p.saved[0].IsCompleted {
		t.Fatal("task not completed after second completion")
	}
}

func TestDeleteShiftsPositions(t *testing.T) {
	s, p := openMem(t, Task{Text: "a"}, Task{Text: "b"}, Task{Text: "c"})
	removed, err := s.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.Text != "b" {
		t.Fatalf("removed = %q", removed.Text)
	}
	if got := texts(s.List()); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("list = %v", got)
	}
	if got := texts(p.saved); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("saved = %v", got)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	s, p := openMem(t, Task{Text: "a"})
	for _, i := range []int{-1, 1, 42} {
		_, err := s.MarkCompleted(context.Background(), i)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("complete %d: err = %v", i, err)
		}
		_, err = s.Delete(context.Background(), i)
		var ie *IndexError
		if !errors.As(err, &ie) || ie.Len != 1 || ie.Index != i {
			t.Fatalf("delete %d: err = %v", i, err)
		}
	}
	if p.saves != 0 {
		t.Fatalf("saves = %d, want 0", p.saves)
	}
}

func TestSaveFailureRollsBack(t *testing.T) {
	s, p := openMem(t, Task{Text: "a"}, Task{Text: "b"})
	p.saveErr = errors.New("disk full")
	ctx := context.Background()

	if err := s.Append(ctx, Task{Text: "c"}); !errors.Is(err, p.saveErr) {
		t.Fatalf("append err = %v", err)
	}
	if _, err := s.MarkCompleted(ctx, 0); err == nil {
		t.Fatal("complete: expected error")
	}
	if _, err := s.Delete(ctx, 1); err == nil {
		t.Fatal("delete: expected error")
	}
	want := []Task{{Text: "a"}, {Text: "b"}}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("list after failed saves = %+v, want %+v", got, want)
	}
}

func TestListReturnsCopy(t *testing.T) {
	due := Date{2030, time.May, 5}
	s, _ := openMem(t, Task{Text: "a", DueDate: &due})
	got := s.List()
	got[0].Text = "mutated"
	got[0].DueDate.Day = 1
	again := s.List()
	if again[0].Text != "a" || again[0].DueDate.Day != 5 {
		t.Fatalf("store state leaked: %+v", again[0])
	}
}

func TestConcurrentMutations(t *testing.T) {
	seed := make([]Task, 40)
	for i := range seed {
		seed[i] = Task{Text: fmt.Sprintf("seed %d", i)}
	}
	s, p := openMem(t, seed...)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if _, err := s.MarkCompleted(ctx, 0); err != nil {
				t.Errorf("complete: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := s.Delete(ctx, 0); err != nil {
				t.Errorf("delete: %v", err)
			}
		}()
		go func(i int) {
			defer wg.Done()
			if err := s.Append(ctx, Task{Text: fmt.Sprintf("new %d", i)}); err != nil {
				t.Errorf("append: %v", err)
			}
			_ = s.List()
		}(i)
	}
	wg.Wait()

	if s.Len() != 40 {
		t.Fatalf("len = %d, want 40", s.Len())
	}
	if p.saves != 60 {
		t.Fatalf("saves = %d, want 60", p.saves)
	}
	if !reflect.DeepEqual(p.saved, s.List()) {
		t.Fatal("persisted list diverged from memory")
	}
}
