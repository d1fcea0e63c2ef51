package router

import (
	"testing"
	"time"

	"github.com/m3rciful/taskbot/core/messages"
	"github.com/m3rciful/taskbot/core/tasks"
)

func TestRender(t *testing.T) {
	due := tasks.Date{Year: 2030, Month: time.January, Day: 5}
	list := []tasks.Task{
		{Text: "Buy milk"},
		{Text: "Pay rent", DueDate: &due, IsCompleted: true},
	}
	got := Render(list, messages.For("en"))
	want := "📋 Your tasks:\n\n" +
		"1. Buy milk — ✗\n" +
		"2. Pay rent (Due: 05-01-2030) — ✓"
	if got != want {
		t.Fatalf("render:\n%s\nwant:\n%s", got, want)
	}

	ru := Render(list[1:], messages.For("ru"))
	if ru != "📋 Ваши задачи:\n\n1. Pay rent (До: 05-01-2030) — ✓" {
		t.Fatalf("ru render = %q", ru)
	}
}

func TestRenderEmpty(t *testing.T) {
	cat := messages.For("en")
	if got := Render(nil, cat); got != cat.ListEmpty {
		t.Fatalf("render empty = %q", got)
	}
}
