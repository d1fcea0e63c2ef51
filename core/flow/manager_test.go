package flow

import "testing"

func TestManagerDefaults(t *testing.T) {
	m := NewManager()
	if st := m.State(7); st != StateIdle {
		t.Fatalf("state = %q, want idle", st)
	}
	if m.Len() != 0 {
		t.Fatalf("read-only calls created sessions: %d", m.Len())
	}
	sess := m.Get(7)
	if sess.State != StateIdle || sess.PendingText != "" || sess.Intent != IntentNone {
		t.Fatalf("fresh session = %+v", sess)
	}
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
}

func TestManagerDraftLifecycle(t *testing.T) {
	m := NewManager()
	m.SetState(1, StateAwaitingTaskText)
	m.SetPendingText(1, "Buy milk")
	m.SetState(1, StateAwaitingTaskDate)
	m.SetIntent(1, IntentDelete)

	if m.State(1) != StateAwaitingTaskDate {
		t.Fatalf("state = %q", m.State(1))
	}
	if got := m.Get(1).PendingText; got != "Buy milk" {
		t.Fatalf("pending = %q", got)
	}
	if m.State(2) != StateIdle {
		t.Fatal("chat 2 leaked state from chat 1")
	}

	m.Reset(1)
	sess := m.Get(1)
	if sess.State != StateIdle || sess.PendingText != "" {
		t.Fatalf("after reset = %+v", sess)
	}
	if sess.Intent != IntentDelete {
		t.Fatalf("reset cleared intent: %+v", sess)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	m := NewManager()
	sess := m.Get(3)
	sess.State = StateAwaitingTaskDate
	if m.State(3) != StateIdle {
		t.Fatal("mutating the copy changed the manager")
	}
}
