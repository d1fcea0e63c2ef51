package telegram

import "testing"

func TestRegistryKeepsOrderAndRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	for _, c := range [][2]string{{"/start", "Menu"}, {"list", "List"}, {"new", "New"}} {
		if err := reg.RegisterCommand(c[0], c[1]); err != nil {
			t.Fatalf("register %s: %v", c[0], err)
		}
	}
	if err := reg.RegisterCommand("start", "again"); err == nil {
		t.Fatal("duplicate accepted")
	}
	if err := reg.RegisterCommand("/empty", " "); err == nil {
		t.Fatal("blank description accepted")
	}

	got := reg.ListCommands()
	want := []string{"start", "list", "new"}
	if len(got) != len(want) {
		t.Fatalf("commands = %+v", got)
	}
	for i, c := range got {
		if c.Text != want[i] {
			t.Fatalf("command %d = %q, want %q", i, c.Text, want[i])
		}
	}
}
