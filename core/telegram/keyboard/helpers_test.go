package keyboard

import "testing"

func TestReplyButtonsLayout(t *testing.T) {
	m := ReplyButtons([]string{"➕ New task", "📋 List"}, []string{"✅ Complete", "🗑 Delete"})
	if !m.ResizeKeyboard {
		t.Fatal("keyboard not resized")
	}
	if len(m.ReplyKeyboard) != 2 {
		t.Fatalf("rows = %d", len(m.ReplyKeyboard))
	}
	want := [][]string{{"➕ New task", "📋 List"}, {"✅ Complete", "🗑 Delete"}}
	for i, row := range m.ReplyKeyboard {
		if len(row) != 2 {
			t.Fatalf("row %d has %d buttons", i, len(row))
		}
		for j, b := range row {
			if b.Text != want[i][j] {
				t.Fatalf("button [%d][%d] = %q, want %q", i, j, b.Text, want[i][j])
			}
		}
	}
}
