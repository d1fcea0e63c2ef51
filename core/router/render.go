package router

import (
	"fmt"
	"strings"

	"github.com/m3rciful/taskbot/core/messages"
	"github.com/m3rciful/taskbot/core/tasks"
)

// Render formats the list as a header followed by one numbered line per task.
// Numbers are the 1-based positions a user types to address a task.
func Render(list []tasks.Task, cat *messages.Catalog) string {
	if len(list) == 0 {
		return cat.ListEmpty
	}
	var b strings.Builder
	b.WriteString(cat.ListHeader)
	b.WriteString("\n\n")
	for i, t := range list {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderLine(i+1, t, cat))
	}
	return b.String()
}

func renderLine(pos int, t tasks.Task, cat *messages.Catalog) string {
	due := ""
	if t.DueDate != nil {
		due = fmt.Sprintf(" (%s: %s)", cat.DuePrefix, t.DueDate)
	}
	mark := cat.Open
	if t.IsCompleted {
		mark = cat.Done
	}
	return fmt.Sprintf("%d. %s%s — %s", pos, t.Text, due, mark)
}
