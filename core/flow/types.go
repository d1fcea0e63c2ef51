// Package flow tracks the per-chat conversation that collects a new task.
package flow

// State identifies a step of the new-task conversation.
type State string

const (
	// StateIdle means no conversation is in progress for the chat.
	StateIdle State = "idle"
	// StateAwaitingTaskText waits for the text of a new task.
	StateAwaitingTaskText State = "awaiting_task_text"
	// StateAwaitingTaskDate waits for the due date (or the none token) of the drafted task.
	StateAwaitingTaskDate State = "awaiting_task_date"
)

// Intent records which number prompt is outstanding for a chat.
type Intent string

const (
	IntentNone     Intent = ""
	IntentComplete Intent = "complete"
	IntentDelete   Intent = "delete"
)

// Session is the conversation state of one chat.
type Session struct {
	State       State
	PendingText string
	Intent      Intent
}
