// Package router turns inbound chat text into task operations and replies.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/m3rciful/taskbot/core/flow"
	"github.com/m3rciful/taskbot/core/logger"
	"github.com/m3rciful/taskbot/core/messages"
	"github.com/m3rciful/taskbot/core/tasks"
)

// Reply is one outbound message. Keyboard asks the transport to attach the main menu.
type Reply struct {
	Text     string
	Keyboard bool
}

// Action is the resolved meaning of an inbound message.
type Action string

const (
	ActionNone           Action = "none"
	ActionFlowInput      Action = "flow_input"
	ActionStart          Action = "start"
	ActionList           Action = "list"
	ActionNewTask        Action = "new_task"
	ActionCompletePrompt Action = "complete_prompt"
	ActionDeletePrompt   Action = "delete_prompt"
	ActionNumber         Action = "number"
)

// Command is a slash command understood by the router.
type Command struct {
	Name        string
	Description string
	Action      Action
}

var commandOrder = []struct {
	name   string
	action Action
}{
	{"start", ActionStart},
	{"list", ActionList},
	{"new", ActionNewTask},
	{"complete", ActionCompletePrompt},
	{"delete", ActionDeletePrompt},
}

// Option customizes a Router.
type Option func(*Router)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		if now != nil {
			r.now = now
		}
	}
}

// Router serializes inbound events: each one is fully handled, including the
// store save, before the next starts.
type Router struct {
	mu       sync.Mutex
	store    *tasks.Store
	sessions *flow.Manager
	cat      *messages.Catalog
	now      func() time.Time
	commands map[string]Action
	labels   map[string]Action
	log      *slog.Logger
}

// New builds a router over store and sessions speaking the catalog's locale.
func New(store *tasks.Store, sessions *flow.Manager, cat *messages.Catalog, opts ...Option) *Router {
	if cat == nil {
		cat = messages.For("")
	}
	if sessions == nil {
		sessions = flow.NewManager()
	}
	r := &Router{
		store:    store,
		sessions: sessions,
		cat:      cat,
		now:      time.Now,
		commands: make(map[string]Action, len(commandOrder)),
		labels: map[string]Action{
			cat.LabelNewTask:  ActionNewTask,
			cat.LabelList:     ActionList,
			cat.LabelComplete: ActionCompletePrompt,
			cat.LabelDelete:   ActionDeletePrompt,
		},
		log: logger.Component("router"),
	}
	for _, c := range commandOrder {
		r.commands[c.name] = c.action
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Commands lists the slash commands in menu order.
func (r *Router) Commands() []Command {
	out := make([]Command, 0, len(commandOrder))
	for _, c := range commandOrder {
		out = append(out, Command{Name: c.name, Description: r.cat.CommandHelp[c.name], Action: c.action})
	}
	return out
}

// Catalog returns the vocabulary the router answers in.
func (r *Router) Catalog() *messages.Catalog { return r.cat }

// Handle processes one inbound text from chatID and returns the replies to send.
// A nil result means the message is ignored.
func (r *Router) Handle(ctx context.Context, chatID int64, text string) (replies []Reply) {
	if ctx == nil {
		ctx = context.Background()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	sess := r.sessions.Get(chatID)
	action := ActionFlowInput
	if sess.State == flow.StateIdle {
		action = r.classify(text)
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.LogEvent(ctx, r.log, slog.LevelError, "router.panic",
				slog.String("status", "fail"),
				slog.String("action", string(action)),
				slog.String("state", string(sess.State)),
				slog.String("err", fmt.Sprint(rec)),
				slog.String("stack", logger.SanitizeLimit(string(debug.Stack()), 2048)),
			)
			replies = []Reply{{Text: r.cat.Failure}}
		}
	}()

	var err error
	switch action {
	case ActionFlowInput:
		replies, err = r.handleFlowInput(ctx, chatID, sess, text)
	case ActionNumber:
		replies, err = r.handleNumber(ctx, chatID, sess.Intent, text)
	case ActionNone:
	default:
		replies = r.handleVocabulary(chatID, action)
	}

	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("action", string(action)),
		slog.String("state", string(sess.State)),
		slog.String("intent", intentName(sess.Intent)),
		slog.Int("replies", len(replies)),
		slog.Duration("duration", logger.Took(start)),
	}
	if action == ActionNone {
		attrs[0] = slog.String("status", "skip")
	}
	if err != nil {
		level = slog.LevelError
		attrs[0] = slog.String("status", "fail")
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
		replies = []Reply{{Text: r.cat.Failure}}
	}
	logger.LogEvent(ctx, r.log, level, "router.handle", attrs...)
	return replies
}

// classify resolves text received while the chat is idle.
func (r *Router) classify(text string) Action {
	text = strings.TrimSpace(text)
	if text == "" {
		return ActionNone
	}
	if name, ok := commandName(text); ok {
		if a, found := r.commands[name]; found {
			return a
		}
		return ActionNone
	}
	if a, ok := r.labels[text]; ok {
		return a
	}
	if isNumericToken(text) {
		return ActionNumber
	}
	return ActionNone
}

func (r *Router) handleVocabulary(chatID int64, action Action) []Reply {
	r.sessions.SetIntent(chatID, flow.IntentNone)
	switch action {
	case ActionStart:
		return []Reply{{Text: r.cat.Welcome, Keyboard: true}}
	case ActionList:
		return []Reply{{Text: Render(r.store.List(), r.cat)}}
	case ActionNewTask:
		r.sessions.SetState(chatID, flow.StateAwaitingTaskText)
		return []Reply{{Text: r.cat.AskTaskText}}
	case ActionCompletePrompt, ActionDeletePrompt:
		if r.store.Len() == 0 {
			return []Reply{{Text: r.cat.PromptListEmpty}}
		}
		if action == ActionDeletePrompt {
			r.sessions.SetIntent(chatID, flow.IntentDelete)
			return []Reply{{Text: r.cat.AskDeleteNumber}}
		}
		r.sessions.SetIntent(chatID, flow.IntentComplete)
		return []Reply{{Text: r.cat.AskCompleteNumber}}
	}
	return nil
}

func (r *Router) handleFlowInput(ctx context.Context, chatID int64, sess flow.Session, text string) ([]Reply, error) {
	switch sess.State {
	case flow.StateAwaitingTaskText:
		if strings.TrimSpace(text) == "" {
			return []Reply{{Text: r.cat.AskTaskText}}, nil
		}
		r.sessions.SetPendingText(chatID, text)
		r.sessions.SetState(chatID, flow.StateAwaitingTaskDate)
		return []Reply{{Text: r.cat.AskTaskDate}}, nil

	case flow.StateAwaitingTaskDate:
		due, err := flow.ParseDueDate(text, tasks.DateOf(r.now()), r.cat.NoneTokens)
		switch {
		case errors.Is(err, flow.ErrDatePast):
			return []Reply{{Text: r.cat.DatePast}}, nil
		case err != nil:
			return []Reply{{Text: r.cat.DateMalformed}}, nil
		}
		// The draft survives a failed save so the user can resend the date.
		if err := r.store.Append(ctx, tasks.Task{Text: sess.PendingText, DueDate: due}); err != nil {
			return nil, err
		}
		r.sessions.Reset(chatID)
		return []Reply{{Text: r.cat.TaskAdded, Keyboard: true}}, nil
	}
	return nil, fmt.Errorf("router: unexpected state %q", sess.State)
}

func (r *Router) handleNumber(ctx context.Context, chatID int64, intent flow.Intent, token string) ([]Reply, error) {
	r.sessions.SetIntent(chatID, flow.IntentNone)

	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || n < 1 {
		return []Reply{{Text: r.cat.NoSuchTask}}, nil
	}

	var (
		task tasks.Task
		tmpl string
	)
	if intent == flow.IntentDelete {
		task, err = r.store.Delete(ctx, n-1)
		tmpl = r.cat.Deleted
	} else {
		task, err = r.store.MarkCompleted(ctx, n-1)
		tmpl = r.cat.Completed
	}
	switch {
	case errors.Is(err, tasks.ErrIndexOutOfRange):
		return []Reply{{Text: r.cat.NoSuchTask}}, nil
	case err != nil:
		return nil, err
	}
	return []Reply{{Text: fmt.Sprintf(tmpl, task.Text)}}, nil
}

// commandName extracts "list" from "/list" or "/list@taskbot extra".
func commandName(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	head := strings.Fields(text)[0][1:]
	if at := strings.IndexByte(head, '@'); at >= 0 {
		head = head[:at]
	}
	return strings.ToLower(head), true
}

func isNumericToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func intentName(in flow.Intent) string {
	if in == flow.IntentNone {
		return "none"
	}
	return string(in)
}
