package flow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m3rciful/taskbot/core/tasks"
)

var (
	// ErrDateFormat is returned for input that is neither a DD-MM-YYYY date nor a none token.
	ErrDateFormat = errors.New("flow: malformed due date")
	// ErrDatePast is returned for a well-formed date strictly before today.
	ErrDatePast = errors.New("flow: due date already passed")
)

// ParseDueDate interprets the reply to the due date prompt. A none token
// (compared case-insensitively) yields a nil date. Today is accepted.
func ParseDueDate(input string, today tasks.Date, noneTokens []string) (*tasks.Date, error) {
	in := strings.TrimSpace(input)
	for _, tok := range noneTokens {
		if strings.EqualFold(in, tok) {
			return nil, nil
		}
	}
	d, err := tasks.ParseDate(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDateFormat, err)
	}
	if d.Before(today) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrDatePast, d, today)
	}
	return &d, nil
}
