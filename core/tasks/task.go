// Package tasks owns the shared task list and its persisted representation.
package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the day-month-year layout used on the wire and in chat.
const DateLayout = "02-01-2006"

var dateRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses the strict DD-MM-YYYY form and rejects impossible dates such as 31-02-2025.
func ParseDate(s string) (Date, error) {
	if !dateRe.MatchString(s) {
		return Date{}, fmt.Errorf("date %q: want DD-MM-YYYY", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q: %w", s, err)
	}
	if t.Year() < 1 {
		return Date{}, fmt.Errorf("date %q: year out of range", s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task is a single to-do item. Its identity is its position in the list.
type Task struct {
	Text        string `json:"text"`
	DueDate     *Date  `json:"to_complete_at"`
	IsCompleted bool   `json:"is_completed"`
}

// Encode renders the list as indented UTF-8 JSON with a trailing newline.
// An empty or nil list encodes as [].
func Encode(list []Task) ([]byte, error) {
	if list == nil {
		list = []Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(list); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses data produced by Encode. Any malformed content,
// including an empty task text, yields an error wrapping ErrCorrupt.
func Decode(data []byte) ([]Task, error) {
	var list []Task
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after task array", ErrCorrupt)
	}
	for i, t := range list {
		if t.Text == "" {
			return nil, fmt.Errorf("%w: task %d has empty text", ErrCorrupt, i+1)
		}
	}
	if list == nil {
		list = []Task{}
	}
	return list, nil
}
