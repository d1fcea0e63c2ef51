package tasks

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"29-02-2024", Date{2024, time.February, 29}, true},
		{"01-01-2030", Date{2030, time.January, 1}, true},
		{"31-02-2025", Date{}, false},
		{"29-02-2025", Date{}, false},
		{"1-1-2030", Date{}, false},
		{"2030-01-01", Date{}, false},
		{"01-13-2030", Date{}, false},
		{"01-01-0000", Date{}, false},
		{" 01-01-2030", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseDate(%q): %v", tc.in, err)
				continue
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("ParseDate(%q) = %v, want error", tc.in, got)
		}
	}
}

func TestDateBeforeAndString(t *testing.T) {
	a := Date{2025, time.March, 9}
	b := Date{2025, time.March, 10}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatalf("Before ordering broken for %v / %v", a, b)
	}
	if got := a.String(); got != "09-03-2025" {
		t.Fatalf("String = %q", got)
	}
}

func TestEncodeFormat(t *testing.T) {
	due := Date{2030, time.January, 1}
	list := []Task{
		{Text: "Buy milk"},
		{Text: "Pay <rent> & bills", DueDate: &due, IsCompleted: true},
	}
	got, err := Encode(list)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[
    {
        "text": "Buy milk",
        "to_complete_at": null,
        "is_completed": false
    },
    {
        "text": "Pay <rent> & bills",
        "to_complete_at": "01-01-2030",
        "is_completed": true
    }
]
`
	if string(got) != want {
		t.Fatalf("encode mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	for _, list := range [][]Task{nil, {}} {
		got, err := Encode(list)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if string(got) != "[]\n" {
			t.Fatalf("encode empty = %q", got)
		}
	}
}

func TestDecodeIsFixedPointOfEncode(t *testing.T) {
	due := Date{2024, time.February, 29}
	list := []Task{{Text: "a"}, {Text: "Купить хлеб", DueDate: &due}, {Text: "c", IsCompleted: true}}
	first, err := Encode(list)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(first)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, list) {
		t.Fatalf("decoded = %+v, want %+v", decoded, list)
	}
	second, err := Encode(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatalf("re-encode differs:\n%s\n%s", first, second)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"not json":      `hello`,
		"object":        `{"text":"a"}`,
		"bad date":      `[{"text":"a","to_complete_at":"2030-01-01","is_completed":false}]`,
		"empty text":    `[{"text":"","to_complete_at":null,"is_completed":false}]`,
		"trailing data": `[] []`,
		"truncated":     `[{"text":"a"`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(in))
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("err = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestDecodeNullIsEmpty(t *testing.T) {
	list, err := Decode([]byte("null"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("list = %#v, want empty non-nil", list)
	}
}
