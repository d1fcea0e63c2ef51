package messages

import "testing"

func TestForFallsBackToEnglish(t *testing.T) {
	for _, loc := range []string{"", "en", "fr", " EN "} {
		if got := For(loc).Locale; got != "en" {
			t.Fatalf("For(%q).Locale = %q", loc, got)
		}
	}
	if got := For("RU").Locale; got != "ru" {
		t.Fatalf("For(RU).Locale = %q", got)
	}
}

func TestCatalogsAreComplete(t *testing.T) {
	for _, c := range []*Catalog{For("en"), For("ru")} {
		fields := map[string]string{
			"Welcome": c.Welcome, "ListHeader": c.ListHeader, "ListEmpty": c.ListEmpty,
			"DuePrefix": c.DuePrefix, "AskTaskText": c.AskTaskText, "AskTaskDate": c.AskTaskDate,
			"DateMalformed": c.DateMalformed, "DatePast": c.DatePast, "TaskAdded": c.TaskAdded,
			"AskCompleteNumber": c.AskCompleteNumber, "AskDeleteNumber": c.AskDeleteNumber,
			"PromptListEmpty": c.PromptListEmpty, "Completed": c.Completed, "Deleted": c.Deleted,
			"NoSuchTask": c.NoSuchTask, "Failure": c.Failure,
		}
		for name, v := range fields {
			if v == "" {
				t.Errorf("%s: %s is empty", c.Locale, name)
			}
		}
		if len(c.NoneTokens) == 0 {
			t.Errorf("%s: no none tokens", c.Locale)
		}
		seen := map[string]bool{}
		for _, row := range c.Labels() {
			if len(row) != 2 {
				t.Fatalf("%s: row %v", c.Locale, row)
			}
			for _, l := range row {
				if l == "" || seen[l] {
					t.Errorf("%s: bad or duplicate label %q", c.Locale, l)
				}
				seen[l] = true
			}
		}
	}
}

func TestForReturnsIndependentCopies(t *testing.T) {
	a := For("en")
	a.Welcome = "changed"
	if For("en").Welcome == "changed" {
		t.Fatal("catalog mutation leaked into the package default")
	}
}
