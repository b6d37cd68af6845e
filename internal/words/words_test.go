package words

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"crane", "CRANE", true},
		{" Slate. ", "SLATE", true},
		{"“PLUMB”", "PLUMB", true},
		{"CRANES", "", false},
		{"CRAN", "", false},
		{"CR4NE", "", false},
		{"", "", false},
		{"Reveal", "", false},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Normalize(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDedupeKeepsFirstAndIgnoresAnswerCase(t *testing.T) {
	in := []Record{
		{Date: "2026-01-05", PuzzleNumber: 1661, Answer: "crane"},
		{Date: "2026-01-05", PuzzleNumber: 1661, Answer: "CRANE"},
		{Date: "2026-01-04", PuzzleNumber: 1660, Answer: "Slate"},
	}
	got := Dedupe(in)
	want := []Record{
		{Date: "2026-01-05", PuzzleNumber: 1661, Answer: "CRANE"},
		{Date: "2026-01-04", PuzzleNumber: 1660, Answer: "SLATE"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dedupe mismatch (-want +got):\n%s", diff)
	}
}

func TestDedupeSameDateDifferentNumber(t *testing.T) {
	in := []Record{
		{Date: "2026-01-05", PuzzleNumber: 1661, Answer: "CRANE"},
		{Date: "2026-01-05", PuzzleNumber: 1662, Answer: "SLATE"},
	}
	if got := Dedupe(in); len(got) != 2 {
		t.Errorf("expected both records kept, got %d", len(got))
	}
}

func TestDedupeDropsInvalidAnswers(t *testing.T) {
	in := []Record{
		{Date: "2026-01-05", PuzzleNumber: 1661, Answer: "Reveal"},
		{Date: "2026-01-05", PuzzleNumber: 1661, Answer: "CRANE"},
	}
	got := Dedupe(in)
	if len(got) != 1 || got[0].Answer != "CRANE" {
		t.Errorf("expected the valid duplicate to survive, got %+v", got)
	}
}

func TestSortNewestFirst(t *testing.T) {
	recs := []Record{
		{Date: "2026-01-05", Answer: "CRANE"},
		{Date: "2026-01-01", Answer: "SLATE"},
		{Date: "2026-01-10", Answer: "PLUMB"},
	}
	SortNewestFirst(recs)

	var got []string
	for _, r := range recs {
		got = append(got, r.Date)
	}
	want := []string{"2026-01-10", "2026-01-05", "2026-01-01"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFind(t *testing.T) {
	recs := []Record{{Date: "2026-01-05", Answer: "CRANE"}}
	if r, ok := Find(recs, "2026-01-05"); !ok || r.Answer != "CRANE" {
		t.Errorf("Find hit = %+v, %v", r, ok)
	}
	if _, ok := Find(recs, "2026-01-06"); ok {
		t.Error("Find miss should report false")
	}
}
