package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordle-answer/internal/extract"
	"github.com/robalobadob/wordle-answer/internal/fetch"
	"github.com/robalobadob/wordle-answer/internal/words"
)

const archiveURL = "https://answers.test/wordle-answers/"

const archivePage = `<h2>All January 2026 Wordle Answers</h2>
<table>
<tr><th>Date</th><th>Wordle #</th><th>Answer</th></tr>
<tr><td>January 5</td><td>1661</td><td>CRANE</td></tr>
<tr><td>January 4</td><td>1660</td><td>SLATE</td></tr>
</table>`

type countingFetcher struct {
	body  string
	err   error
	calls int
}

func (f *countingFetcher) Fetch(_ context.Context, url string, _ fetch.Options) (*fetch.Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &fetch.Page{URL: url, Status: 200, Body: []byte(f.body)}, nil
}

var now = time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)

func newCache(t *testing.T, f fetch.Fetcher) *Cache {
	t.Helper()
	c := NewCache(archiveURL, filepath.Join(t.TempDir(), "answers.json"), DefaultTTL, f, fetch.DefaultOptions())
	c.SetClock(func() time.Time { return now })
	return c
}

func seed(t *testing.T, c *Cache, age time.Duration, recs []words.Record) {
	t.Helper()
	if err := WriteSnapshot(c.Path, &Snapshot{UpdatedAt: now.Add(-age), Records: recs}); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestSnapshotReusedWhenFresh(t *testing.T) {
	f := &countingFetcher{body: archivePage}
	c := newCache(t, f)
	seed(t, c, 23*time.Hour, []words.Record{{Date: "2026-01-04", PuzzleNumber: 1660, Answer: "OLDER"}})

	got, ok, err := c.Lookup(context.Background(), "2026-01-04")
	if err != nil || !ok {
		t.Fatalf("lookup: %v %v", ok, err)
	}
	if got.Answer != "OLDER" {
		t.Errorf("expected snapshot answer, got %s", got.Answer)
	}
	if f.calls != 0 {
		t.Errorf("fresh snapshot must not trigger a fetch, got %d calls", f.calls)
	}
}

func TestSnapshotRebuiltWhenStale(t *testing.T) {
	f := &countingFetcher{body: archivePage}
	c := newCache(t, f)
	seed(t, c, 25*time.Hour, []words.Record{{Date: "2026-01-04", PuzzleNumber: 1660, Answer: "OLDER"}})

	got, ok, err := c.Lookup(context.Background(), "2026-01-04")
	if err != nil || !ok {
		t.Fatalf("lookup: %v %v", ok, err)
	}
	if got.Answer != "SLATE" {
		t.Errorf("expected rebuilt answer SLATE, got %s", got.Answer)
	}
	if f.calls != 1 {
		t.Errorf("expected one archive fetch, got %d", f.calls)
	}

	snap, err := ReadSnapshot(c.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !snap.UpdatedAt.Equal(now) || len(snap.Records) != 2 {
		t.Errorf("snapshot not replaced wholesale: %+v", snap)
	}
	csv, err := os.ReadFile(CSVPath(c.Path))
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	want := "date,puzzle_number,answer\n2026-01-05,1661,CRANE\n2026-01-04,1660,SLATE\n"
	if diff := cmp.Diff(want, string(csv)); diff != "" {
		t.Errorf("csv (-want +got):\n%s", diff)
	}

	// Second lookup is served from memory.
	if _, _, err := c.Lookup(context.Background(), "2026-01-05"); err != nil {
		t.Fatal(err)
	}
	if f.calls != 1 {
		t.Errorf("rebuilt snapshot should be reused, got %d fetches", f.calls)
	}
}

func TestMissingSnapshotIsBuilt(t *testing.T) {
	f := &countingFetcher{body: archivePage}
	c := newCache(t, f)

	_, ok, err := c.Lookup(context.Background(), "2026-01-05")
	if err != nil || !ok {
		t.Fatalf("lookup: %v %v", ok, err)
	}
	if _, ok, _ := c.Lookup(context.Background(), "2025-12-31"); ok {
		t.Error("date outside the archive must be absent")
	}
}

func TestRebuildFailureServesStale(t *testing.T) {
	f := &countingFetcher{err: &fetch.FetchError{URL: archiveURL, Status: 503}}
	c := newCache(t, f)
	seed(t, c, 48*time.Hour, []words.Record{{Date: "2026-01-03", PuzzleNumber: 1659, Answer: "PLUMB"}})

	got, ok, err := c.Lookup(context.Background(), "2026-01-03")
	if err != nil || !ok || got.Answer != "PLUMB" {
		t.Errorf("expected stale answer, got %+v %v %v", got, ok, err)
	}
}

func TestRebuildWithNoRowsKeepsSnapshot(t *testing.T) {
	f := &countingFetcher{body: "<p>maintenance</p>"}
	c := newCache(t, f)
	seed(t, c, 48*time.Hour, []words.Record{{Date: "2026-01-03", PuzzleNumber: 1659, Answer: "PLUMB"}})

	_, err := c.Refresh(context.Background())
	var pe *extract.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	snap, err := ReadSnapshot(c.Path)
	if err != nil || len(snap.Records) != 1 {
		t.Errorf("old snapshot should survive, got %+v %v", snap, err)
	}
}

func TestDisabledCacheReadsSnapshotOnly(t *testing.T) {
	f := &countingFetcher{body: archivePage}
	c := NewCache("", filepath.Join(t.TempDir(), "answers.json"), 0, f, fetch.DefaultOptions())
	c.SetClock(func() time.Time { return now })

	recs, err := c.Records(context.Background())
	if err != nil || recs != nil {
		t.Errorf("expected no records, got %v %v", recs, err)
	}
	if _, err := c.Refresh(context.Background()); err == nil {
		t.Error("refresh without url should fail")
	}
	if f.calls != 0 {
		t.Errorf("unexpected fetches: %d", f.calls)
	}
}

func TestReadSnapshotFallsBackToMtime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	if err := os.WriteFile(path, []byte(`{"records":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if !snap.UpdatedAt.Equal(mtime) {
		t.Errorf("expected mtime %v, got %v", mtime, snap.UpdatedAt)
	}
}

func TestCSVPath(t *testing.T) {
	if got := CSVPath("/tmp/x/answers.json"); got != "/tmp/x/answers.csv" {
		t.Errorf("got %s", got)
	}
	if !strings.HasSuffix(CSVPath("answers"), "answers.csv") {
		t.Error("path without extension should gain .csv")
	}
}
