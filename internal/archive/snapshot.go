// internal/archive/snapshot.go
//
// On-disk archive snapshot.
// Responsibilities:
//   - JSON snapshot of every scraped archive row, written wholesale via a
//     temp file and rename so readers never see a partial file.
//   - CSV export of the same rows next to the JSON file.
//   - Freshness: now - UpdatedAt, falling back to the file mtime.

package archive

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/wordle-answer/internal/words"
)

// Snapshot is the persisted archive.
type Snapshot struct {
	UpdatedAt time.Time      `json:"updatedAt"`
	Source    string         `json:"source,omitempty"`
	Records   []words.Record `json:"records"`
}

// Age returns how old s is at now.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.UpdatedAt)
}

// ReadSnapshot loads the snapshot at path. A missing file returns an error
// satisfying errors.Is(err, fs.ErrNotExist).
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if snap.UpdatedAt.IsZero() {
		if fi, err := os.Stat(path); err == nil {
			snap.UpdatedAt = fi.ModTime()
		}
	}
	return &snap, nil
}

// WriteSnapshot replaces the snapshot at path and its CSV sibling.
func WriteSnapshot(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}

	var b strings.Builder
	if err := WriteCSV(&b, snap.Records); err != nil {
		return err
	}
	return writeAtomic(CSVPath(path), []byte(b.String()))
}

// CSVPath returns the CSV sibling of a snapshot path (answers.json -> answers.csv).
func CSVPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
}

// WriteCSV writes recs as date,puzzle_number,answer rows with a header.
func WriteCSV(w io.Writer, recs []words.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "puzzle_number", "answer"}); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write([]string{r.Date, strconv.Itoa(r.PuzzleNumber), r.Answer}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
