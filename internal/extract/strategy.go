package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/robalobadob/wordle-answer/internal/words"
)

// DefaultPattern finds the answer sentence on article pages. It runs over
// upper-cased visible text; "." does not cross lines, but the \s+ after IS
// does, so an answer wrapped in its own element still matches. The trailing
// \b keeps "IS COMING SOON" from yielding COMIN.
const DefaultPattern = `THE ANSWER FOR WORDLE.*?IS\s+([A-Z]{5})\b`

// puzzleRef finds the puzzle number ("#1,661") inside a matched phrase.
var puzzleRef = regexp.MustCompile(`#\s*(\d[\d,]*)`)

// Match is what a strategy found on a page. PuzzleNumber is 0 when the page
// does not print it.
type Match struct {
	Answer       string
	PuzzleNumber int
}

// ParseError is a parse failure: the page was fetched but the expected
// pattern or table was not there.
type ParseError struct {
	Source string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.Source, e.Reason)
}

// Strategy extracts a single answer from a parsed page.
type Strategy interface {
	// ID is the source identifier the strategy is registered under.
	ID() string

	// Extract returns the normalized answer or a *ParseError.
	Extract(doc *goquery.Document) (Match, error)
}

// Phrase is the free-text strategy: flatten, upper-case, regex.
type Phrase struct {
	id string
	re *regexp.Regexp
}

// NewPhrase compiles pattern for source id. The pattern must have one
// capture group holding the answer and is matched against upper-case text.
func NewPhrase(id, pattern string) (*Phrase, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("source %s: compile pattern: %w", id, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("source %s: pattern needs a capture group", id)
	}
	return &Phrase{id: id, re: re}, nil
}

// ID implements Strategy.
func (p *Phrase) ID() string { return p.id }

// Extract implements Strategy.
func (p *Phrase) Extract(doc *goquery.Document) (Match, error) {
	if m, ok := p.match(VisibleText(doc)); ok {
		return m, nil
	}
	return Match{}, &ParseError{Source: p.id, Reason: "answer phrase not found"}
}

func (p *Phrase) match(text string) (Match, bool) {
	m := p.re.FindStringSubmatch(strings.ToUpper(text))
	if m == nil {
		return Match{}, false
	}
	ans, ok := words.Normalize(m[1])
	if !ok {
		return Match{}, false
	}
	return Match{Answer: ans, PuzzleNumber: puzzleNumber(m[0])}, true
}

func puzzleNumber(phrase string) int {
	m := puzzleRef.FindStringSubmatch(phrase)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

var defaultPhrase = &Phrase{id: "default", re: regexp.MustCompile(DefaultPattern)}

// MatchAnswer applies DefaultPattern to text (any case).
func MatchAnswer(text string) (string, bool) {
	m, ok := defaultPhrase.match(text)
	return m.Answer, ok
}

// Registry maps source ids to strategies.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	fallback   Strategy
}

// NewRegistry returns a registry whose fallback is the default phrase strategy.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy), fallback: defaultPhrase}
}

// Register adds s under s.ID(), replacing any previous entry.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.ID()] = s
}

// Lookup returns the strategy for id, or the fallback.
func (r *Registry) Lookup(id string) Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.strategies[id]; ok {
		return s
	}
	return r.fallback
}
