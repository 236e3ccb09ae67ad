package scoreboard

import (
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxEntries is the size of every scoreboard.
const MaxEntries = 10

// Storage keys used by the local backends. They match the keys the browser
// versions of the games write, so exported data stays interchangeable.
const (
	SnakeBoard  = "snakeScores"
	TetrisBoard = "tetris_scores"
)

// ErrInvalidEntry is returned when an entry can never appear on a board.
var ErrInvalidEntry = errors.New("scoreboard: invalid entry")

// Entry is a single row of a scoreboard.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Validate reports ErrInvalidEntry for blank names and negative scores.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" || e.Score < 0 {
		return ErrInvalidEntry
	}
	return nil
}

// ShouldSave reports whether a finished game earns a place in the list at
// all: the player has to be named and the score has to be positive.
func ShouldSave(player string, score int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(player)) > 1 && score > 0
}

type rawEntry struct {
	Name  interface{} `json:"name"`
	Score interface{} `json:"score"`
}

// Decode parses a stored list, dropping anything that is not an object with
// a string name and an integral numeric score. Unparseable input decodes to
// an empty list.
func Decode(raw []byte) []Entry {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []Entry{}
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		var r rawEntry
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		name, ok := r.Name.(string)
		if !ok {
			continue
		}
		score, ok := r.Score.(float64)
		if !ok || score != math.Trunc(score) || math.Abs(score) > math.MaxInt32 {
			continue
		}
		entries = append(entries, Entry{Name: name, Score: int(score)})
	}
	return entries
}

// Encode marshals a list the way Decode reads it.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// Normalize returns a new list without invalid entries, sorted by score
// descending and cut to MaxEntries. Ties keep their original order.
func Normalize(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Validate() == nil {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

// Insert adds e to list and normalizes the result. A new score equal to an
// existing one ranks below it.
func Insert(list []Entry, e Entry) []Entry {
	next := make([]Entry, 0, len(list)+1)
	next = append(next, list...)
	next = append(next, e)
	return Normalize(next)
}
