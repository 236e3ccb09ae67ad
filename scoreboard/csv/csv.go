// Package csv exports and imports scoreboards as CSV files.
//
// A file looks like this, the first line being ignored by standard CSV tools:
//
//	#{"board":"snakeScores","exported":"2024-05-02T10:00:00Z"}
//	rank,name,score
//	1,ada,42
//	2,"smith, bob",17
package csv

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/retrogamehub/arcade/scoreboard"
)

var header = []string{"rank", "name", "score"}

// Metadata describes an exported board.
type Metadata struct {
	Board    string    `json:"board"`
	Exported time.Time `json:"exported"`
}

// Write writes entries to w as CSV, led by a metadata comment line.
func Write(w io.Writer, meta Metadata, entries []scoreboard.Entry) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "#"+string(metaJSON)+"\n"); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, e := range entries {
		if err := cw.Write([]string{strconv.Itoa(i + 1), e.Name, strconv.Itoa(e.Score)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read parses a file produced by Write. Rows that do not hold a name and an
// integer score are skipped. The returned entries are normalized.
func Read(r io.Reader) (Metadata, []scoreboard.Entry, error) {
	var meta Metadata
	br := bufio.NewReader(r)

	first, err := br.Peek(1)
	if err == nil && first[0] == '#' {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return meta, nil, err
		}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "#")), &meta); err != nil {
			return meta, nil, errors.Wrap(err, "invalid metadata line")
		}
	}

	cr := csv.NewReader(br)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	entries := []scoreboard.Entry{}
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return meta, nil, err
		}
		if row == 0 && len(rec) > 0 && rec[0] == header[0] {
			continue
		}
		if len(rec) != len(header) {
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			continue
		}
		entries = append(entries, scoreboard.Entry{Name: rec[1], Score: score})
	}
	return meta, scoreboard.Normalize(entries), nil
}
