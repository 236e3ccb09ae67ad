// Package recording stores finished and in-progress games as JSON lines: a
// header line describing the game followed by one line per frame.
package recording

import (
	"encoding/json"
	"os"
	"os/user"
	"path"
	"time"

	"github.com/retrogamehub/arcade/config"
	"github.com/retrogamehub/arcade/game"
)

const fileExt = ".jsonl"

// Info is the header line of a recording.
type Info struct {
	ID      string       `json:"id"`
	Variant game.Variant `json:"variant"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Seed    int64        `json:"seed"`
	Player  string       `json:"player,omitempty"`
	Started time.Time    `json:"started"`
}

// InfoFor builds the header for a new game.
func InfoFor(s *game.State, player string) Info {
	return Info{
		ID:      s.ID,
		Variant: s.Rules.Variant,
		Width:   s.Width,
		Height:  s.Height,
		Seed:    s.Seed,
		Player:  player,
		Started: time.Now().UTC(),
	}
}

// DefaultDir is where recordings go unless told otherwise.
func DefaultDir() string {
	if config.StorageDir != "" {
		return path.Join(config.StorageDir, "games")
	}
	home := "."
	if usr, err := user.Current(); err == nil {
		home = usr.HomeDir
	}
	return path.Join(home, ".arcade", "games")
}

// Path is the file a recording with id is kept in.
func Path(dir, id string) string {
	return path.Join(dir, id+fileExt)
}

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

// Writer appends a recording to a file.
type Writer struct {
	w writer
}

// Create starts a new recording for id in dir. It refuses to overwrite an
// existing recording.
func Create(dir, id string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0775); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(Path(dir, id), os.O_APPEND|os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	return &Writer{w: f}, nil
}

// WriteInfo writes the header. It must be the first line.
func (w *Writer) WriteInfo(info Info) error {
	return writeLine(w.w, &info)
}

// WriteFrame appends a frame.
func (w *Writer) WriteFrame(f game.Frame) error {
	return writeLine(w.w, &f)
}

// Close closes the file.
func (w *Writer) Close() error {
	return w.w.Close()
}

func writeLine(w writer, data interface{}) error {
	j, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.WriteString(string(j) + "\n")
	return err
}
