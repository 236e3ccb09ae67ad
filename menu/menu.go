// Package menu is the frontend independent navigation between the main
// menu, color customization, name entry, the game and its game over screen.
package menu

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/retrogamehub/arcade/prefs"
	"github.com/retrogamehub/arcade/scoreboard"
)

// View is the screen currently shown.
type View string

// Views.
const (
	ViewMain      View = "main"
	ViewCustomize View = "customize"
	ViewName      View = "name"
	ViewGame      View = "game"
	ViewOver      View = "over"
)

// MaxNameLength caps typed names.
const MaxNameLength = 16

// Name validation errors.
var (
	ErrNameEmpty = errors.New("name is empty")
	ErrNameShort = errors.New("name is too short")
)

// Name validation messages shown on the name entry screen.
const (
	MsgNameEmpty = "Please enter your name!"
	MsgNameShort = "Name too short."
)

// nameMessage words a ValidateName error for display.
func nameMessage(err error) string {
	switch err {
	case ErrNameEmpty:
		return MsgNameEmpty
	case ErrNameShort:
		return MsgNameShort
	}
	return err.Error()
}

// ValidateName trims name and checks it is at least two characters long.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return "", ErrNameEmpty
	case n < 2:
		return "", ErrNameShort
	}
	return name, nil
}

// ColorField is the color being edited in the customize view.
type ColorField int

// Customizable colors, in cursor order.
const (
	FieldSnake ColorField = iota
	FieldHead
	FieldScale
	fieldCount
)

func (f ColorField) String() string {
	switch f {
	case FieldSnake:
		return "Snake"
	case FieldHead:
		return "Head"
	case FieldScale:
		return "Scales"
	}
	return "?"
}

// Menu holds navigation state. Methods called from the wrong view are
// ignored and report false.
type Menu struct {
	View   View
	Player string
	Name   []rune
	Error  string
	Colors prefs.Colors
	Field  ColorField
}

// New starts on the main menu.
func New(colors prefs.Colors) *Menu {
	return &Menu{View: ViewMain, Colors: colors}
}

// Play opens name entry.
func (m *Menu) Play() bool {
	if m.View != ViewMain {
		return false
	}
	m.View = ViewName
	m.Name = []rune(m.Player)
	m.Error = ""
	return true
}

// Customize opens the color editor.
func (m *Menu) Customize() bool {
	if m.View != ViewMain {
		return false
	}
	m.View = ViewCustomize
	m.Field = FieldSnake
	return true
}

// Back returns to the main menu from anywhere.
func (m *Menu) Back() bool {
	if m.View == ViewMain {
		return false
	}
	m.View = ViewMain
	m.Error = ""
	return true
}

// Type appends a printable rune to the name being entered.
func (m *Menu) Type(r rune) bool {
	if m.View != ViewName || !unicode.IsPrint(r) || len(m.Name) >= MaxNameLength {
		return false
	}
	m.Name = append(m.Name, r)
	m.Error = ""
	return true
}

// Erase removes the last rune of the name being entered.
func (m *Menu) Erase() bool {
	if m.View != ViewName || len(m.Name) == 0 {
		return false
	}
	m.Name = m.Name[:len(m.Name)-1]
	m.Error = ""
	return true
}

// SubmitName validates the entered name and starts the game. On failure the
// reason is left in Error.
func (m *Menu) SubmitName() bool {
	if m.View != ViewName {
		return false
	}
	name, err := ValidateName(string(m.Name))
	if err != nil {
		m.Error = nameMessage(err)
		return false
	}
	m.Player = name
	m.Error = ""
	m.View = ViewGame
	return true
}

// GameOver moves from the game to the game over screen.
func (m *Menu) GameOver() bool {
	if m.View != ViewGame {
		return false
	}
	m.View = ViewOver
	return true
}

// Restart starts another game for the same player.
func (m *Menu) Restart() bool {
	if m.View != ViewOver && m.View != ViewGame {
		return false
	}
	m.View = ViewGame
	return true
}

// NextField moves the customize cursor.
func (m *Menu) NextField() bool {
	if m.View != ViewCustomize {
		return false
	}
	m.Field = (m.Field + 1) % fieldCount
	return true
}

// CycleColor steps the color under the cursor through the swatches.
func (m *Menu) CycleColor(forward bool) bool {
	if m.View != ViewCustomize {
		return false
	}
	c := m.colorFor(m.Field)
	if forward {
		*c = prefs.Swatches.Next(*c)
	} else {
		*c = prefs.Swatches.Prev(*c)
	}
	return true
}

// Color returns the current value of a field.
func (m *Menu) Color(f ColorField) string {
	return *m.colorFor(f)
}

func (m *Menu) colorFor(f ColorField) *string {
	switch f {
	case FieldHead:
		return &m.Colors.Head
	case FieldScale:
		return &m.Colors.Scale
	}
	return &m.Colors.Snake
}

// Row is one displayed line of the scoreboard table.
type Row struct {
	Rank  string
	Name  string
	Score string
}

// Placeholder fills empty scoreboard cells.
const Placeholder = "---"

// Rows formats a board as exactly scoreboard.MaxEntries rows.
func Rows(entries []scoreboard.Entry) []Row {
	rows := make([]Row, scoreboard.MaxEntries)
	for i := range rows {
		rows[i] = Row{Rank: strconv.Itoa(i + 1), Name: Placeholder, Score: Placeholder}
		if i < len(entries) {
			if entries[i].Name != "" {
				rows[i].Name = entries[i].Name
			}
			rows[i].Score = strconv.Itoa(entries[i].Score)
		}
	}
	return rows
}
