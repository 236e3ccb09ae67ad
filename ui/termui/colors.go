package termui

import (
	"math"

	termbox "github.com/nsf/termbox-go"
	"github.com/retrogamehub/arcade/prefs"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault

	gold   = termbox.Attribute(220 + 1)
	silver = termbox.Attribute(250 + 1)
	bronze = termbox.Attribute(172 + 1)
	red    = termbox.Attribute(196 + 1)
)

// Xterm maps a #rrggbb color to the nearest entry of the 256 color palette,
// as an attribute for termbox's Output256 mode. Unparseable colors map to
// the terminal default.
func Xterm(hex string) termbox.Attribute {
	r, g, b, err := prefs.RGB(hex)
	if err != nil {
		return defaultColor
	}
	return termbox.Attribute(xtermIndex(r, g, b) + 1)
}

func xtermIndex(r, g, b uint8) int {
	if r == g && g == b {
		switch {
		case r < 8:
			return 16
		case r > 238:
			return 231
		}
		return 232 + (int(r)-8)/10
	}
	return 16 + 36*cube(r) + 6*cube(g) + cube(b)
}

func cube(v uint8) int {
	return int(math.Round(float64(v) / 255 * 5))
}
