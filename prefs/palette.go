package prefs

import "strings"

// Palette is an ordered set of swatches the customize view cycles through.
type Palette []string

// Swatches offered for every customizable color.
var Swatches = Palette{
	"#3ca6a6",
	"#f6d55c",
	"#aaffee",
	"#8f4949",
	"#49628f",
	"#7f498f",
	"#8f7f49",
	"#628f49",
	"#cd1e91",
	"#741ecd",
	"#1e4fcd",
	"#1ecdc7",
	"#1ecd3f",
	"#cdcb1e",
	"#cd681e",
	"#ffffff",
}

// Next returns the swatch after current, wrapping around. A color not in the
// palette moves to the first swatch.
func (p Palette) Next(current string) string {
	return p.step(current, 1)
}

// Prev returns the swatch before current, wrapping around.
func (p Palette) Prev(current string) string {
	return p.step(current, -1)
}

func (p Palette) step(current string, by int) string {
	if len(p) == 0 {
		return current
	}
	for i, c := range p {
		if strings.EqualFold(c, current) {
			return p[(i+by+len(p))%len(p)]
		}
	}
	return p[0]
}
