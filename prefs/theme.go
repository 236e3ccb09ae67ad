package prefs

// Theme colors the walled variant's board.
type Theme struct {
	Name       string
	Background string
	Snake      string
	Food       string
	Border     string
}

// Themes in menu order.
var Themes = []Theme{
	{Name: "classic", Background: "#000000", Snake: "#00ff00", Food: "#ff0000", Border: "#ffffff"},
	{Name: "neon", Background: "#0a0a0a", Snake: "#00ffff", Food: "#ff00ff", Border: "#00ffff"},
	{Name: "forest", Background: "#1a4a1a", Snake: "#90ee90", Food: "#ff4444", Border: "#228b22"},
	{Name: "ocean", Background: "#001f3f", Snake: "#7fdbff", Food: "#ff851b", Border: "#0074d9"},
}

// ThemeKey stores the selected theme name.
const ThemeKey = "theme"

// ThemeFor returns the named theme, or classic.
func ThemeFor(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name in menu order.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
