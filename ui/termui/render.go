package termui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
	"github.com/retrogamehub/arcade/game"
	"github.com/retrogamehub/arcade/menu"
	"github.com/retrogamehub/arcade/prefs"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/retrogamehub/arcade/tetris"
)

const (
	left = 4
	top  = 2
	// Board cells are two columns wide so they come out roughly square.
	cellWidth = 2
)

// scheme is the set of attributes a snake board is drawn with.
type scheme struct {
	snake, head, scale termbox.Attribute
	food, border       termbox.Attribute
	background         termbox.Attribute
}

// schemeFor uses the player's colors, or the theme for the walled variant.
func schemeFor(variant game.Variant, colors prefs.Colors, theme prefs.Theme) scheme {
	if variant == game.VariantWalled {
		return scheme{
			snake:      Xterm(theme.Snake),
			head:       Xterm(theme.Snake),
			scale:      Xterm(theme.Snake),
			food:       Xterm(theme.Food),
			border:     Xterm(theme.Border),
			background: Xterm(theme.Background),
		}
	}
	return scheme{
		snake:      Xterm(colors.Snake),
		head:       Xterm(colors.Head),
		scale:      Xterm(colors.Scale),
		food:       red,
		border:     defaultColor,
		background: bgColor,
	}
}

var fruitGlyphs = map[game.FruitKind]rune{
	game.AppleRed:   '🍎',
	game.AppleGreen: '🍏',
	game.Cherry:     '🍒',
	game.Food:       '●',
}

// gameScreen is everything drawn around a snake frame.
type gameScreen struct {
	title  string
	status string
	help   string
	banner string
}

func renderSnake(f game.Frame, sc scheme, screen gameScreen) error {
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}

	renderTitle(left, top, screen.title)
	renderBoard(f.Width, f.Height, sc)

	for _, o := range f.Obstacles {
		setBoardCell(o.X, o.Y, '▓', termbox.ColorWhite, sc.background)
	}
	for _, fruit := range []game.Fruit{f.Apple, f.Cherry} {
		if fruit.Visible {
			setBoardCell(fruit.X, fruit.Y, fruitGlyphs[fruit.Kind], sc.food, sc.background)
		}
	}
	for i := len(f.Snake) - 1; i >= 0; i-- {
		p := f.Snake[i]
		if i == 0 {
			setBoardCell(p.X, p.Y, ' ', sc.head, sc.head)
			continue
		}
		setBoardCell(p.X, p.Y, '░', sc.scale, sc.snake)
	}

	bottom := top + f.Height + 1
	tbprint(left, bottom+1, defaultColor, defaultColor, screen.status)
	tbprint(left, bottom+2, defaultColor, defaultColor, screen.help)
	if screen.banner != "" {
		renderBanner(f.Width, f.Height, screen.banner)
	}
	return termbox.Flush()
}

func statusLine(f game.Frame, variant game.Variant, player string) string {
	parts := []string{fmt.Sprintf("Score: %d", f.Score)}
	if rules, err := game.RulesFor(variant); err == nil && rules.WinScore > 0 {
		parts[0] = fmt.Sprintf("Score: %d / %d", f.Score, rules.WinScore)
	}
	switch variant {
	case game.VariantWalled:
		secs := int(f.Elapsed.Seconds())
		parts = append(parts, fmt.Sprintf("Time: %02d:%02d", secs/60, secs%60))
	case game.VariantObstacles:
		parts = append(parts, fmt.Sprintf("Level: %d", f.Level))
	}
	if player != "" {
		parts = append(parts, "Player: "+player)
	}
	return strings.Join(parts, "   ")
}

func bannerFor(f game.Frame) string {
	switch f.Status {
	case game.StatusWon:
		return "YOU WIN!"
	case game.StatusOver:
		return "GAME OVER"
	}
	return ""
}

// setBoardCell paints board cell x, y. Wide runes fill both columns on
// their own, narrow ones are doubled up.
func setBoardCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	sx, sy := left+x*cellWidth, top+1+y
	if runewidth.RuneWidth(ch) == 2 {
		termbox.SetCell(sx, sy, ch, fg, bg)
		return
	}
	second := ch
	if ch == '●' {
		second = ' '
	}
	termbox.SetCell(sx, sy, ch, fg, bg)
	termbox.SetCell(sx+1, sy, second, fg, bg)
}

func renderBoard(width, height int, sc scheme) {
	w := width * cellWidth
	bottom := top + height + 1
	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left-1, i, '│', sc.border, bgColor)
		termbox.SetCell(left+w, i, '│', sc.border, bgColor)
	}

	termbox.SetCell(left-1, top, '┌', sc.border, bgColor)
	termbox.SetCell(left-1, bottom, '└', sc.border, bgColor)
	termbox.SetCell(left+w, top, '┐', sc.border, bgColor)
	termbox.SetCell(left+w, bottom, '┘', sc.border, bgColor)

	fill(left, top, w, 1, termbox.Cell{Ch: '─', Fg: sc.border})
	fill(left, bottom, w, 1, termbox.Cell{Ch: '─', Fg: sc.border})
	if sc.background != bgColor {
		fill(left, top+1, w, height, termbox.Cell{Ch: ' ', Bg: sc.background})
	}
}

func renderBanner(width, height int, text string) {
	w := width * cellWidth
	x := left + (w-runewidth.StringWidth(text))/2
	y := top + 1 + height/2
	tbprint(x-1, y, termbox.ColorBlack|termbox.AttrBold, termbox.ColorWhite, " "+text+" ")
}

func renderTitle(x, y int, title string) {
	tbprint(x, y-1, defaultColor|termbox.AttrBold, defaultColor, title)
}

func renderMenu(board []scoreboard.Entry, variant game.Variant, theme prefs.Theme) error {
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}

	renderTitle(left, top, "RETRO GAME HUB - SNAKE ("+string(variant)+")")
	items := "[enter] Play   [c] Customize   [q] Quit"
	if variant == game.VariantWalled {
		items = "[enter] Play   [c] Customize   [t] Theme: " + theme.Name + "   [q] Quit"
	}
	tbprint(left, top+1, defaultColor, defaultColor, items)
	renderScoreTable(left, top+3, board)
	return termbox.Flush()
}

func renderScoreTable(x, y int, board []scoreboard.Entry) {
	tbprint(x, y, defaultColor|termbox.AttrBold, defaultColor, "HIGH SCORES")
	tbprint(x, y+1, defaultColor|termbox.AttrUnderline, defaultColor, row("#", "Name", "Score"))
	for i, r := range menu.Rows(board) {
		fg := defaultColor
		switch i {
		case 0:
			fg = gold
		case 1:
			fg = silver
		case 2:
			fg = bronze
		}
		tbprint(x, y+2+i, fg, defaultColor, row(r.Rank, r.Name, r.Score))
	}
}

func row(rank, name, score string) string {
	return runewidth.FillRight(rank, 4) +
		runewidth.FillRight(runewidth.Truncate(name, menu.MaxNameLength, "…"), menu.MaxNameLength+2) +
		runewidth.FillLeft(score, 6)
}

func renderCustomize(m *menu.Menu) error {
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}
	renderTitle(left, top, "CUSTOMIZE")
	for i, f := range []menu.ColorField{menu.FieldSnake, menu.FieldHead, menu.FieldScale} {
		cursor := "  "
		if f == m.Field {
			cursor = "> "
		}
		y := top + 1 + i
		tbprint(left, y, defaultColor, defaultColor, fmt.Sprintf("%s%-7s %s", cursor, f.String(), m.Color(f)))
		fill(left+20, y, 4, 1, termbox.Cell{Ch: ' ', Bg: Xterm(m.Color(f))})
	}

	// Preview snake heading right.
	sc := schemeFor(game.VariantClassic, m.Colors, prefs.Theme{})
	y := top + 5
	for i := 0; i < 5; i++ {
		x := left + i*cellWidth
		if i == 4 {
			fill(x, y, cellWidth, 1, termbox.Cell{Ch: ' ', Bg: sc.head})
			continue
		}
		fill(x, y, cellWidth, 1, termbox.Cell{Ch: '░', Fg: sc.scale, Bg: sc.snake})
	}
	tbprint(left, y+2, defaultColor, defaultColor, "[up/down/tab] select   [left/right] change   [enter/esc] save")
	return termbox.Flush()
}

func renderNameEntry(m *menu.Menu) error {
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}
	renderTitle(left, top, "ENTER YOUR NAME")
	name := string(m.Name)
	box := runewidth.FillRight(name+"_", menu.MaxNameLength+1)
	tbprint(left, top+1, defaultColor, defaultColor, "["+box+"]")
	if m.Error != "" {
		tbprint(left, top+2, red, defaultColor, m.Error)
	}
	tbprint(left, top+4, defaultColor, defaultColor, "[enter] start   [esc] back")
	return termbox.Flush()
}

func renderTetris(s tetris.Snapshot, player string, banner string) error {
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}
	renderTitle(left, top, "TETRIS")
	renderBoard(tetris.Cols, tetris.Rows, scheme{border: defaultColor, background: bgColor})
	for y := 0; y < tetris.Rows; y++ {
		for x := 0; x < tetris.Cols; x++ {
			if c := s.Board[y][x]; c != "" {
				setBoardCell(x, y, ' ', defaultColor, Xterm(c))
			}
		}
	}

	px := left + tetris.Cols*cellWidth + 3
	tbprint(px, top+1, defaultColor, defaultColor, fmt.Sprintf("Score: %d", s.Score))
	tbprint(px, top+2, defaultColor, defaultColor, fmt.Sprintf("Lines: %d", s.Lines))
	if player != "" {
		tbprint(px, top+3, defaultColor, defaultColor, "Player: "+player)
	}
	tbprint(px, top+5, defaultColor, defaultColor, "Next:")
	for _, c := range s.Next.Shape {
		fill(px+c.X*cellWidth, top+6+c.Y, cellWidth, 1, termbox.Cell{Ch: ' ', Bg: Xterm(s.Next.Color)})
	}
	tbprint(px, top+10, defaultColor, defaultColor, "[left/right] move  [up] rotate")
	tbprint(px, top+11, defaultColor, defaultColor, "[down] drop  [space] hard drop")
	tbprint(px, top+12, defaultColor, defaultColor, "[esc] quit")
	if banner != "" {
		renderBanner(tetris.Cols, tetris.Rows, banner)
	}
	return termbox.Flush()
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
