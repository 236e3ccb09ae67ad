package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/retrogamehub/arcade/game"
	"github.com/retrogamehub/arcade/menu"
	"github.com/retrogamehub/arcade/prefs"
	"golang.org/x/image/font/basicfont"
)

const (
	margin     = 20
	lineHeight = 16
)

var (
	colorText    = color.RGBA{0xee, 0xee, 0xee, 0xff}
	colorDim     = color.RGBA{0x88, 0x88, 0x88, 0xff}
	colorError   = color.RGBA{0xff, 0x44, 0x44, 0xff}
	colorOverlay = color.RGBA{0x00, 0x00, 0x00, 0xaa}
	colorBoard   = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorGold    = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorSilver  = color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
	colorBronze  = color.RGBA{0xcd, 0x7f, 0x32, 0xff}
	colorWall    = color.RGBA{0x77, 0x77, 0x77, 0xff}

	fruitColors = map[game.FruitKind]color.RGBA{
		game.AppleRed:   {0xe5, 0x39, 0x35, 0xff},
		game.AppleGreen: {0x7c, 0xb3, 0x42, 0xff},
		game.Cherry:     {0xad, 0x14, 0x57, 0xff},
	}
)

// colorOf converts a #rgb or #rrggbb preference to a color, falling back to
// def when it does not parse.
func colorOf(hex string, def color.RGBA) color.RGBA {
	r, g, b, err := prefs.RGB(hex)
	if err != nil {
		return def
	}
	return color.RGBA{r, g, b, 0xff}
}

// palette is what a snake board is painted with.
type palette struct {
	snake, head, scale color.RGBA
	food, border       color.RGBA
	background         color.RGBA
}

func paletteFor(variant game.Variant, colors prefs.Colors, theme prefs.Theme) palette {
	if variant == game.VariantWalled {
		snake := colorOf(theme.Snake, colorText)
		return palette{
			snake:      snake,
			head:       snake,
			scale:      snake,
			food:       colorOf(theme.Food, colorError),
			border:     colorOf(theme.Border, colorText),
			background: colorOf(theme.Background, colorBoard),
		}
	}
	return palette{
		snake:      colorOf(colors.Snake, colorText),
		head:       colorOf(colors.Head, colorText),
		scale:      colorOf(colors.Scale, colorText),
		border:     colorDim,
		background: colorBoard,
	}
}

// cellSize fits a width x height board into the window beside the side
// panel.
func cellSize(width, height int) int {
	w := (Width - 2*margin - 180) / width
	h := (Height - 2*margin) / height
	if h < w {
		w = h
	}
	if w < 4 {
		w = 4
	}
	return w
}

// Draw renders the current view.
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.menu.View {
	case menu.ViewMain:
		g.drawMain(screen)
	case menu.ViewCustomize:
		g.drawCustomize(screen)
	case menu.ViewName:
		g.drawName(screen)
	case menu.ViewGame, menu.ViewOver:
		if g.frames == nil {
			return
		}
		if f, ok := g.frames.get(); ok {
			g.drawGame(screen, f)
		}
	}
}

func say(screen *ebiten.Image, line int, clr color.Color, msg string) {
	text.Draw(screen, msg, basicfont.Face7x13, margin, margin+line*lineHeight, clr)
}

func (g *Game) drawMain(screen *ebiten.Image) {
	say(screen, 0, colorText, fmt.Sprintf("RETRO GAME HUB - SNAKE (%s)", g.opts.Variant))
	items := "[enter] play   [c] customize   [q] quit"
	if g.opts.Variant == game.VariantWalled {
		items = "[enter] play   [c] customize   [t] theme: " + g.theme.Name + "   [q] quit"
	}
	say(screen, 1, colorDim, items)

	say(screen, 3, colorText, "HIGH SCORES")
	for i, r := range menu.Rows(g.scores()) {
		clr := color.Color(colorText)
		switch i {
		case 0:
			clr = colorGold
		case 1:
			clr = colorSilver
		case 2:
			clr = colorBronze
		}
		say(screen, 4+i, clr, fmt.Sprintf("%-3s %-17s %6s", r.Rank, r.Name, r.Score))
	}
}

func (g *Game) drawCustomize(screen *ebiten.Image) {
	m := g.menu
	say(screen, 0, colorText, "CUSTOMIZE")
	for i, f := range []menu.ColorField{menu.FieldSnake, menu.FieldHead, menu.FieldScale} {
		cursor := "  "
		if f == m.Field {
			cursor = "> "
		}
		line := 2 + i
		say(screen, line, colorText, fmt.Sprintf("%s%-7s %s", cursor, f.String(), m.Color(f)))
		vector.DrawFilledRect(screen, float32(margin+160), float32(margin+line*lineHeight-11),
			32, 12, colorOf(m.Color(f), colorText), false)
	}

	// Preview snake heading right.
	p := paletteFor(game.VariantClassic, m.Colors, prefs.Theme{})
	size := float32(20)
	y := float32(margin + 6*lineHeight)
	for i := 0; i < 5; i++ {
		x := float32(margin) + float32(i)*size
		drawSegment(screen, x, y, size, p, i == 4)
	}
	say(screen, 9, colorDim, "[up/down/tab] select   [left/right] change   [enter/esc] save")
}

func (g *Game) drawName(screen *ebiten.Image) {
	m := g.menu
	say(screen, 0, colorText, "ENTER YOUR NAME")
	vector.StrokeRect(screen, margin, float32(margin+lineHeight+2), 180, 20, 2, colorDim, false)
	text.Draw(screen, string(m.Name)+"_", basicfont.Face7x13, margin+6, margin+2*lineHeight+2, colorText)
	if m.Error != "" {
		say(screen, 4, colorError, m.Error)
	}
	say(screen, 6, colorDim, "[enter] start   [esc] back")
}

func drawSegment(screen *ebiten.Image, x, y, size float32, p palette, head bool) {
	if head {
		vector.DrawFilledRect(screen, x, y, size, size, p.head, false)
		return
	}
	vector.DrawFilledRect(screen, x, y, size, size, p.snake, false)
	vector.DrawFilledCircle(screen, x+size/2, y+size/2, size/4, p.scale, true)
}

func (g *Game) drawGame(screen *ebiten.Image, f game.Frame) {
	p := paletteFor(g.opts.Variant, g.menu.Colors, g.theme)
	size := cellSize(f.Width, f.Height)
	fs := float32(size)
	ox, oy := float32(margin), float32(margin)
	bw, bh := float32(f.Width*size), float32(f.Height*size)

	vector.DrawFilledRect(screen, ox, oy, bw, bh, p.background, false)
	vector.StrokeRect(screen, ox-1, oy-1, bw+2, bh+2, 2, p.border, false)

	cell := func(pt game.Point) (float32, float32) {
		return ox + float32(pt.X)*fs, oy + float32(pt.Y)*fs
	}
	for _, o := range f.Obstacles {
		x, y := cell(o)
		vector.DrawFilledRect(screen, x, y, fs, fs, colorWall, false)
	}
	for _, fruit := range []game.Fruit{f.Apple, f.Cherry} {
		if !fruit.Visible {
			continue
		}
		clr, ok := fruitColors[fruit.Kind]
		if !ok {
			clr = p.food
		}
		x, y := cell(fruit.Point)
		vector.DrawFilledCircle(screen, x+fs/2, y+fs/2, fs/2-1, clr, true)
	}
	for i := len(f.Snake) - 1; i >= 0; i-- {
		x, y := cell(f.Snake[i])
		drawSegment(screen, x, y, fs, p, i == 0)
	}

	px := int(ox+bw) + margin
	panel := []string{fmt.Sprintf("Score: %d", f.Score)}
	switch g.opts.Variant {
	case game.VariantWalled:
		secs := int(f.Elapsed.Seconds())
		panel = append(panel, fmt.Sprintf("Time: %02d:%02d", secs/60, secs%60))
	case game.VariantObstacles:
		panel = append(panel, fmt.Sprintf("Level: %d", f.Level))
	}
	panel = append(panel, "Player: "+g.menu.Player, "", "[arrows/wasd] steer", "[esc] quit")
	for i, line := range panel {
		text.Draw(screen, line, basicfont.Face7x13, px, margin+(i+1)*lineHeight, colorText)
	}

	if g.menu.View != menu.ViewOver {
		return
	}
	banner := "GAME OVER"
	if f.Status == game.StatusWon {
		banner = "YOU WIN!"
	}
	vector.DrawFilledRect(screen, ox, oy+bh/2-24, bw, 48, colorOverlay, false)
	text.Draw(screen, banner, basicfont.Face7x13, int(ox+bw/2)-len(banner)*7/2, int(oy+bh/2)-2, colorText)
	text.Draw(screen, "[r] play again", basicfont.Face7x13, int(ox+bw/2)-7*7, int(oy+bh/2)+14, colorDim)
}
