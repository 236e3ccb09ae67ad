package gui

import (
	"image/color"
	"testing"

	"github.com/retrogamehub/arcade/game"
	"github.com/retrogamehub/arcade/loop"
	"github.com/retrogamehub/arcade/prefs"
	"github.com/retrogamehub/arcade/tone"
	"github.com/stretchr/testify/require"
)

func TestColorOf(t *testing.T) {
	def := color.RGBA{1, 2, 3, 0xff}
	require.Equal(t, color.RGBA{0x3c, 0xa6, 0xa6, 0xff}, colorOf("#3ca6a6", def))
	require.Equal(t, color.RGBA{0xff, 0x00, 0x00, 0xff}, colorOf("#f00", def))
	require.Equal(t, def, colorOf("red", def))
}

func TestPaletteFor(t *testing.T) {
	p := paletteFor(game.VariantClassic, prefs.DefaultColors, prefs.Themes[1])
	require.Equal(t, colorOf(prefs.DefaultColors.Head, colorText), p.head)
	require.Equal(t, colorBoard, p.background)

	p = paletteFor(game.VariantWalled, prefs.DefaultColors, prefs.ThemeFor("ocean"))
	require.Equal(t, color.RGBA{0x00, 0x1f, 0x3f, 0xff}, p.background)
	require.Equal(t, p.snake, p.head)
}

func TestCellSizeFitsWindow(t *testing.T) {
	for _, n := range []int{5, 20, 40, 200} {
		size := cellSize(n, n)
		require.True(t, size >= 4)
		if size > 4 {
			require.True(t, n*size <= Height-2*margin)
		}
	}
	require.Equal(t, 21, cellSize(20, 20))
}

func TestSoundFor(t *testing.T) {
	s, ok := soundFor(loop.EventEat)
	require.True(t, ok)
	require.Equal(t, tone.Eat, s)

	s, ok = soundFor(loop.EventGameOver)
	require.True(t, ok)
	require.Equal(t, tone.Sawtooth, s[0].Wave)

	_, ok = soundFor("unknown")
	require.False(t, ok)
}

func TestFrameHolder(t *testing.T) {
	fh := &frameHolder{}
	_, ok := fh.get()
	require.False(t, ok)

	fh.set(game.Frame{Turn: 1})
	fh.set(game.Frame{Turn: 2})
	f, ok := fh.get()
	require.True(t, ok)
	require.Equal(t, int64(2), f.Turn)

	_, done := fh.finished()
	require.False(t, done)
	state := &game.State{Score: 7}
	fh.finish(state)
	got, done := fh.finished()
	require.True(t, done)
	require.Equal(t, state, got)
}
