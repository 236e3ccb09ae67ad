// Package gui is the windowed snake frontend built on ebiten. It follows the
// same menu flow as the terminal frontend and plays tones for game events.
package gui

import (
	"context"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retrogamehub/arcade/config"
	"github.com/retrogamehub/arcade/game"
	"github.com/retrogamehub/arcade/kvstore"
	"github.com/retrogamehub/arcade/loop"
	"github.com/retrogamehub/arcade/menu"
	"github.com/retrogamehub/arcade/prefs"
	"github.com/retrogamehub/arcade/recording"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/retrogamehub/arcade/tone"
	log "github.com/sirupsen/logrus"
)

// Window size in pixels.
const (
	Width  = 640
	Height = 480
)

const listTimeout = 3 * time.Second

// Options configure the window.
type Options struct {
	KV        kvstore.Store
	Scores    scoreboard.Store
	Variant   game.Variant
	Seed      int64
	RecordDir string
	// Mute skips creating the audio context.
	Mute bool
}

// Game implements ebiten.Game.
type Game struct {
	opts   Options
	ctx    context.Context
	menu   *menu.Menu
	theme  prefs.Theme
	sounds *sounds

	boardLock sync.RWMutex
	board     []scoreboard.Entry

	frames *frameHolder
	input  chan game.Direction
	cancel context.CancelFunc
	overAt time.Time
	quit   bool
}

// New loads preferences and returns a game showing the main menu.
func New(ctx context.Context, opts Options) *Game {
	if opts.Variant == "" {
		opts.Variant = game.VariantClassic
	}
	colors, err := prefs.Load(ctx, opts.KV)
	if err != nil {
		log.WithError(err).Warn("unable to load colors, using defaults")
	}
	themeName, err := kvstore.GetDefault(ctx, opts.KV, prefs.ThemeKey, "")
	if err != nil {
		log.WithError(err).Warn("unable to load theme")
	}
	g := &Game{
		opts:  opts,
		ctx:   ctx,
		menu:  menu.New(colors),
		theme: prefs.ThemeFor(themeName),
	}
	if !opts.Mute {
		g.sounds = newSounds(audio.NewContext(tone.SampleRate))
	}
	g.refreshBoard()
	return g
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(Width, Height)
	ebiten.SetWindowTitle("Retro Game Hub - Snake")
	defer g.stopGame()
	return ebiten.RunGame(g)
}

// Update advances the menu state machine by one ebiten tick.
func (g *Game) Update() error {
	if g.quit || g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.sounds != nil {
		g.sounds.play()
	}

	m := g.menu
	switch m.View {
	case menu.ViewMain:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
			g.quit = true
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyP):
			m.Play()
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			m.Customize()
		case inpututil.IsKeyJustPressed(ebiten.KeyT) && g.opts.Variant == game.VariantWalled:
			g.theme = prefs.NextTheme(g.theme.Name)
			if err := g.opts.KV.Set(g.ctx, prefs.ThemeKey, g.theme.Name); err != nil {
				log.WithError(err).Warn("unable to save theme")
			}
		}

	case menu.ViewCustomize:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			if err := prefs.Save(g.ctx, g.opts.KV, m.Colors); err != nil {
				log.WithError(err).Warn("unable to save colors")
			}
			m.Back()
		case inpututil.IsKeyJustPressed(ebiten.KeyDown), inpututil.IsKeyJustPressed(ebiten.KeyUp),
			inpututil.IsKeyJustPressed(ebiten.KeyTab):
			m.NextField()
		case inpututil.IsKeyJustPressed(ebiten.KeyRight):
			m.CycleColor(true)
		case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
			m.CycleColor(false)
		}

	case menu.ViewName:
		for _, r := range ebiten.AppendInputChars(nil) {
			m.Type(r)
		}
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
			m.Erase()
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			m.Back()
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
			if m.SubmitName() {
				g.startGame()
			}
		}

	case menu.ViewGame:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.stopGame()
			m.Back()
			return nil
		}
		if d, ok := pressedDirection(); ok {
			select {
			case g.input <- d:
			default:
			}
		}
		if state, done := g.frames.finished(); done {
			g.endGame(state)
		}

	case menu.ViewOver:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyR):
			m.Restart()
			g.startGame()
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyEnter),
			time.Since(g.overAt) >= config.GameOverDelay:
			m.Back()
		}
	}
	return nil
}

func pressedDirection() (game.Direction, bool) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyW), inpututil.IsKeyJustPressed(ebiten.KeyUp):
		return game.Up, true
	case inpututil.IsKeyJustPressed(ebiten.KeyS), inpututil.IsKeyJustPressed(ebiten.KeyDown):
		return game.Down, true
	case inpututil.IsKeyJustPressed(ebiten.KeyA), inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		return game.Left, true
	case inpututil.IsKeyJustPressed(ebiten.KeyD), inpututil.IsKeyJustPressed(ebiten.KeyRight):
		return game.Right, true
	}
	return "", false
}

// startGame runs a new game on its own goroutine. Frames reach Draw through
// the frame holder.
func (g *Game) startGame() {
	g.stopGame()
	state, err := game.New(game.Config{
		Variant: g.opts.Variant,
		Width:   config.GridSize,
		Height:  config.GridSize,
		Seed:    g.opts.Seed,
	})
	if err != nil {
		log.WithError(err).Error("unable to start game")
		g.menu.Back()
		return
	}

	frames := &frameHolder{}
	session := &loop.Session{State: state, Render: frames.set}
	if g.sounds != nil {
		session.Notify = g.sounds.notify
	}
	rec := g.record(state)
	if rec != nil {
		session.Record = rec.WriteFrame
	}

	ctx, cancel := context.WithCancel(g.ctx)
	g.frames, g.cancel = frames, cancel
	g.input = make(chan game.Direction, 4)
	input := g.input
	go func() {
		defer func() {
			if rec != nil {
				rec.Close()
			}
		}()
		final, err := session.Run(ctx, input)
		if err != nil && err != context.Canceled {
			log.WithError(err).Warn("game stopped")
		}
		frames.finish(final)
	}()
}

func (g *Game) stopGame() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

func (g *Game) endGame(state *game.State) {
	g.stopGame()
	saved := loop.Finish(g.opts.Scores, g.menu.Player, state)
	go func() {
		<-saved
		g.refreshBoard()
	}()
	g.menu.GameOver()
	g.overAt = time.Now()
}

func (g *Game) record(state *game.State) *recording.Writer {
	if g.opts.RecordDir == "" {
		return nil
	}
	w, err := recording.Create(g.opts.RecordDir, state.ID)
	if err != nil {
		log.WithError(err).Warn("unable to create recording")
		return nil
	}
	if err := w.WriteInfo(recording.InfoFor(state, g.menu.Player)); err != nil {
		log.WithError(err).Warn("unable to write recording header")
		w.Close()
		return nil
	}
	return w
}

func (g *Game) refreshBoard() {
	if g.opts.Scores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(g.ctx, listTimeout)
	defer cancel()
	board, err := g.opts.Scores.List(ctx)
	if err != nil {
		log.WithError(err).Warn("unable to load scoreboard")
		return
	}
	g.boardLock.Lock()
	g.board = board
	g.boardLock.Unlock()
}

func (g *Game) scores() []scoreboard.Entry {
	g.boardLock.RLock()
	defer g.boardLock.RUnlock()
	return g.board
}

// Layout keeps a fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return Width, Height
}
