// Package termui is the terminal frontend. It owns the termbox screen and
// drives the menu, the games and replays from the keyboard.
package termui

import (
	"context"
	"time"

	termbox "github.com/nsf/termbox-go"
	"github.com/retrogamehub/arcade/config"
	"github.com/retrogamehub/arcade/game"
	"github.com/retrogamehub/arcade/kvstore"
	"github.com/retrogamehub/arcade/loop"
	"github.com/retrogamehub/arcade/menu"
	"github.com/retrogamehub/arcade/prefs"
	"github.com/retrogamehub/arcade/recording"
	"github.com/retrogamehub/arcade/scoreboard"
	log "github.com/sirupsen/logrus"
)

// listTimeout bounds a scoreboard read made while drawing the menu.
const listTimeout = 3 * time.Second

// App is the snake arcade. KV holds preferences, Scores the board for the
// chosen variant. RecordDir enables recording of every game when set.
type App struct {
	KV        kvstore.Store
	Scores    scoreboard.Store
	Variant   game.Variant
	Seed      int64
	RecordDir string

	menu  *menu.Menu
	theme prefs.Theme
	board []scoreboard.Entry
	// saved is closed when the last game's score save completes.
	saved <-chan struct{}
}

// Run shows the main menu until the player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.Variant == "" {
		a.Variant = game.VariantClassic
	}
	colors, err := prefs.Load(ctx, a.KV)
	if err != nil {
		log.WithError(err).Warn("unable to load colors, using defaults")
	}
	themeName, err := kvstore.GetDefault(ctx, a.KV, prefs.ThemeKey, "")
	if err != nil {
		log.WithError(err).Warn("unable to load theme")
	}
	a.theme = prefs.ThemeFor(themeName)
	a.menu = menu.New(colors)

	return withScreen(func(events <-chan termbox.Event) error {
		return a.mainLoop(ctx, events)
	})
}

func (a *App) mainLoop(ctx context.Context, events <-chan termbox.Event) error {
	a.refreshBoard(ctx)
	for {
		if err := a.render(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-a.saved:
			a.saved = nil
			a.refreshBoard(ctx)
		case ev := <-events:
			if ev.Type == termbox.EventError {
				return ev.Err
			}
			quit, err := a.handle(ctx, ev, events)
			if err != nil || quit {
				return err
			}
		}
	}
}

func (a *App) render() error {
	switch a.menu.View {
	case menu.ViewCustomize:
		return renderCustomize(a.menu)
	case menu.ViewName:
		return renderNameEntry(a.menu)
	}
	return renderMenu(a.board, a.Variant, a.theme)
}

// handle applies one key to the menu and reports whether to quit.
func (a *App) handle(ctx context.Context, ev termbox.Event, events <-chan termbox.Event) (bool, error) {
	m := a.menu
	switch m.View {
	case menu.ViewMain:
		switch {
		case isQuit(ev):
			return true, nil
		case isKey(ev, termbox.KeyEnter), isRune(ev, 'p', 'P'):
			m.Play()
		case isRune(ev, 'c', 'C'):
			m.Customize()
		case isRune(ev, 't', 'T') && a.Variant == game.VariantWalled:
			a.theme = prefs.NextTheme(a.theme.Name)
			if err := a.KV.Set(ctx, prefs.ThemeKey, a.theme.Name); err != nil {
				log.WithError(err).Warn("unable to save theme")
			}
		}

	case menu.ViewCustomize:
		switch {
		case isKey(ev, termbox.KeyEnter), isKey(ev, termbox.KeyEsc):
			if err := prefs.Save(ctx, a.KV, m.Colors); err != nil {
				log.WithError(err).Warn("unable to save colors")
			}
			m.Back()
		case isKey(ev, termbox.KeyArrowDown), isKey(ev, termbox.KeyArrowUp), isKey(ev, termbox.KeyTab):
			m.NextField()
		case isKey(ev, termbox.KeyArrowRight):
			m.CycleColor(true)
		case isKey(ev, termbox.KeyArrowLeft):
			m.CycleColor(false)
		}

	case menu.ViewName:
		if !typeName(m, ev) || !m.SubmitName() {
			return false, nil
		}
		for m.View == menu.ViewGame {
			if err := a.play(ctx, events); err != nil {
				return false, err
			}
		}
		a.refreshBoard(ctx)
	}
	return false, nil
}

// typeName edits the name being entered and reports whether it was
// submitted.
func typeName(m *menu.Menu, ev termbox.Event) bool {
	if ev.Type != termbox.EventKey {
		return false
	}
	switch ev.Key {
	case termbox.KeyEnter:
		return true
	case termbox.KeyEsc:
		m.Back()
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		m.Erase()
	case termbox.KeySpace:
		m.Type(' ')
	default:
		if ev.Ch != 0 {
			m.Type(ev.Ch)
		}
	}
	return false
}

// play runs one game followed by its game over screen, which leaves the
// menu either back on the main view or on the game view for a restart.
func (a *App) play(ctx context.Context, events <-chan termbox.Event) error {
	state, err := game.New(game.Config{
		Variant: a.Variant,
		Width:   config.GridSize,
		Height:  config.GridSize,
		Seed:    a.Seed,
	})
	if err != nil {
		return err
	}

	sc := schemeFor(a.Variant, a.menu.Colors, a.theme)
	screen := gameScreen{
		title: "SNAKE (" + string(a.Variant) + ")",
		help:  "[arrows/wasd] steer   [esc] quit",
	}

	session := &loop.Session{State: state}
	if rec := a.record(state); rec != nil {
		defer rec.Close()
		session.Record = rec.WriteFrame
	}

	frames := make(chan game.Frame)
	input := make(chan game.Direction, 4)
	gameCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	session.Render = func(f game.Frame) {
		select {
		case frames <- f:
		case <-gameCtx.Done():
		}
	}

	done := make(chan error, 1)
	go func() {
		_, err := session.Run(gameCtx, input)
		done <- err
	}()

	last := state.Frame()
	quit := false
playing:
	for {
		select {
		case f := <-frames:
			last = f
			screen.status = statusLine(f, a.Variant, a.menu.Player)
			if err := renderSnake(f, sc, screen); err != nil {
				return err
			}
		case ev := <-events:
			if isKey(ev, termbox.KeyEsc) || isKey(ev, termbox.KeyCtrlC) {
				quit = true
				cancel()
				continue
			}
			if d, ok := directionFor(ev); ok {
				select {
				case input <- d:
				default:
				}
			}
		case err := <-done:
			if err != nil && err != context.Canceled {
				return err
			}
			break playing
		}
	}

	if quit || ctx.Err() != nil {
		a.menu.Back()
		return nil
	}

	a.saved = loop.Finish(a.Scores, a.menu.Player, state)
	a.menu.GameOver()
	screen.banner = bannerFor(last)
	screen.help = "[r] play again   [esc] menu"
	if err := renderSnake(last, sc, screen); err != nil {
		return err
	}
	a.gameOverScreen(ctx, events)
	return nil
}

// gameOverScreen waits for the game over delay and returns to the menu,
// unless the player asks for another game first.
func (a *App) gameOverScreen(ctx context.Context, events <-chan termbox.Event) {
	timer := time.NewTimer(config.GameOverDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			a.menu.Back()
			return
		case <-timer.C:
			a.menu.Back()
			return
		case ev := <-events:
			switch {
			case isRune(ev, 'r', 'R'):
				a.menu.Restart()
				return
			case isKey(ev, termbox.KeyEsc), isKey(ev, termbox.KeyEnter):
				a.menu.Back()
				return
			}
		}
	}
}

func (a *App) record(state *game.State) *recording.Writer {
	if a.RecordDir == "" {
		return nil
	}
	w, err := recording.Create(a.RecordDir, state.ID)
	if err != nil {
		log.WithError(err).Warn("unable to create recording")
		return nil
	}
	if err := w.WriteInfo(recording.InfoFor(state, a.menu.Player)); err != nil {
		log.WithError(err).Warn("unable to write recording header")
		w.Close()
		return nil
	}
	log.WithField("file", recording.Path(a.RecordDir, state.ID)).Info("recording game")
	return w
}

func (a *App) refreshBoard(ctx context.Context) {
	if a.Scores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	board, err := a.Scores.List(ctx)
	if err != nil {
		log.WithError(err).Warn("unable to load scoreboard")
		return
	}
	a.board = board
}
