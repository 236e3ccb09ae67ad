package termui

import (
	"context"
	"time"

	termbox "github.com/nsf/termbox-go"
	"github.com/retrogamehub/arcade/config"
	"github.com/retrogamehub/arcade/menu"
	"github.com/retrogamehub/arcade/prefs"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/retrogamehub/arcade/tetris"
	log "github.com/sirupsen/logrus"
)

// Tetris is the falling block game with its own board of scores.
type Tetris struct {
	Scores scoreboard.Store
	Seed   int64

	menu  *menu.Menu
	board []scoreboard.Entry
	saved <-chan struct{}
}

// Run shows the tetris menu until the player quits or ctx is cancelled.
func (t *Tetris) Run(ctx context.Context) error {
	t.menu = menu.New(prefs.DefaultColors)
	return withScreen(func(events <-chan termbox.Event) error {
		t.refreshBoard(ctx)
		for {
			var err error
			if t.menu.View == menu.ViewName {
				err = renderNameEntry(t.menu)
			} else {
				err = renderTetrisMenu(t.board)
			}
			if err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				return nil
			case <-t.saved:
				t.saved = nil
				t.refreshBoard(ctx)
			case ev := <-events:
				if ev.Type == termbox.EventError {
					return ev.Err
				}
				if t.menu.View == menu.ViewMain {
					switch {
					case isQuit(ev):
						return nil
					case isKey(ev, termbox.KeyEnter), isRune(ev, 'p', 'P'):
						t.menu.Play()
					}
					continue
				}
				if typeName(t.menu, ev) && t.menu.SubmitName() {
					for t.menu.View == menu.ViewGame {
						if err := t.play(ctx, events); err != nil {
							return err
						}
					}
					t.refreshBoard(ctx)
				}
			}
		}
	})
}

func (t *Tetris) play(ctx context.Context, events <-chan termbox.Event) error {
	g := tetris.New(t.Seed)
	player := t.menu.Player
	ticker := time.NewTicker(config.TetrisDropInterval)
	defer ticker.Stop()

	for !g.Over {
		if err := renderTetris(g.Snapshot(), player, ""); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			t.menu.Back()
			return nil
		case <-ticker.C:
			g.Step()
		case ev := <-events:
			if isKey(ev, termbox.KeyEsc) || isKey(ev, termbox.KeyCtrlC) {
				t.menu.Back()
				return nil
			}
			applyTetrisKey(g, ev)
		}
	}

	if t.Scores != nil && scoreboard.ShouldSave(player, g.Score) {
		t.saved = scoreboard.SaveAsync(t.Scores, scoreboard.Entry{Name: player, Score: g.Score})
	}
	t.menu.GameOver()
	if err := renderTetris(g.Snapshot(), player, "GAME OVER"); err != nil {
		return err
	}

	timer := time.NewTimer(config.GameOverDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			t.menu.Back()
			return nil
		case <-timer.C:
			t.menu.Back()
			return nil
		case ev := <-events:
			switch {
			case isRune(ev, 'r', 'R'):
				t.menu.Restart()
				return nil
			case isKey(ev, termbox.KeyEsc), isKey(ev, termbox.KeyEnter):
				t.menu.Back()
				return nil
			}
		}
	}
}

// applyTetrisKey moves the falling piece for one key press.
func applyTetrisKey(g *tetris.Game, ev termbox.Event) {
	switch {
	case isKey(ev, termbox.KeyArrowLeft):
		g.Move(-1, 0)
	case isKey(ev, termbox.KeyArrowRight):
		g.Move(1, 0)
	case isKey(ev, termbox.KeyArrowUp):
		g.Rotate()
	case isKey(ev, termbox.KeyArrowDown):
		g.Step()
	case isKey(ev, termbox.KeySpace):
		g.HardDrop()
	}
}

func renderTetrisMenu(board []scoreboard.Entry) error {
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}
	renderTitle(left, top, "RETRO GAME HUB - TETRIS")
	tbprint(left, top+1, defaultColor, defaultColor, "[enter] Play   [q] Quit")
	renderScoreTable(left, top+3, board)
	return termbox.Flush()
}

func (t *Tetris) refreshBoard(ctx context.Context) {
	if t.Scores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	board, err := t.Scores.List(ctx)
	if err != nil {
		log.WithError(err).Warn("unable to load tetris scoreboard")
		return
	}
	t.board = board
}
