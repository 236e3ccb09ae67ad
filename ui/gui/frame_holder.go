package gui

import (
	"sync"

	"github.com/retrogamehub/arcade/game"
)

// frameHolder passes frames from the game loop goroutine to ebiten's
// update/draw goroutine. Only the latest frame is kept.
type frameHolder struct {
	sync.RWMutex
	frame  game.Frame
	ok     bool
	result *game.State
	done   bool
}

func (fh *frameHolder) set(frame game.Frame) {
	fh.Lock()
	defer fh.Unlock()

	fh.frame = frame
	fh.ok = true
}

func (fh *frameHolder) get() (game.Frame, bool) {
	fh.RLock()
	defer fh.RUnlock()

	return fh.frame, fh.ok
}

// finish records the final state of the game.
func (fh *frameHolder) finish(state *game.State) {
	fh.Lock()
	defer fh.Unlock()

	fh.result = state
	fh.done = true
}

// finished returns the final state once the game has ended.
func (fh *frameHolder) finished() (*game.State, bool) {
	fh.RLock()
	defer fh.RUnlock()

	return fh.result, fh.done
}
