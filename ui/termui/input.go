package termui

import (
	termbox "github.com/nsf/termbox-go"
	"github.com/retrogamehub/arcade/game"
)

// directionFor maps arrow keys and WASD to a direction.
func directionFor(ev termbox.Event) (game.Direction, bool) {
	if ev.Type != termbox.EventKey {
		return "", false
	}
	switch ev.Key {
	case termbox.KeyArrowUp:
		return game.Up, true
	case termbox.KeyArrowDown:
		return game.Down, true
	case termbox.KeyArrowLeft:
		return game.Left, true
	case termbox.KeyArrowRight:
		return game.Right, true
	}
	switch ev.Ch {
	case 'w', 'W':
		return game.Up, true
	case 's', 'S':
		return game.Down, true
	case 'a', 'A':
		return game.Left, true
	case 'd', 'D':
		return game.Right, true
	}
	return "", false
}

func isQuit(ev termbox.Event) bool {
	return ev.Type == termbox.EventKey &&
		(ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' || ev.Ch == 'Q')
}

func isKey(ev termbox.Event, key termbox.Key) bool {
	return ev.Type == termbox.EventKey && ev.Key == key
}

func isRune(ev termbox.Event, chars ...rune) bool {
	if ev.Type != termbox.EventKey {
		return false
	}
	for _, c := range chars {
		if ev.Ch == c {
			return true
		}
	}
	return false
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}

// withScreen runs f on an initialized 256 color termbox screen.
func withScreen(f func(events <-chan termbox.Event) error) error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	termbox.SetOutputMode(termbox.Output256)
	return f(setupEventQueue())
}
