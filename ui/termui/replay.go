package termui

import (
	"fmt"
	"time"

	termbox "github.com/nsf/termbox-go"
	"github.com/retrogamehub/arcade/game"
	"github.com/retrogamehub/arcade/prefs"
	"github.com/retrogamehub/arcade/recording"
)

const replayInterval = 200 * time.Millisecond

func moveFrameForwards(frameIndex int, frames []game.Frame) (int, game.Frame, bool) {
	frameIndex++
	if frameIndex >= len(frames) {
		return len(frames) - 1, frames[len(frames)-1], true
	}
	return frameIndex, frames[frameIndex], false
}

func moveFrameBackwards(frameIndex int, frames []game.Frame) (int, game.Frame) {
	frameIndex--
	if frameIndex <= 0 {
		frameIndex = 0
	}
	return frameIndex, frames[frameIndex]
}

// Replay plays back a recorded game. Space pauses, the arrow keys step one
// frame and esc leaves.
func Replay(file string, colors prefs.Colors, theme prefs.Theme) error {
	archive, err := recording.Read(file)
	if err != nil {
		return err
	}
	if len(archive.Frames) == 0 {
		return fmt.Errorf("recording %s has no frames", file)
	}

	info := archive.Info
	sc := schemeFor(info.Variant, colors, theme)
	screen := gameScreen{
		title: fmt.Sprintf("REPLAY %s (%s)", info.ID, info.Variant),
		help:  "[space] pause   [left/right] step   [esc] quit",
	}
	draw := func(i int, f game.Frame) error {
		screen.status = fmt.Sprintf("%s   Frame: %d/%d", statusLine(f, info.Variant, info.Player), i+1, len(archive.Frames))
		screen.banner = bannerFor(f)
		return renderSnake(f, sc, screen)
	}

	return withScreen(func(events <-chan termbox.Event) error {
		frames := archive.Frames
		frameIndex, current := 0, frames[0]
		if err := draw(frameIndex, current); err != nil {
			return err
		}

		cycle := time.NewTicker(replayInterval)
		defer cycle.Stop()
		paused, done := false, false

		for !done {
			select {
			case ev := <-events:
				if ev.Type == termbox.EventError {
					return ev.Err
				}
				if ev.Type != termbox.EventKey {
					continue
				}
				switch ev.Key {
				case termbox.KeyEsc, termbox.KeyCtrlC:
					return nil
				case termbox.KeySpace:
					paused = !paused
				case termbox.KeyArrowLeft:
					paused = true
					frameIndex, current = moveFrameBackwards(frameIndex, frames)
				case termbox.KeyArrowRight:
					paused = true
					frameIndex, current, _ = moveFrameForwards(frameIndex, frames)
				default:
					continue
				}
				if err := draw(frameIndex, current); err != nil {
					return err
				}
			case <-cycle.C:
				if paused {
					continue
				}
				frameIndex, current, done = moveFrameForwards(frameIndex, frames)
				if err := draw(frameIndex, current); err != nil {
					return err
				}
			}
		}

		tbprint(0, 0, defaultColor, defaultColor, "Press any key to exit...")
		if err := termbox.Flush(); err != nil {
			return err
		}
		<-events
		return nil
	})
}
