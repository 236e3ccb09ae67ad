package gui

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/retrogamehub/arcade/loop"
	"github.com/retrogamehub/arcade/tone"
	log "github.com/sirupsen/logrus"
)

// soundFor picks the tone played for a loop event.
func soundFor(e loop.Event) (tone.Sound, bool) {
	switch e {
	case loop.EventEat:
		return tone.Eat, true
	case loop.EventTurn:
		return tone.Turn, true
	case loop.EventGameOver:
		return tone.GameOver, true
	case loop.EventWin, loop.EventLevelUp:
		return tone.Win, true
	}
	return nil, false
}

// sounds plays pre-rendered tones. Events are queued from the game loop
// goroutine and played from Update.
type sounds struct {
	players map[loop.Event]*audio.Player
	queue   chan loop.Event
}

func newSounds(ctx *audio.Context) *sounds {
	s := &sounds{
		players: map[loop.Event]*audio.Player{},
		queue:   make(chan loop.Event, 16),
	}
	for _, e := range []loop.Event{loop.EventEat, loop.EventTurn, loop.EventGameOver, loop.EventWin, loop.EventLevelUp} {
		snd, _ := soundFor(e)
		s.players[e] = ctx.NewPlayerFromBytes(snd.Render(ctx.SampleRate()))
	}
	return s
}

// notify queues e, dropping it when the queue is full.
func (s *sounds) notify(e loop.Event) {
	select {
	case s.queue <- e:
	default:
	}
}

func (s *sounds) play() {
	for {
		select {
		case e := <-s.queue:
			p, ok := s.players[e]
			if !ok {
				continue
			}
			if err := p.Rewind(); err != nil {
				log.WithError(err).WithField("sound", e).Warn("unable to rewind sound")
				continue
			}
			p.Play()
		default:
			return
		}
	}
}
