// Package loop drives a snake game at a fixed interval: it applies buffered
// input, advances the simulation, renders and records each frame, and stops
// once the game is over.
package loop

import (
	"context"
	"time"

	"github.com/retrogamehub/arcade/game"
	"github.com/retrogamehub/arcade/scoreboard"
	log "github.com/sirupsen/logrus"
)

// Event is something a frontend may want to play a sound for.
type Event string

// Events raised by a tick.
const (
	EventEat      Event = "eat"
	EventTurn     Event = "turn"
	EventLevelUp  Event = "level-up"
	EventGameOver Event = "game-over"
	EventWin      Event = "win"
)

// EventsFor lists the events a tick produced.
func EventsFor(res game.TickResult) []Event {
	var events []Event
	if res.Turned {
		events = append(events, EventTurn)
	}
	if res.Grew() {
		events = append(events, EventEat)
	}
	if res.LevelUp {
		events = append(events, EventLevelUp)
	}
	if res.Died {
		events = append(events, EventGameOver)
	}
	if res.Won {
		events = append(events, EventWin)
	}
	return events
}

// Session runs a single game. Render, Record and Notify are optional.
type Session struct {
	State *game.State
	// Interval between ticks, defaults to the variant's tick interval.
	Interval time.Duration
	Render   func(game.Frame)
	Record   func(game.Frame) error
	Notify   func(Event)
	// NewTicker is replaced in tests.
	NewTicker func(time.Duration) (<-chan time.Time, func())
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Run plays the game until it ends, ctx is cancelled or input is closed.
// Directions read from input are buffered and committed on the next tick.
// Rendering and recording never overlap a tick.
func (s *Session) Run(ctx context.Context, input <-chan game.Direction) (*game.State, error) {
	interval := s.Interval
	if interval <= 0 {
		interval = s.State.Rules.TickInterval
	}
	newTicker := s.NewTicker
	if newTicker == nil {
		newTicker = realTicker
	}

	logger := log.WithFields(log.Fields{
		"game":    s.State.ID,
		"variant": s.State.Rules.Variant,
	})
	logger.Info("game started")

	s.emit(s.State.Frame(), logger)
	if s.State.Status.Done() {
		return s.State, nil
	}

	ticks, stop := newTicker(interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			logger.WithField("turn", s.State.Turn).Info("game abandoned")
			return s.State, ctx.Err()
		case d, ok := <-input:
			if !ok {
				logger.WithField("turn", s.State.Turn).Info("input closed, game abandoned")
				return s.State, nil
			}
			s.State.Steer(d)
		case <-ticks:
			res := s.State.Tick(interval)
			s.emit(s.State.Frame(), logger)
			if s.Notify != nil {
				for _, e := range EventsFor(res) {
					s.Notify(e)
				}
			}
			if s.State.Status.Done() {
				logger.WithFields(log.Fields{
					"turn":   s.State.Turn,
					"score":  s.State.Score,
					"status": s.State.Status,
				}).Info("game ended")
				return s.State, nil
			}
		}
	}
}

func (s *Session) emit(f game.Frame, logger *log.Entry) {
	if s.Render != nil {
		s.Render(f)
	}
	if s.Record != nil {
		if err := s.Record(f); err != nil {
			logger.WithError(err).Warn("recording failed, no more frames will be written")
			s.Record = nil
		}
	}
}

// Finish saves the final score in the background when the player earned a
// place. The returned channel is closed once any save has finished.
func Finish(store scoreboard.Store, player string, state *game.State) <-chan struct{} {
	if store == nil || !scoreboard.ShouldSave(player, state.Score) {
		done := make(chan struct{})
		close(done)
		return done
	}
	return scoreboard.SaveAsync(store, scoreboard.Entry{Name: player, Score: state.Score})
}
