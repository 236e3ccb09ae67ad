package game

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TickResult reports what happened during a tick.
type TickResult struct {
	Turn      int64
	Turned    bool
	Ate       bool
	AteCherry bool
	LevelUp   bool
	Died      bool
	Won       bool
}

// Grew reports whether the snake kept its tail this tick.
func (r TickResult) Grew() bool { return r.Ate || r.AteCherry }

// Tick runs the game one step of dt game time and updates the state. Ticks
// on a finished game are no-ops.
func (s *State) Tick(dt time.Duration) TickResult {
	if s.Status.Done() {
		return TickResult{Turn: s.Turn}
	}
	s.Turn++
	s.Elapsed += dt
	res := TickResult{Turn: s.Turn}

	// 1. cherry appears or expires on its own clock
	s.updateCherry()

	// 2. commit the buffered direction and find the next head
	res.Turned = s.NextDirection != s.Direction
	s.Direction = s.NextDirection
	head := s.Snake.Head().Add(s.Direction.Delta())
	if s.Rules.Wrap {
		head = head.Wrap(s.Width, s.Height)
	}

	// 3. check for death
	if cause := s.checkForDeath(head); cause != "" {
		s.die(cause)
		res.Died = true
		return res
	}
	s.Snake.Push(head)

	// 4. handle fruit, shrink snakes that didn't eat
	if s.Apple.At(head) {
		s.Score += s.Apple.Points
		res.Ate = true
		log.WithFields(log.Fields{
			"game":  s.ID,
			"turn":  s.Turn,
			"fruit": s.Apple.Kind,
			"score": s.Score,
		}).Debug("snake ate")
		if err := s.placeApple(); err != nil {
			// Nothing left to spawn on, the board is full.
			s.Status = StatusWon
			res.Won = true
			return res
		}
	}
	if s.Cherry.At(head) {
		s.Score += s.Cherry.Points
		res.AteCherry = true
		log.WithFields(log.Fields{
			"game":  s.ID,
			"turn":  s.Turn,
			"fruit": s.Cherry.Kind,
			"score": s.Score,
		}).Debug("snake ate")
		s.scheduleCherry()
	}
	if !res.Grew() {
		s.Snake.Shrink()
	}

	// 5. win and level thresholds
	if s.Rules.WinScore > 0 && s.Score >= s.Rules.WinScore {
		s.Status = StatusWon
		res.Won = true
		return res
	}
	if s.Rules.LevelThreshold > 0 && s.Score >= s.Level*s.Rules.LevelThreshold {
		for s.Score >= s.Level*s.Rules.LevelThreshold {
			s.Level++
		}
		res.LevelUp = true
		if err := s.levelUp(); err != nil {
			s.Status = StatusWon
			res.Won = true
		}
	}
	return res
}

func (s *State) updateCherry() {
	if !s.Rules.Cherry || s.Elapsed < s.cherryAt {
		return
	}
	if s.Cherry.Visible {
		s.scheduleCherry()
		return
	}
	if err := s.placeCherry(); err != nil {
		s.scheduleCherry()
	}
}

// levelUp puts the snake back at the start and lays out the next level's
// obstacles and fruit.
func (s *State) levelUp() error {
	log.WithFields(log.Fields{
		"game":  s.ID,
		"turn":  s.Turn,
		"level": s.Level,
	}).Info("level up")
	s.resetSnake()
	s.Apple.Visible = false
	s.scheduleCherry()
	if err := s.placeObstacles(); err != nil {
		return err
	}
	return s.placeApple()
}

func (s *State) die(cause string) {
	s.Status = StatusOver
	s.Death = &Death{Turn: s.Turn, Cause: cause}
	log.WithFields(log.Fields{
		"game":  s.ID,
		"turn":  s.Turn,
		"cause": cause,
		"score": s.Score,
	}).Info("game over")
}
