package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/retrogamehub/arcade/config"
	uuid "github.com/satori/go.uuid"
)

// MinSize is the smallest board edge a game can be created with.
const MinSize = 5

// ErrNoSpace is returned when there is no free cell left to spawn on.
var ErrNoSpace = errors.New("game: no unoccupied cell left")

// Config describes a game to create.
type Config struct {
	Variant Variant
	Width   int
	Height  int
	// Seed makes the game reproducible, zero picks a time based seed.
	Seed int64
}

// State is a running snake game. It is not safe for concurrent use, the
// loop driving it owns it.
type State struct {
	ID     string
	Rules  Rules
	Width  int
	Height int
	Seed   int64

	Turn    int64
	Elapsed time.Duration

	Snake         Snake
	Direction     Direction
	NextDirection Direction

	Apple     Fruit
	Cherry    Fruit
	Obstacles []Point

	Score  int
	Level  int
	Status Status
	Death  *Death

	// cherryAt is the game time at which the cherry next appears while it
	// is hidden, or disappears while it is visible.
	cherryAt  time.Duration
	greenNext bool
	rng       *rand.Rand
}

// New creates the initial state of a game.
func New(cfg Config) (*State, error) {
	rules, err := RulesFor(cfg.Variant)
	if err != nil {
		return nil, err
	}

	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = config.GridSize
	}
	if height == 0 {
		height = config.GridSize
	}
	if width < MinSize || height < MinSize {
		return nil, fmt.Errorf("game: board %dx%d is smaller than %dx%d", width, height, MinSize, MinSize)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &State{
		ID:     uuid.NewV4().String(),
		Rules:  rules,
		Width:  width,
		Height: height,
		Seed:   seed,
		Level:  1,
		Status: StatusRunning,
		Cherry: Fruit{Kind: Cherry, Points: rules.CherryPoints},
		rng:    rand.New(rand.NewSource(seed)),
	}
	s.resetSnake()
	if err := s.placeObstacles(); err != nil {
		return nil, err
	}
	if err := s.placeApple(); err != nil {
		return nil, err
	}
	s.scheduleCherry()
	return s, nil
}

// Steer buffers a direction change to be committed on the next tick. A
// change that would reverse the snake into itself is rejected.
func (s *State) Steer(d Direction) bool {
	if s.Status.Done() || !d.Valid() {
		return false
	}
	if d == s.Direction.Opposite() {
		return false
	}
	s.NextDirection = d
	return true
}

func (s *State) start() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

func (s *State) resetSnake() {
	s.Snake = newSnake(s.start(), s.Rules.StartLength)
	s.Direction = Right
	s.NextDirection = Right
}
