package game

import "time"

// Frame is an immutable snapshot of a game, used for rendering and
// recording.
type Frame struct {
	Turn      int64         `json:"turn"`
	Elapsed   time.Duration `json:"elapsed"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Snake     []Point       `json:"snake"`
	Direction Direction     `json:"direction"`
	Apple     Fruit         `json:"apple"`
	Cherry    Fruit         `json:"cherry"`
	Obstacles []Point       `json:"obstacles,omitempty"`
	Score     int           `json:"score"`
	Level     int           `json:"level"`
	Status    Status        `json:"status"`
	Death     *Death        `json:"death,omitempty"`
}

// Frame snapshots the state.
func (s *State) Frame() Frame {
	var obstacles []Point
	if len(s.Obstacles) > 0 {
		obstacles = make([]Point, len(s.Obstacles))
		copy(obstacles, s.Obstacles)
	}
	var death *Death
	if s.Death != nil {
		d := *s.Death
		death = &d
	}
	return Frame{
		Turn:      s.Turn,
		Elapsed:   s.Elapsed,
		Width:     s.Width,
		Height:    s.Height,
		Snake:     s.Snake.clone().Body,
		Direction: s.Direction,
		Apple:     s.Apple,
		Cherry:    s.Cherry,
		Obstacles: obstacles,
		Score:     s.Score,
		Level:     s.Level,
		Status:    s.Status,
		Death:     death,
	}
}

// Head returns the snake's head in the frame.
func (f Frame) Head() (Point, bool) {
	if len(f.Snake) == 0 {
		return Point{}, false
	}
	return f.Snake[0], true
}
