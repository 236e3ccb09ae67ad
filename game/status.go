package game

// Status is the lifecycle of a game.
type Status string

const (
	// StatusRunning is a game still accepting ticks.
	StatusRunning Status = "running"
	// StatusOver is a game that ended with the snake dying.
	StatusOver Status = "over"
	// StatusWon is a game that reached the winning score.
	StatusWon Status = "won"
)

// Done reports whether the game has ended.
func (s Status) Done() bool { return s != StatusRunning }
