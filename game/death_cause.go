package game

const (
	// DeathCauseSelfCollision is when the head runs into the snake's own body
	DeathCauseSelfCollision = "self-collision"
	// DeathCauseObstacleCollision is when the head runs into an obstacle
	DeathCauseObstacleCollision = "obstacle-collision"
	// DeathCauseWallCollision is when a snake runs off the board
	DeathCauseWallCollision = "wall-collision"
)

// Death records when and why the game ended.
type Death struct {
	Turn  int64  `json:"turn"`
	Cause string `json:"cause"`
}
