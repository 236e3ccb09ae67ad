package game

// checkForDeath looks at where the head is about to move and returns the
// cause of death, or "" when the move is safe. The whole current body,
// tail included, counts as solid.
func (s *State) checkForDeath(head Point) string {
	if deathByOutOfBounds(head, s.Width, s.Height) {
		return DeathCauseWallCollision
	}
	if deathByBodyCollision(head, s.Snake.Body) {
		return DeathCauseSelfCollision
	}
	if deathByObstacle(head, s.Obstacles) {
		return DeathCauseObstacleCollision
	}
	return ""
}

func deathByOutOfBounds(head Point, width, height int) bool {
	return !head.In(width, height)
}

func deathByBodyCollision(head Point, body []Point) bool {
	return containsPoint(body, head)
}

func deathByObstacle(head Point, obstacles []Point) bool {
	return containsPoint(obstacles, head)
}
