package game

import "time"

// occupied reports whether p is taken by the snake, an obstacle or one of
// the extra points.
func (s *State) occupied(p Point, extra []Point) bool {
	return s.Snake.Contains(p) || containsPoint(s.Obstacles, p) || containsPoint(extra, p)
}

func (s *State) freeCells(extra []Point) int {
	taken := map[Point]struct{}{}
	for _, p := range s.Snake.Body {
		taken[p] = struct{}{}
	}
	for _, p := range s.Obstacles {
		taken[p] = struct{}{}
	}
	for _, p := range extra {
		if p.In(s.Width, s.Height) {
			taken[p] = struct{}{}
		}
	}
	return s.Width*s.Height - len(taken)
}

// randomFreeCell picks uniform random cells until one is unoccupied. The
// board is checked for a free cell first so a full board cannot spin
// forever.
func (s *State) randomFreeCell(extra []Point) (Point, error) {
	if s.freeCells(extra) <= 0 {
		return Point{}, ErrNoSpace
	}
	for {
		p := Point{X: s.rng.Intn(s.Width), Y: s.rng.Intn(s.Height)}
		if !s.occupied(p, extra) {
			return p, nil
		}
	}
}

func visible(fruit ...Fruit) []Point {
	var points []Point
	for _, f := range fruit {
		if f.Visible {
			points = append(points, f.Point)
		}
	}
	return points
}

func (s *State) placeApple() error {
	p, err := s.randomFreeCell(visible(s.Cherry))
	if err != nil {
		s.Apple.Visible = false
		return err
	}
	kind := Food
	if s.Rules.AlternateRed {
		kind = AppleRed
		if s.greenNext {
			kind = AppleGreen
		}
		s.greenNext = !s.greenNext
	}
	s.Apple = Fruit{Point: p, Kind: kind, Visible: true, Points: s.Rules.ApplePoints}
	return nil
}

func (s *State) placeCherry() error {
	p, err := s.randomFreeCell(visible(s.Apple))
	if err != nil {
		return err
	}
	s.Cherry.Point = p
	s.Cherry.Visible = true
	s.cherryAt = s.Elapsed + s.Rules.CherryVisible
	return nil
}

func (s *State) scheduleCherry() {
	s.Cherry.Visible = false
	if !s.Rules.Cherry {
		return
	}
	delay := s.Rules.CherryRespawnMin
	if spread := s.Rules.CherryRespawnMax - s.Rules.CherryRespawnMin; spread > 0 {
		delay += time.Duration(s.rng.Int63n(int64(spread)))
	}
	s.cherryAt = s.Elapsed + delay
}

// safeLane is the stretch in front of the starting head that obstacles are
// kept out of so a level never begins with an unavoidable crash.
func (s *State) safeLane() []Point {
	head := s.Snake.Head()
	lane := make([]Point, 0, 3)
	for i := 1; i <= 3; i++ {
		lane = append(lane, head.Add(Point{X: i}).Wrap(s.Width, s.Height))
	}
	return lane
}

func (s *State) placeObstacles() error {
	s.Obstacles = nil
	count := s.Level * s.Rules.ObstaclesPerLevel
	keepClear := append(s.safeLane(), visible(s.Apple, s.Cherry)...)
	for i := 0; i < count; i++ {
		p, err := s.randomFreeCell(keepClear)
		if err != nil {
			return err
		}
		s.Obstacles = append(s.Obstacles, p)
	}
	return nil
}
