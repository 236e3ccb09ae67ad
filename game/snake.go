package game

// Snake is an ordered list of cells, head first.
type Snake struct {
	Body []Point `json:"body"`
}

// Head returns the first point in the body
func (s *Snake) Head() Point {
	if len(s.Body) == 0 {
		return Point{}
	}
	return s.Body[0]
}

// Tail returns the last point in the body
func (s *Snake) Tail() Point {
	if len(s.Body) == 0 {
		return Point{}
	}
	return s.Body[len(s.Body)-1]
}

// Len is the number of segments.
func (s *Snake) Len() int { return len(s.Body) }

// Contains reports whether any segment occupies p.
func (s *Snake) Contains(p Point) bool {
	return containsPoint(s.Body, p)
}

// Push prepends a new head. The tail is removed separately with Shrink once
// the tick knows whether the snake ate.
func (s *Snake) Push(head Point) {
	s.Body = append([]Point{head}, s.Body...)
}

// Shrink drops the last segment.
func (s *Snake) Shrink() {
	if len(s.Body) == 0 {
		return
	}
	s.Body = s.Body[:len(s.Body)-1]
}

func (s *Snake) clone() Snake {
	body := make([]Point, len(s.Body))
	copy(body, s.Body)
	return Snake{Body: body}
}

// newSnake lays out length segments trailing to the left of head.
func newSnake(head Point, length int) Snake {
	body := make([]Point, 0, length)
	for i := 0; i < length; i++ {
		body = append(body, Point{X: head.X - i, Y: head.Y})
	}
	return Snake{Body: body}
}
