package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomFreeCellNeverOccupied(t *testing.T) {
	s := newTestGame(t, VariantObstacles)
	s.Cherry = Fruit{Point: Point{X: 3, Y: 3}, Kind: Cherry, Visible: true}

	for i := 0; i < 500; i++ {
		p, err := s.randomFreeCell(visible(s.Apple, s.Cherry))
		require.NoError(t, err)
		require.True(t, p.In(s.Width, s.Height))
		require.False(t, s.Snake.Contains(p))
		require.False(t, containsPoint(s.Obstacles, p))
		require.False(t, p.Equal(s.Apple.Point))
		require.False(t, p.Equal(s.Cherry.Point))
	}
}

func TestRandomFreeCellFullBoard(t *testing.T) {
	s, err := New(Config{Variant: VariantClassic, Width: 5, Height: 5, Seed: 1})
	require.NoError(t, err)

	var body []Point
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			body = append(body, Point{X: x, Y: y})
		}
	}
	s.Snake.Body = body

	_, err = s.randomFreeCell(nil)
	require.Equal(t, ErrNoSpace, err)

	s.Snake.Body = body[:24]
	p, err := s.randomFreeCell(nil)
	require.NoError(t, err)
	require.Equal(t, Point{X: 4, Y: 4}, p)
}

func TestPlaceAppleAvoidsVisibleCherry(t *testing.T) {
	s, err := New(Config{Variant: VariantClassic, Width: 5, Height: 5, Seed: 3})
	require.NoError(t, err)

	// Leave two free cells and put the cherry on one of them.
	var body []Point
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if y == 4 && x >= 3 {
				continue
			}
			body = append(body, Point{X: x, Y: y})
		}
	}
	s.Snake.Body = body
	s.Cherry = Fruit{Point: Point{X: 3, Y: 4}, Kind: Cherry, Visible: true}

	require.NoError(t, s.placeApple())
	require.Equal(t, Point{X: 4, Y: 4}, s.Apple.Point)
}

func TestObstaclesKeepStartLaneClear(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		s, err := New(Config{Variant: VariantObstacles, Width: 8, Height: 8, Seed: seed})
		require.NoError(t, err)
		s.Level = 6
		require.NoError(t, s.placeObstacles())
		require.Len(t, s.Obstacles, 24)
		for _, p := range s.safeLane() {
			require.False(t, containsPoint(s.Obstacles, p))
		}
	}
}

func TestPointWrap(t *testing.T) {
	require.Equal(t, Point{X: 19, Y: 0}, Point{X: -1, Y: 20}.Wrap(20, 20))
	require.Equal(t, Point{X: 0, Y: 5}, Point{X: 20, Y: 5}.Wrap(20, 20))
	require.True(t, Point{X: 0, Y: 0}.In(1, 1))
	require.False(t, Point{X: -1, Y: 0}.In(1, 1))
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		require.Equal(t, d, d.Opposite().Opposite())
		require.Equal(t, Point{}, d.Delta().Add(d.Opposite().Delta()))
	}
}
