// Package tetris is a falling block game on a 10x20 well.
package tetris

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

// Board dimensions and scoring.
const (
	Cols          = 10
	Rows          = 20
	PointsPerLine = 100
)

var spawn = Cell{X: 3, Y: 0}

// Game is the state of a Tetris game. Board cells hold the color of the
// merged block or "" for empty.
type Game struct {
	Board   [Rows][Cols]string
	Current Piece
	Next    Piece
	Pos     Cell
	Score   int
	Lines   int
	Over    bool

	rng *rand.Rand
}

// New starts a game, zero seed picks a time based one.
func New(seed int64) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{rng: rand.New(rand.NewSource(seed)), Pos: spawn}
	g.Current = g.randomPiece()
	g.Next = g.randomPiece()
	return g
}

func (g *Game) randomPiece() Piece {
	return Tetrominoes[g.rng.Intn(len(Tetrominoes))].clone()
}

func (g *Game) collide(x, y int, p Piece) bool {
	for _, c := range p.Shape {
		cx, cy := x+c.X, y+c.Y
		if cx < 0 || cx >= Cols || cy >= Rows {
			return true
		}
		if cy >= 0 && g.Board[cy][cx] != "" {
			return true
		}
	}
	return false
}

// Move shifts the falling piece, reporting whether it moved.
func (g *Game) Move(dx, dy int) bool {
	if g.Over {
		return false
	}
	return g.try(dx, dy, g.Current)
}

func (g *Game) try(dx, dy int, p Piece) bool {
	x, y := g.Pos.X+dx, g.Pos.Y+dy
	if g.collide(x, y, p) {
		return false
	}
	g.Pos = Cell{X: x, Y: y}
	g.Current = p
	return true
}

// Rotate turns the falling piece, kicking one cell left or right when the
// turn collides in place.
func (g *Game) Rotate() bool {
	if g.Over {
		return false
	}
	r := g.Current.Rotated()
	return g.try(0, 0, r) || g.try(-1, 0, r) || g.try(1, 0, r)
}

// Step applies gravity once. A piece that cannot fall is merged, full lines
// are cleared and the next piece spawned.
func (g *Game) Step() {
	if g.Over {
		return
	}
	if !g.try(0, 1, g.Current) {
		g.lock()
	}
}

// HardDrop drops the piece to the bottom and locks it.
func (g *Game) HardDrop() {
	if g.Over {
		return
	}
	for g.try(0, 1, g.Current) {
	}
	g.lock()
}

func (g *Game) lock() {
	g.merge()
	g.clearLines()
	g.Current = g.Next
	g.Next = g.randomPiece()
	g.Pos = spawn
	if g.collide(g.Pos.X, g.Pos.Y, g.Current) {
		g.Over = true
		log.WithFields(log.Fields{
			"score": g.Score,
			"lines": g.Lines,
		}).Info("tetris over")
	}
}

func (g *Game) merge() {
	for _, c := range g.Current.Shape {
		x, y := g.Pos.X+c.X, g.Pos.Y+c.Y
		if y >= 0 {
			g.Board[y][x] = g.Current.Color
		}
	}
}

func (g *Game) clearLines() int {
	cleared := 0
	for y := Rows - 1; y >= 0; y-- {
		if !g.full(y) {
			continue
		}
		for row := y; row > 0; row-- {
			g.Board[row] = g.Board[row-1]
		}
		g.Board[0] = [Cols]string{}
		cleared++
		y++
	}
	if cleared > 0 {
		g.Score += cleared * PointsPerLine
		g.Lines += cleared
	}
	return cleared
}

func (g *Game) full(y int) bool {
	for _, c := range g.Board[y] {
		if c == "" {
			return false
		}
	}
	return true
}

// Blocks returns the board cells of the falling piece.
func (g *Game) Blocks() []Cell {
	cells := make([]Cell, 0, len(g.Current.Shape))
	for _, c := range g.Current.Shape {
		cells = append(cells, Cell{X: g.Pos.X + c.X, Y: g.Pos.Y + c.Y})
	}
	return cells
}

// Snapshot is what a renderer needs: the board with the falling piece drawn
// in, plus the score panel.
type Snapshot struct {
	Board [Rows][Cols]string `json:"board"`
	Next  Piece              `json:"next"`
	Score int                `json:"score"`
	Lines int                `json:"lines"`
	Over  bool               `json:"over"`
}

// Snapshot copies the game for rendering.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Board: g.Board,
		Next:  g.Next.clone(),
		Score: g.Score,
		Lines: g.Lines,
		Over:  g.Over,
	}
	if !g.Over {
		for _, c := range g.Blocks() {
			if c.Y >= 0 && c.Y < Rows && c.X >= 0 && c.X < Cols {
				s.Board[c.Y][c.X] = g.Current.Color
			}
		}
	}
	return s
}
