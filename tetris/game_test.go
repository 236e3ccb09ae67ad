package tetris

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var iPiece = Tetrominoes[0]

func TestNewSpawnsAtTop(t *testing.T) {
	g := New(1)
	require.Equal(t, Cell{X: 3, Y: 0}, g.Pos)
	require.Len(t, g.Current.Shape, 4)
	require.Len(t, g.Next.Shape, 4)
	require.False(t, g.Over)
}

func TestMoveStopsAtWalls(t *testing.T) {
	g := New(1)
	g.Current = iPiece.clone()

	moved := 0
	for g.Move(-1, 0) {
		moved++
	}
	require.Equal(t, 3, moved)
	require.Equal(t, 0, g.Pos.X)

	moved = 0
	for g.Move(1, 0) {
		moved++
	}
	require.Equal(t, 6, moved)
}

func TestRotateKicksOffWall(t *testing.T) {
	g := New(1)
	g.Current = Tetrominoes[5].Rotated()
	g.Pos = Cell{X: 1, Y: 10}

	// Turning again reaches two cells left of the origin, off the wall
	// unless kicked one to the right.
	require.True(t, g.Rotate())
	require.Equal(t, 2, g.Pos.X)
	for _, c := range g.Blocks() {
		require.True(t, c.X >= 0 && c.X < Cols)
	}
}

func TestHardDropLocksAndSpawnsNext(t *testing.T) {
	g := New(1)
	g.Current = iPiece.clone()
	next := g.Next

	g.HardDrop()
	require.Equal(t, "#00eaff", g.Board[Rows-1][3])
	require.Equal(t, "#00eaff", g.Board[Rows-1][6])
	require.Equal(t, next, g.Current)
	require.Equal(t, spawn, g.Pos)
}

func TestClearLinesScores(t *testing.T) {
	g := New(1)
	for y := Rows - 2; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			g.Board[y][x] = "#fff"
		}
	}
	g.Board[Rows-3][0] = "#abc"

	require.Equal(t, 2, g.clearLines())
	require.Equal(t, 200, g.Score)
	require.Equal(t, 2, g.Lines)
	require.Equal(t, "#abc", g.Board[Rows-1][0])
	require.Equal(t, "", g.Board[Rows-2][0])
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	g := New(1)
	for x := 0; x < Cols-1; x++ {
		g.Board[1][x] = "#fff"
		g.Board[0][x] = "#fff"
	}
	g.Step()
	require.True(t, g.Over)

	score := g.Score
	g.Step()
	g.HardDrop()
	require.False(t, g.Move(1, 0))
	require.Equal(t, score, g.Score)
}

func TestSnapshotDrawsFallingPiece(t *testing.T) {
	g := New(1)
	g.Current = iPiece.clone()
	snap := g.Snapshot()
	for x := 3; x <= 6; x++ {
		require.Equal(t, "#00eaff", snap.Board[1][x])
	}
	require.Equal(t, "", g.Board[1][3], "game board untouched")

	snap.Next.Shape[0] = Cell{X: 9, Y: 9}
	require.NotEqual(t, Cell{X: 9, Y: 9}, g.Next.Shape[0])
}
