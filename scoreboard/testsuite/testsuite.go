// Package testsuite holds the behaviour every scoreboard backend must share.
package testsuite

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreEmpty(t *testing.T, s scoreboard.Store) {
	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func testStoreSave(t *testing.T, s scoreboard.Store) {
	ctx := context.Background()

	list, err := s.Save(ctx, scoreboard.Entry{Name: "ada", Score: 3})
	require.NoError(t, err)
	require.Equal(t, []scoreboard.Entry{{Name: "ada", Score: 3}}, list)

	// Ties rank below the existing score.
	_, err = s.Save(ctx, scoreboard.Entry{Name: "bob", Score: 3})
	require.NoError(t, err)
	list, err = s.Save(ctx, scoreboard.Entry{Name: "cy", Score: 9})
	require.NoError(t, err)
	require.Equal(t, []scoreboard.Entry{
		{Name: "cy", Score: 9},
		{Name: "ada", Score: 3},
		{Name: "bob", Score: 3},
	}, list)

	fetched, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, list, fetched)

	// Invalid entries are refused and leave the board alone.
	_, err = s.Save(ctx, scoreboard.Entry{Name: " ", Score: 50})
	require.Equal(t, scoreboard.ErrInvalidEntry, err)
	fetched, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, fetched, 3)
}

func testStoreTopTen(t *testing.T, s scoreboard.Store) {
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		list, err := s.Save(ctx, scoreboard.Entry{Name: fmt.Sprintf("p%d", i), Score: i * 10})
		require.NoError(t, err)
		require.True(t, len(list) <= scoreboard.MaxEntries)
		requireSorted(t, list)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, scoreboard.MaxEntries)
	require.Equal(t, scoreboard.Entry{Name: "p15", Score: 150}, list[0])
	require.Equal(t, scoreboard.Entry{Name: "p6", Score: 60}, list[9])

	// Too low to make the board.
	list, err = s.Save(ctx, scoreboard.Entry{Name: "late", Score: 1})
	require.NoError(t, err)
	require.Equal(t, 60, list[9].Score)
}

func testStoreReplace(t *testing.T, s scoreboard.Store) {
	ctx := context.Background()

	list, err := s.Replace(ctx, []scoreboard.Entry{
		{Name: "low", Score: 1},
		{Name: "", Score: 100},
		{Name: "high", Score: 30},
		{Name: "neg", Score: -4},
	})
	require.NoError(t, err)
	require.Equal(t, []scoreboard.Entry{{Name: "high", Score: 30}, {Name: "low", Score: 1}}, list)

	fetched, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, list, fetched)

	list, err = s.Replace(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, list)
}

func testStoreConcurrentSaves(t *testing.T, s scoreboard.Store) {
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(scoreboard.MaxEntries)
	for i := 0; i < scoreboard.MaxEntries; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := s.Save(ctx, scoreboard.Entry{Name: fmt.Sprintf("w%d", i), Score: i + 1})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, scoreboard.MaxEntries)
	requireSorted(t, list)
}

func requireSorted(t *testing.T, list []scoreboard.Entry) {
	for i := 1; i < len(list); i++ {
		require.True(t, list[i-1].Score >= list[i].Score, "board out of order at %d", i)
	}
}

// Suite will execute the store testsuite. pretest must leave the backend
// with an empty board.
func Suite(t *testing.T, s scoreboard.Store, pretest func()) {
	s = scoreboard.InstrumentStore(s)
	t.Run("Empty", func(t *testing.T) { pretest(); testStoreEmpty(t, s) })
	t.Run("Save", func(t *testing.T) { pretest(); testStoreSave(t, s) })
	t.Run("TopTen", func(t *testing.T) { pretest(); testStoreTopTen(t, s) })
	t.Run("Replace", func(t *testing.T) { pretest(); testStoreReplace(t, s) })
	t.Run("ConcurrentSaves", func(t *testing.T) { pretest(); testStoreConcurrentSaves(t, s) })
}
