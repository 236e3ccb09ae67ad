package filestore

import (
	"context"
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/retrogamehub/arcade/kvstore"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T) string {
	dir, err := ioutil.TempDir("", "arcade-kv")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return path.Join(dir, "nested", "storage.json")
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	file := tempFile(t)

	s, err := New(file)
	require.NoError(t, err)

	_, err = s.Get(ctx, "snakeScores")
	require.Equal(t, kvstore.ErrNotFound, err)

	require.NoError(t, s.Set(ctx, "snakeScores", `[{"name":"ada","score":3}]`))
	require.NoError(t, s.Set(ctx, "snakeColor", "#3ca6a6"))

	reopened, err := New(file)
	require.NoError(t, err)
	v, err := reopened.Get(ctx, "snakeScores")
	require.NoError(t, err)
	require.Equal(t, `[{"name":"ada","score":3}]`, v)
	v, err = reopened.Get(ctx, "snakeColor")
	require.NoError(t, err)
	require.Equal(t, "#3ca6a6", v)
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	file := tempFile(t)
	require.NoError(t, os.MkdirAll(path.Dir(file), 0775))
	require.NoError(t, ioutil.WriteFile(file, []byte("{not json"), 0644))

	s, err := New(file)
	require.NoError(t, err)
	_, err = s.Get(ctx, "anything")
	require.Equal(t, kvstore.ErrNotFound, err)

	require.NoError(t, s.Set(ctx, "anything", "ok"))
}
