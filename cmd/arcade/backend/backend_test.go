package backend

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/stretchr/testify/require"
)

func TestOpenInvalid(t *testing.T) {
	_, err := Open(Options{Backend: "floppy"})
	require.Error(t, err)
}

func TestMemoryBoards(t *testing.T) {
	s, err := Open(Options{Backend: Memory})
	require.NoError(t, err)
	defer s.Close()

	snake, err := s.Board(scoreboard.SnakeBoard)
	require.NoError(t, err)
	tetris, err := s.Board(scoreboard.TetrisBoard)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = snake.Save(ctx, scoreboard.Entry{Name: "ann", Score: 3})
	require.NoError(t, err)

	list, err := tetris.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	raw, err := s.KV().Get(ctx, scoreboard.SnakeBoard)
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"ann","score":3}]`, raw)
}

func TestLocalUsesArgsFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "backend")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "store.json")

	s, err := Open(Options{Backend: Local, Args: file})
	require.NoError(t, err)
	board, err := s.Board(scoreboard.SnakeBoard)
	require.NoError(t, err)
	_, err = board.Save(context.Background(), scoreboard.Entry{Name: "bo", Score: 9})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(file)
	require.NoError(t, err)
}

func TestRemoteNeedsURL(t *testing.T) {
	s, err := Open(Options{Backend: Remote, BoardURL: "ftp://nope"})
	if err != nil {
		// No writable home directory for the preference file.
		t.Skip(err)
	}
	_, err = s.Board(scoreboard.SnakeBoard)
	require.Error(t, err)
}

func TestBoardURL(t *testing.T) {
	require.Equal(t, "http://h/scores/snakeScores", BoardURL("http://h/scores", "snakeScores"))
	require.Equal(t, "http://h/scores/snakeScores", BoardURL("http://h/scores/", "snakeScores"))
	require.Equal(t, "http://h/b/tetris_scores/latest", BoardURL("http://h/b/{board}/latest", "tetris_scores"))
	require.Equal(t, "http://h/a%2Fb", BoardURL("http://h", "a/b"))
}

// documents serves one JSON document per request path.
type documents struct {
	lock sync.Mutex
	docs map[string]string
}

func (d *documents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.lock.Lock()
	defer d.lock.Unlock()
	switch r.Method {
	case http.MethodGet:
		doc, ok := d.docs[r.URL.Path]
		if !ok {
			doc = "[]"
		}
		fmt.Fprintf(w, `{"record":%s}`, doc)
	case http.MethodPut:
		body, _ := ioutil.ReadAll(r.Body)
		d.docs[r.URL.Path] = string(body)
		w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestRemoteBoardsAreSeparateDocuments(t *testing.T) {
	docs := &documents{docs: map[string]string{}}
	server := httptest.NewServer(docs)
	defer server.Close()

	s, err := Open(Options{Backend: Remote, BoardURL: server.URL + "/scores"})
	if err != nil {
		// No writable home directory for the preference file.
		t.Skip(err)
	}
	defer s.Close()

	tetris, err := s.Board(scoreboard.TetrisBoard)
	require.NoError(t, err)
	snake, err := s.Board(scoreboard.SnakeBoard)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = tetris.Save(ctx, scoreboard.Entry{Name: "tet", Score: 900})
	require.NoError(t, err)

	list, err := snake.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = tetris.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []scoreboard.Entry{{Name: "tet", Score: 900}}, list)

	docs.lock.Lock()
	defer docs.lock.Unlock()
	require.Contains(t, docs.docs, "/scores/"+scoreboard.TetrisBoard)
	require.NotContains(t, docs.docs, "/scores/"+scoreboard.SnakeBoard)
}
