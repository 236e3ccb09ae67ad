package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/retrogamehub/arcade/api"
	"github.com/retrogamehub/arcade/contact"
	"github.com/retrogamehub/arcade/game"
	"github.com/retrogamehub/arcade/kvstore"
	"github.com/retrogamehub/arcade/loop"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/retrogamehub/arcade/scoreboard/remote"
	"github.com/retrogamehub/arcade/scoreboard/testsuite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accessKey = "e2e-key"

type outbox struct {
	lock sync.Mutex
	sent []contact.Message
}

func (o *outbox) Send(ctx context.Context, m contact.Message) error {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.sent = append(o.sent, m)
	return nil
}

func startServer(t *testing.T) (*client, *outbox, func()) {
	kv := kvstore.InMemStore()
	box := &outbox{}
	srv := api.New(api.Options{
		Addr:   ":0",
		APIKey: accessKey,
		Boards: func(board string) (scoreboard.Store, error) {
			return scoreboard.LocalStore(kv, board), nil
		},
		Sender: box,
		MailTo: "owner@example.com",
	})
	ts := httptest.NewServer(srv.Handler())
	c := &client{
		apiURL: ts.URL,
		apiKey: accessKey,
		client: &http.Client{Timeout: 5 * time.Second},
	}
	return c, box, ts.Close
}

func remoteBoard(t *testing.T, c *client, board, key string) *remote.Store {
	st, err := remote.New(c.boardURL(board), key, 5*time.Second)
	require.NoError(t, err)
	return st
}

func TestRemoteBackendAgainstServer(t *testing.T) {
	c, _, stop := startServer(t)
	defer stop()

	st := remoteBoard(t, c, scoreboard.SnakeBoard, accessKey)
	testsuite.Suite(t, st, func() {
		_, err := st.Replace(context.Background(), nil)
		require.NoError(t, err)
	})
}

func TestRemoteBackendWrongKey(t *testing.T) {
	c, _, stop := startServer(t)
	defer stop()

	status, err := c.saveScore(scoreboard.SnakeBoard, scoreboard.Entry{Name: "ann", Score: 9})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, status)

	st := remoteBoard(t, c, scoreboard.SnakeBoard, "wrong")
	_, err = st.Save(context.Background(), scoreboard.Entry{Name: "bo", Score: 99})
	require.Error(t, err)

	list, err := c.scores(scoreboard.SnakeBoard)
	require.NoError(t, err)
	require.Equal(t, []scoreboard.Entry{{Name: "ann", Score: 9}}, list)
}

func TestFinishedGameReachesServer(t *testing.T) {
	c, _, stop := startServer(t)
	defer stop()

	state, err := game.New(game.Config{Variant: game.VariantWalled, Width: 10, Height: 10, Seed: 1})
	require.NoError(t, err)
	head := state.Snake.Head()
	state.Apple.Point = game.Point{X: head.X + 1, Y: head.Y}

	session := &loop.Session{State: state, Interval: time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	final, err := session.Run(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, game.StatusOver, final.Status)
	require.True(t, final.Score >= 10)

	board := remoteBoard(t, c, scoreboard.SnakeBoard, accessKey)
	<-loop.Finish(board, "e2e", final)

	list, err := c.scores(scoreboard.SnakeBoard)
	require.NoError(t, err)
	require.Equal(t, []scoreboard.Entry{{Name: "e2e", Score: final.Score}}, list)
}

func TestContactRelay(t *testing.T) {
	c, box, stop := startServer(t)
	defer stop()

	status, res, err := c.sendContact("<b>Ada</b>", "ada@example.com", "hello <i>there</i>")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Success)
	assert.Equal(t, contact.MsgSent, res.Message)

	require.Len(t, box.sent, 1)
	m := box.sent[0]
	assert.Equal(t, "owner@example.com", m.To)
	assert.Equal(t, "ada@example.com", m.ReplyTo)
	assert.Equal(t, "Name: Ada\nEmail: ada@example.com\n\nMessage:\nhello there", m.Body)
}
