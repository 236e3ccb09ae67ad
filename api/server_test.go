package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/retrogamehub/arcade/contact"
	"github.com/retrogamehub/arcade/kvstore"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type mockSender struct {
	sent []contact.Message
}

func (m *mockSender) Send(ctx context.Context, msg contact.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func createAPIServer(apiKey string) (*Server, *mockSender) {
	kv := kvstore.InMemStore()
	sender := &mockSender{}
	s := New(Options{
		Addr:   ":0",
		APIKey: apiKey,
		Boards: func(board string) (scoreboard.Store, error) {
			return scoreboard.LocalStore(kv, board), nil
		},
		Sender: sender,
		MailTo: "owner@example.com",
	})
	return s, sender
}

func do(t *testing.T, s *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeDocument(t *testing.T, rr *httptest.ResponseRecorder) []scoreboard.Entry {
	var doc Document
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	return doc.Record
}

func TestContact(t *testing.T) {
	s, sender := createAPIServer("")

	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"hi"}}
	rr := do(t, s, http.MethodPost, "/contact", form.Encode(),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, sender.sent, 1)
	require.Equal(t, "owner@example.com", sender.sent[0].To)

	for _, method := range []string{http.MethodGet, http.MethodOptions, "PROPFIND"} {
		rr = do(t, s, method, "/contact", "", nil)
		require.Equal(t, http.StatusMethodNotAllowed, rr.Code, method)
		require.JSONEq(t, `{"success":false,"message":"Method not allowed."}`, rr.Body.String(), method)
	}

	rr = do(t, s, http.MethodHead, "/contact", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	require.Len(t, sender.sent, 1)
}

func TestContactRateLimited(t *testing.T) {
	s, sender := createAPIServer("")
	s.limiter = rate.NewLimiter(0, 1)

	rr := do(t, s, http.MethodPost, "/contact", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(t, s, http.MethodPost, "/contact", "", nil)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	require.Len(t, sender.sent, 1)

	// Only sends count against the limit.
	rr = do(t, s, http.MethodGet, "/contact", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestScores(t *testing.T) {
	s, _ := createAPIServer("")

	rr := do(t, s, http.MethodGet, "/scores/snakeScores", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"record":[]}`, rr.Body.String())

	rr = do(t, s, http.MethodPost, "/scores/snakeScores", `{"name":"ada","score":12}`, nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = do(t, s, http.MethodPost, "/scores/snakeScores", `{"name":"bob","score":30}`, nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, []scoreboard.Entry{{Name: "bob", Score: 30}, {Name: "ada", Score: 12}}, decodeDocument(t, rr))

	rr = do(t, s, http.MethodPost, "/scores/snakeScores", `{"name":"","score":30}`, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	rr = do(t, s, http.MethodPost, "/scores/snakeScores", `nope`, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// Boards are independent.
	rr = do(t, s, http.MethodGet, "/scores/tetris_scores", "", nil)
	require.Empty(t, decodeDocument(t, rr))

	rr = do(t, s, http.MethodGet, "/scores/bad.name", "", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReplaceScores(t *testing.T) {
	s, _ := createAPIServer("secret")

	body := `[{"name":"low","score":1},{"name":9,"score":5},{"name":"high","score":7}]`
	rr := do(t, s, http.MethodPut, "/scores/snakeScores", body, nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	rr = do(t, s, http.MethodPost, "/scores/snakeScores", `{"name":"ada","score":1}`,
		map[string]string{AccessKeyHeader: "wrong"})
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, s, http.MethodPut, "/scores/snakeScores", body, map[string]string{AccessKeyHeader: "secret"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []scoreboard.Entry{{Name: "high", Score: 7}, {Name: "low", Score: 1}}, decodeDocument(t, rr))

	// Reads stay open.
	rr = do(t, s, http.MethodGet, "/scores/snakeScores", "", nil)
	require.Len(t, decodeDocument(t, rr), 2)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := createAPIServer("")
	rr := do(t, s, http.MethodOptions, "/scores/snakeScores", "", map[string]string{
		"Origin":                         "https://games.example.com",
		"Access-Control-Request-Method":  http.MethodPut,
		"Access-Control-Request-Headers": AccessKeyHeader,
	})
	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestLiveScores(t *testing.T) {
	s, _ := createAPIServer("")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/scores/snakeScores/live"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var doc Document
	require.NoError(t, conn.ReadJSON(&doc))
	require.Empty(t, doc.Record)

	resp, err := http.Post(ts.URL+"/scores/snakeScores", "application/json",
		strings.NewReader(`{"name":"ada","score":3}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.ReadJSON(&doc))
	require.Equal(t, []scoreboard.Entry{{Name: "ada", Score: 3}}, doc.Record)
}

func TestHubKeepsLatest(t *testing.T) {
	h := newHub()
	ch, unsubscribe := h.subscribe("b")
	require.Equal(t, 1, h.count("b"))

	h.publish("b", []scoreboard.Entry{{Name: "first", Score: 1}})
	h.publish("b", []scoreboard.Entry{{Name: "second", Score: 2}})
	h.publish("other", []scoreboard.Entry{{Name: "x", Score: 1}})
	require.Equal(t, "second", (<-ch)[0].Name)

	unsubscribe()
	require.Equal(t, 0, h.count("b"))
	h.publish("b", nil)
}
