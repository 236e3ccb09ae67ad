package remote

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/retrogamehub/arcade/scoreboard/testsuite"
	"github.com/stretchr/testify/require"
)

// documentServer mimics a JSON bin: GET wraps the stored array in a record
// envelope, PUT replaces it.
type documentServer struct {
	lock sync.Mutex
	doc  string
	key  string
	puts int
}

func (d *documentServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.key != "" && r.Header.Get(AccessKeyHeader) != d.key {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	switch r.Method {
	case http.MethodGet:
		fmt.Fprintf(w, `{"record":%s,"metadata":{"private":true}}`, d.doc)
	case http.MethodPut:
		body, _ := ioutil.ReadAll(r.Body)
		d.doc = string(body)
		d.puts++
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (d *documentServer) reset() {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.doc = "[]"
}

func TestRemoteStore(t *testing.T) {
	doc := &documentServer{doc: "[]", key: "secret"}
	server := httptest.NewServer(doc)
	defer server.Close()

	s, err := New(server.URL, "secret", time.Second)
	require.NoError(t, err)
	testsuite.Suite(t, s, doc.reset)
}

func TestRemoteStoreWrongKeyDegradesToEmpty(t *testing.T) {
	doc := &documentServer{doc: `[{"name":"ada","score":4}]`, key: "secret"}
	server := httptest.NewServer(doc)
	defer server.Close()

	s, err := New(server.URL, "wrong", time.Second)
	require.NoError(t, err)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = s.Save(context.Background(), scoreboard.Entry{Name: "bob", Score: 9})
	require.Error(t, err)
	require.Equal(t, 0, doc.puts, "an unreadable board is never overwritten")
}

func TestRemoteStoreUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	s, err := New(url, "", 100*time.Millisecond)
	require.NoError(t, err)
	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = s.Save(context.Background(), scoreboard.Entry{Name: "bob", Score: 9})
	require.Error(t, err)
	require.Nil(t, list)
}

func TestRemoteStoreBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"low","score":1},{"name":"high","score":8},{"bad":true}]`)
	}))
	defer server.Close()

	s, err := New(server.URL, "", time.Second)
	require.NoError(t, err)
	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []scoreboard.Entry{{Name: "high", Score: 8}, {Name: "low", Score: 1}}, list)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("", "", time.Second)
	require.Equal(t, ErrInvalidURL, err)
	_, err = New("ftp://example.com/board", "", time.Second)
	require.Equal(t, ErrInvalidURL, err)
}

func TestStatusClass(t *testing.T) {
	require.Equal(t, "2xx", statusClass(204))
	require.Equal(t, "3xx", statusClass(301))
	require.Equal(t, "4xx", statusClass(404))
	require.Equal(t, "5xx", statusClass(503))
	require.Equal(t, "err", statusClass(0))
}
