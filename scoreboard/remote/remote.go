// Package remote stores a scoreboard in a JSON document service. The board
// is fetched with GET, which answers {"record": [...]}, and replaced whole
// with PUT.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/retrogamehub/arcade/scoreboard"
	log "github.com/sirupsen/logrus"
)

// AccessKeyHeader carries the optional API key.
const AccessKeyHeader = "X-Access-Key"

// Limited read of the document body.
const maxBodySize = 1000000

// ErrInvalidURL is returned by New for URLs that are not http(s).
var ErrInvalidURL = errors.New("remote: invalid scoreboard url")

// Store is a scoreboard.Store backed by a remote document.
type Store struct {
	url    string
	apiKey string
	client httpClient
	lock   sync.Mutex
}

// New returns a remote store for the document at url.
func New(url, apiKey string, timeout time.Duration) (*Store, error) {
	if !isValidURL(url) {
		return nil, ErrInvalidURL
	}
	return &Store{
		url:    url,
		apiKey: apiKey,
		client: createClient(timeout),
	}, nil
}

type document struct {
	Record json.RawMessage `json:"record"`
}

// List fetches the board. Any failure is logged and reported as an empty
// board.
func (s *Store) List(ctx context.Context) ([]scoreboard.Entry, error) {
	list, err := s.fetch(ctx)
	if err != nil {
		log.WithError(err).WithField("url", s.url).Warn("unable to fetch remote scoreboard")
		return []scoreboard.Entry{}, nil
	}
	return list, nil
}

// Save inserts e and writes the board back. Unlike List, a failed fetch is
// not treated as an empty board: the error is returned and nothing is PUT,
// so an unreachable or rejecting service never has its shared board
// replaced by a single entry.
func (s *Store) Save(ctx context.Context, e scoreboard.Entry) ([]scoreboard.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	list, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	list = scoreboard.Insert(list, e)
	if err := s.put(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Replace writes entries as the new board.
func (s *Store) Replace(ctx context.Context, entries []scoreboard.Entry) ([]scoreboard.Entry, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	list := scoreboard.Normalize(entries)
	if err := s.put(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) fetch(ctx context.Context) ([]scoreboard.Entry, error) {
	req, err := http.NewRequest(http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	data, err := s.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil || len(doc.Record) == 0 {
		// Some document services answer with the bare array.
		return scoreboard.Normalize(scoreboard.Decode(data)), nil
	}
	return scoreboard.Normalize(scoreboard.Decode(doc.Record)), nil
}

func (s *Store) put(ctx context.Context, list []scoreboard.Entry) error {
	data, err := scoreboard.Encode(list)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, s.url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = s.do(ctx, req)
	return err
}

func (s *Store) do(ctx context.Context, req *http.Request) ([]byte, error) {
	req = req.WithContext(ctx)
	if s.apiKey != "" {
		req.Header.Set(AccessKeyHeader, s.apiKey)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		instrumentRemoteCall(req.Method, 0, latency)
		return nil, errors.Wrap(err, "remote scoreboard request failed")
	}
	defer func() {
		if bErr := resp.Body.Close(); bErr != nil {
			log.WithError(bErr).Warn("failed to close response body")
		}
	}()
	instrumentRemoteCall(req.Method, resp.StatusCode, latency)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{method: req.Method, code: resp.StatusCode}
	}
	return ioutil.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}
