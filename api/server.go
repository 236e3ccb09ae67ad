// Package api serves the contact form relay and shared scoreboards over HTTP.
package api

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/retrogamehub/arcade/config"
	"github.com/retrogamehub/arcade/contact"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// AccessKeyHeader must match the server's key on scoreboard writes.
const AccessKeyHeader = "X-Access-Key"

const maxBodySize = 1000000

var boardName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// BoardFunc opens the store for a named board.
type BoardFunc func(board string) (scoreboard.Store, error)

// Options configures a Server.
type Options struct {
	Addr string
	// APIKey protects scoreboard writes when set.
	APIKey string
	// Boards opens scoreboards. Nil disables the scoreboard routes.
	Boards BoardFunc
	// Sender relays contact messages to MailTo. Nil disables /contact.
	Sender contact.Sender
	MailTo string
}

// Server is the arcade HTTP server.
type Server struct {
	hs      *http.Server
	opts    Options
	limiter *rate.Limiter
	hub     *hub

	lock   sync.Mutex
	stores map[string]scoreboard.Store
}

// New builds a server listening on opts.Addr.
func New(opts Options) *Server {
	s := &Server{
		opts:    opts,
		limiter: rate.NewLimiter(config.ContactRate, config.ContactBurst),
		hub:     newHub(),
		stores:  map[string]scoreboard.Store{},
	}

	router := httprouter.New()
	var routes http.Handler = router
	if opts.Sender != nil {
		// The relay answers every method itself, so it sits in front of the
		// router's own 405 and OPTIONS handling.
		h := s.rateLimited(contact.Handler(opts.Sender, opts.MailTo))
		routes = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/contact" {
				h.ServeHTTP(w, r)
				return
			}
			router.ServeHTTP(w, r)
		})
	}
	if opts.Boards != nil {
		router.GET("/scores/:board", s.listScores)
		router.PUT("/scores/:board", s.requireKey(s.replaceScores))
		router.POST("/scores/:board", s.requireKey(s.saveScore))
		router.GET("/scores/:board/live", s.liveScores)
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type", AccessKeyHeader},
	}).Handler(routes)

	s.hs = &http.Server{
		Addr:    opts.Addr,
		Handler: handler,
	}
	return s
}

// Handler exposes the routed handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() error {
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and closes live feeds.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.close()
	return s.hs.Shutdown(ctx)
}

func (s *Server) rateLimited(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !s.limiter.Allow() {
			log.WithField("remote", r.RemoteAddr).Warn("contact form rate limited")
			writeJSON(w, http.StatusTooManyRequests, contact.Response{Message: "Too many requests."})
			return
		}
		h.ServeHTTP(w, r)
	})
}

func (s *Server) requireKey(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if s.opts.APIKey != "" && r.Header.Get(AccessKeyHeader) != s.opts.APIKey {
			writeError(w, http.StatusUnauthorized, "invalid access key")
			return
		}
		h(w, r, ps)
	}
}

func (s *Server) store(board string) (scoreboard.Store, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if st, ok := s.stores[board]; ok {
		return st, nil
	}
	st, err := s.opts.Boards(board)
	if err != nil {
		return nil, err
	}
	st = scoreboard.InstrumentStore(st)
	s.stores[board] = st
	return st, nil
}

// boardStore resolves the :board param, writing the error response itself
// when it fails.
func (s *Server) boardStore(w http.ResponseWriter, ps httprouter.Params) (string, scoreboard.Store, bool) {
	board := ps.ByName("board")
	if !boardName.MatchString(board) {
		writeError(w, http.StatusNotFound, "unknown board")
		return "", nil, false
	}
	st, err := s.store(board)
	if err != nil {
		log.WithError(err).WithField("board", board).Error("unable to open scoreboard")
		writeError(w, http.StatusInternalServerError, "scoreboard unavailable")
		return "", nil, false
	}
	return board, st, true
}

// Document is the body of scoreboard responses.
type Document struct {
	Record []scoreboard.Entry `json:"record"`
}

func (s *Server) listScores(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	board, st, ok := s.boardStore(w, ps)
	if !ok {
		return
	}
	list, err := st.List(r.Context())
	if err != nil {
		log.WithError(err).WithField("board", board).Error("unable to list scores")
		writeError(w, http.StatusInternalServerError, "scoreboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, Document{Record: list})
}

func (s *Server) replaceScores(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	board, st, ok := s.boardStore(w, ps)
	if !ok {
		return
	}
	data, err := ioutil.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unable to read body")
		return
	}
	list, err := st.Replace(r.Context(), scoreboard.Decode(data))
	if err != nil {
		log.WithError(err).WithField("board", board).Error("unable to replace scores")
		writeError(w, http.StatusInternalServerError, "scoreboard unavailable")
		return
	}
	s.hub.publish(board, list)
	writeJSON(w, http.StatusOK, Document{Record: list})
}

func (s *Server) saveScore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	board, st, ok := s.boardStore(w, ps)
	if !ok {
		return
	}
	var e scoreboard.Entry
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry")
		return
	}
	list, err := st.Save(r.Context(), e)
	if err == scoreboard.ErrInvalidEntry {
		writeError(w, http.StatusBadRequest, "invalid entry")
		return
	}
	if err != nil {
		log.WithError(err).WithField("board", board).Error("unable to save score")
		writeError(w, http.StatusInternalServerError, "scoreboard unavailable")
		return
	}
	log.WithFields(log.Fields{
		"board": board,
		"name":  e.Name,
		"score": e.Score,
	}).Info("score saved")
	s.hub.publish(board, list)
	writeJSON(w, http.StatusCreated, Document{Record: list})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("unable to write response")
	}
}

// writeWait bounds a single websocket write.
var writeWait = 5 * time.Second
