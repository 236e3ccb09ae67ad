package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/retrogamehub/arcade/scoreboard"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// hub fans board updates out to live subscribers. Slow subscribers only ever
// see the latest board.
type hub struct {
	lock   sync.Mutex
	subs   map[string]map[chan []scoreboard.Entry]struct{}
	closed chan struct{}
	once   sync.Once
}

func newHub() *hub {
	return &hub{
		subs:   map[string]map[chan []scoreboard.Entry]struct{}{},
		closed: make(chan struct{}),
	}
}

func (h *hub) subscribe(board string) (<-chan []scoreboard.Entry, func()) {
	h.lock.Lock()
	defer h.lock.Unlock()

	ch := make(chan []scoreboard.Entry, 1)
	if h.subs[board] == nil {
		h.subs[board] = map[chan []scoreboard.Entry]struct{}{}
	}
	h.subs[board][ch] = struct{}{}

	return ch, func() {
		h.lock.Lock()
		defer h.lock.Unlock()
		delete(h.subs[board], ch)
		if len(h.subs[board]) == 0 {
			delete(h.subs, board)
		}
	}
}

func (h *hub) publish(board string, list []scoreboard.Entry) {
	h.lock.Lock()
	defer h.lock.Unlock()

	for ch := range h.subs[board] {
		select {
		case ch <- list:
		default:
			// Replace the unread update.
			select {
			case <-ch:
			default:
			}
			ch <- list
		}
	}
}

func (h *hub) count(board string) int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.subs[board])
}

func (h *hub) close() {
	h.once.Do(func() { close(h.closed) })
}

func (s *Server) liveScores(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	board, st, ok := s.boardStore(w, ps)
	if !ok {
		return
	}

	updates, unsubscribe := s.hub.subscribe(board)
	defer unsubscribe()

	list, err := st.List(r.Context())
	if err != nil {
		log.WithError(err).WithField("board", board).Error("unable to list scores")
		writeError(w, http.StatusInternalServerError, "scoreboard unavailable")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).WithField("board", board).Warn("websocket upgrade failed")
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.WithError(err).Debug("failure to close websocket connection")
		}
	}()

	// Reads only serve to notice the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(list []scoreboard.Entry) bool {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return false
		}
		if err := conn.WriteJSON(Document{Record: list}); err != nil {
			log.WithError(err).WithField("board", board).Debug("live scoreboard write failed")
			return false
		}
		return true
	}

	if !send(list) {
		return
	}
	for {
		select {
		case list := <-updates:
			if !send(list) {
				return
			}
		case <-gone:
			return
		case <-s.hub.closed:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}
	}
}
