// Package backend opens the key/value and scoreboard stores selected on the
// command line.
package backend

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/retrogamehub/arcade/config"
	"github.com/retrogamehub/arcade/kvstore"
	"github.com/retrogamehub/arcade/kvstore/filestore"
	"github.com/retrogamehub/arcade/kvstore/redisstore"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/retrogamehub/arcade/scoreboard/remote"
	"github.com/retrogamehub/arcade/scoreboard/sqlstore"
	log "github.com/sirupsen/logrus"
)

// Backend names.
const (
	Local  = "local"
	Memory = "memory"
	Redis  = "redis"
	Remote = "remote"
	SQL    = "sql"
)

// BoardPlaceholder in a remote board url stands for the board name.
const BoardPlaceholder = "{board}"

// Names lists the valid backends for flag help.
var Names = []string{Local, Memory, Redis, Remote, SQL}

// Options select and configure a backend.
type Options struct {
	Backend string
	// Args is the backend's connection string: a file for local, a URL
	// for redis and sql.
	Args string
	// BoardURL and APIKey configure the remote backend. Each board is its
	// own document: a {board} placeholder in BoardURL is replaced by the
	// board name, otherwise the name is appended as a path segment.
	BoardURL string
	APIKey   string
}

// Stores is an opened backend. Close releases every connection it holds.
type Stores struct {
	opts    Options
	kv      kvstore.Store
	closers []io.Closer
	sql     map[string]*sqlstore.Store
}

// Open connects the key/value store preferences and local boards live in.
// Remote and sql boards still keep preferences in the local file.
func Open(opts Options) (*Stores, error) {
	if opts.Backend == "" {
		opts.Backend = Local
	}
	s := &Stores{opts: opts, sql: map[string]*sqlstore.Store{}}

	switch opts.Backend {
	case Memory:
		s.kv = kvstore.InMemStore()
	case Redis:
		rs, err := redisstore.NewStore(opts.Args)
		if err != nil {
			return nil, err
		}
		s.kv = rs
		s.closers = append(s.closers, rs)
	case Local, Remote, SQL:
		file := filestore.DefaultPath()
		if opts.Backend == Local && opts.Args != "" {
			file = opts.Args
		}
		kv, err := filestore.New(file)
		if err != nil {
			return nil, err
		}
		s.kv = kv
	default:
		return nil, fmt.Errorf("invalid backend %q, expected one of %v", opts.Backend, Names)
	}
	return s, nil
}

// KV is the preference store.
func (s *Stores) KV() kvstore.Store { return s.kv }

// Board opens the named scoreboard, instrumented.
func (s *Stores) Board(name string) (scoreboard.Store, error) {
	store, err := s.RawBoard(name)
	if err != nil {
		return nil, err
	}
	return scoreboard.InstrumentStore(store), nil
}

// RawBoard opens the named scoreboard for callers that instrument it
// themselves.
func (s *Stores) RawBoard(name string) (scoreboard.Store, error) {
	var store scoreboard.Store
	switch s.opts.Backend {
	case Remote:
		rs, err := remote.New(BoardURL(s.opts.BoardURL, name), s.opts.APIKey, config.RemoteTimeout)
		if err != nil {
			return nil, err
		}
		store = rs
	case SQL:
		if existing, ok := s.sql[name]; ok {
			store = existing
			break
		}
		ss, err := sqlstore.New(s.opts.Args, name)
		if err != nil {
			return nil, err
		}
		s.sql[name] = ss
		s.closers = append(s.closers, ss)
		store = ss
	default:
		store = scoreboard.LocalStore(s.kv, name)
	}
	log.WithFields(log.Fields{
		"backend": s.opts.Backend,
		"board":   name,
	}).Debug("scoreboard opened")
	return store, nil
}

// BoardURL is the document url of the named board under base.
func BoardURL(base, name string) string {
	if strings.Contains(base, BoardPlaceholder) {
		return strings.Replace(base, BoardPlaceholder, url.PathEscape(name), -1)
	}
	return strings.TrimSuffix(base, "/") + "/" + url.PathEscape(name)
}

// Close closes every connection opened so far.
func (s *Stores) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			log.WithError(err).Error("unable to close store")
			if first == nil {
				first = err
			}
		}
	}
	return first
}
