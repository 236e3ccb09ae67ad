// Package scoreboard keeps the top ten scores of a game. Boards are stored
// as a single document that is read, modified and written back whole.
package scoreboard

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/retrogamehub/arcade/kvstore"
	log "github.com/sirupsen/logrus"
)

// Store is the interface to a scoreboard backend. Every method returns the
// board normalized.
type Store interface {
	List(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, e Entry) ([]Entry, error)
	Replace(ctx context.Context, entries []Entry) ([]Entry, error)
}

// SaveTimeout bounds a fire-and-forget save.
var SaveTimeout = 10 * time.Second

// LocalStore keeps a board as JSON under key in a key/value store.
func LocalStore(kv kvstore.Store, key string) Store {
	return &localStore{kv: kv, key: key}
}

type localStore struct {
	kv   kvstore.Store
	key  string
	lock sync.Mutex
}

func (ls *localStore) List(ctx context.Context) ([]Entry, error) {
	raw, err := kvstore.GetDefault(ctx, ls.kv, ls.key, "[]")
	if err != nil {
		return nil, errors.Wrap(err, "unable to read scoreboard")
	}
	return Normalize(Decode([]byte(raw))), nil
}

func (ls *localStore) Save(ctx context.Context, e Entry) ([]Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	ls.lock.Lock()
	defer ls.lock.Unlock()

	list, err := ls.List(ctx)
	if err != nil {
		return nil, err
	}
	return ls.write(ctx, Insert(list, e))
}

func (ls *localStore) Replace(ctx context.Context, entries []Entry) ([]Entry, error) {
	ls.lock.Lock()
	defer ls.lock.Unlock()

	return ls.write(ctx, Normalize(entries))
}

func (ls *localStore) write(ctx context.Context, list []Entry) ([]Entry, error) {
	data, err := Encode(list)
	if err != nil {
		return nil, err
	}
	if err := ls.kv.Set(ctx, ls.key, string(data)); err != nil {
		return nil, errors.Wrap(err, "unable to write scoreboard")
	}
	return list, nil
}

// SaveAsync saves e in the background. Failures are logged and otherwise
// ignored. The returned channel is closed once the attempt has finished.
func SaveAsync(s Store, e Entry) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), SaveTimeout)
		defer cancel()

		if _, err := s.Save(ctx, e); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"name":  e.Name,
				"score": e.Score,
			}).Warn("unable to save score")
		}
	}()
	return done
}
