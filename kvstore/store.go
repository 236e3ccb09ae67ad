// Package kvstore is the small local key/value persistence used for
// preferences and local score lists.
package kvstore

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a key has never been set.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the interface to the backend store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// GetDefault returns the stored value for key, or def when it is missing.
func GetDefault(ctx context.Context, s Store, key, def string) (string, error) {
	v, err := s.Get(ctx, key)
	if err == ErrNotFound {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return v, nil
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{values: map[string]string{}}
}

type inmem struct {
	values map[string]string
	lock   sync.Mutex
}

func (in *inmem) Get(ctx context.Context, key string) (string, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	v, ok := in.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (in *inmem) Set(ctx context.Context, key, value string) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	in.values[key] = value
	return nil
}
