// Package redisstore shares key/value pairs through redis, so several arcade
// processes can read and write the same scoreboards and preferences.
package redisstore

import (
	"context"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"github.com/retrogamehub/arcade/kvstore"
)

const keyPrefix = "arcade:"

// Store is a redis backed kvstore.Store.
type Store struct {
	client *redis.Client
}

// NewStore will create a new instance of an underlying redis client, so it
// should not be re-created across goroutines. The connection is checked
// immediately and an error returned if redis cannot be reached.
func NewStore(connectURL string) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	if err := client.Ping().Err(); err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client}, nil
}

// Close closes the underlying redis client.
func (rs *Store) Close() error {
	return rs.client.Close()
}

// Get returns the value at key or kvstore.ErrNotFound.
func (rs *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := rs.client.WithContext(ctx).Get(keyPrefix + key).Result()
	if err == redis.Nil {
		return "", kvstore.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "unable to get %s", key)
	}
	return v, nil
}

// Set stores value at key with no expiry.
func (rs *Store) Set(ctx context.Context, key, value string) error {
	err := rs.client.WithContext(ctx).Set(keyPrefix+key, value, 0).Err()
	return errors.Wrapf(err, "unable to set %s", key)
}
