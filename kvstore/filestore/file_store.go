// Package filestore keeps key/value pairs in a single JSON file, the
// terminal equivalent of a browser's local storage.
package filestore

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"os/user"
	"path"
	"sync"

	"github.com/pkg/errors"
	"github.com/retrogamehub/arcade/config"
	"github.com/retrogamehub/arcade/kvstore"
	log "github.com/sirupsen/logrus"
)

const fileName = "storage.json"

// DefaultPath is where the store lives when no path is given.
func DefaultPath() string {
	if config.StorageDir != "" {
		return path.Join(config.StorageDir, fileName)
	}
	return path.Join(homeDir(), ".arcade", fileName)
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// New returns a file based store. An existing file is loaded, a missing one
// is created on the first write. A corrupt file is treated as empty.
func New(file string) (kvstore.Store, error) {
	if file == "" {
		file = DefaultPath()
	}
	fs := &fileStore{
		values: map[string]string{},
		file:   file,
	}

	data, err := ioutil.ReadFile(file)
	switch {
	case os.IsNotExist(err):
		return fs, nil
	case err != nil:
		return nil, errors.Wrap(err, "unable to read storage file")
	}
	if err := json.Unmarshal(data, &fs.values); err != nil {
		log.WithError(err).WithField("file", file).Warn("storage file is corrupt, starting empty")
		fs.values = map[string]string{}
	}
	return fs, nil
}

type fileStore struct {
	values map[string]string
	lock   sync.Mutex
	file   string
}

func (fs *fileStore) Get(ctx context.Context, key string) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	v, ok := fs.values[key]
	if !ok {
		return "", kvstore.ErrNotFound
	}
	return v, nil
}

func (fs *fileStore) Set(ctx context.Context, key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	prev, had := fs.values[key]
	fs.values[key] = value
	if err := fs.flush(); err != nil {
		if had {
			fs.values[key] = prev
		} else {
			delete(fs.values, key)
		}
		return err
	}
	return nil
}

// flush writes the whole map to a temp file and renames it over the store so
// readers never see a half written file.
func (fs *fileStore) flush() error {
	if err := os.MkdirAll(path.Dir(fs.file), 0775); err != nil {
		return errors.Wrap(err, "unable to create storage dir")
	}
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return err
	}
	tmp := fs.file + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "unable to write storage file")
	}
	return errors.Wrap(os.Rename(tmp, fs.file), "unable to replace storage file")
}
