// Package sqlstore keeps scoreboards in postgres, one jsonb document per
// board.
package sqlstore

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // Import pq driver.

	"github.com/pkg/errors"
	"github.com/retrogamehub/arcade/config"
	"github.com/retrogamehub/arcade/scoreboard"
	log "github.com/sirupsen/logrus"
)

const migrations = `
CREATE TABLE IF NOT EXISTS scoreboards (
	board VARCHAR(255) PRIMARY KEY,
	value jsonb NOT NULL DEFAULT '[]',
	updated timestamp default now()
);
`

// New returns a store for board using a postgres database.
func New(url, board string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	if err = db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	if _, err = db.ExecContext(ctx, migrations); err != nil {
		return nil, errors.Wrap(err, "unable to migrate")
	}
	return &Store{db: db, board: board}, nil
}

// Store represents an SQL store for a single board.
type Store struct {
	db    *sql.DB
	board string
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// transact is a transaction wrapper, helps avoid failed to close connections.
func (s *Store) transact(
	ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
			panic(p)
		} else if err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
		} else {
			err = tx.Commit()
		}
	}()
	err = txFunc(tx)
	return err
}

// List returns the board.
func (s *Store) List(ctx context.Context) ([]scoreboard.Entry, error) {
	var raw []byte
	r := s.db.QueryRowContext(ctx, `SELECT value FROM scoreboards WHERE board=$1`, s.board)
	if err := r.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return []scoreboard.Entry{}, nil
		}
		return nil, err
	}
	return scoreboard.Normalize(scoreboard.Decode(raw)), nil
}

// Save inserts e into the board. The row is locked for the duration of the
// read-modify-write.
func (s *Store) Save(ctx context.Context, e scoreboard.Entry) ([]scoreboard.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	var list []scoreboard.Entry
	err := s.transact(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scoreboards (board) VALUES ($1) ON CONFLICT (board) DO NOTHING`,
			s.board,
		); err != nil {
			return err
		}

		var raw []byte
		r := tx.QueryRowContext(ctx,
			`SELECT value FROM scoreboards WHERE board=$1 FOR UPDATE`, s.board)
		if err := r.Scan(&raw); err != nil {
			return err
		}

		list = scoreboard.Insert(scoreboard.Decode(raw), e)
		return s.write(ctx, tx, list)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Replace overwrites the board with entries.
func (s *Store) Replace(ctx context.Context, entries []scoreboard.Entry) ([]scoreboard.Entry, error) {
	list := scoreboard.Normalize(entries)
	err := s.transact(ctx, func(tx *sql.Tx) error {
		return s.write(ctx, tx, list)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) write(ctx context.Context, tx *sql.Tx, list []scoreboard.Entry) error {
	data, err := scoreboard.Encode(list)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
	INSERT INTO scoreboards (board, value, updated) VALUES ($1, $2, now())
	ON CONFLICT (board)
	DO UPDATE SET value=$2, updated=now()`,
		s.board, string(data),
	)
	return err
}
