package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefixGame = "game/"

var ErrRecordNotFound = errors.New("record not found")

// GameRecord is a finished game as kept in the archive.
type GameRecord struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Winner     string    `json:"winner,omitempty"`
	Moves      []string  `json:"moves"`
	Snapshots  []string  `json:"snapshots"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Archive wraps BadgerDB for finished games
type Archive struct {
	db *badger.DB
}

// Open opens (or creates) an archive in dir
func Open(dir string) (*Archive, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", dir, err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Save stores rec under its id, replacing any earlier record
func (a *Archive) Save(rec GameRecord) error {
	if rec.ID == "" {
		return errors.New("record without id")
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

// Load fetches one record
func (a *Archive) Load(id string) (GameRecord, error) {
	var rec GameRecord

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	return rec, err
}

// List returns every archived game in key order
func (a *Archive) List() ([]GameRecord, error) {
	records := []GameRecord{}
	prefix := []byte(keyPrefixGame)

	err := a.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})

	return records, err
}

func gameKey(id string) []byte {
	return []byte(keyPrefixGame + id)
}
