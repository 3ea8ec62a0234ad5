// Package buntstore keeps day documents in a buntdb file, one JSON value per
// (user, date) key.
package buntstore

import (
	"context"
	"encoding/json"
	"errors"

	appErrors "fichaje/internal/errors"
	"fichaje/internal/repository"

	"github.com/tidwall/buntdb"
)

const keyPrefix = "registros"

// Store implements repository.Store on buntdb
type Store struct {
	db *buntdb.DB
}

var _ repository.Store = (*Store)(nil)

// Open opens (or creates) the buntdb file at path. ":memory:" keeps everything in RAM.
func Open(path string) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, appErrors.NewStorageError("open buntdb", err)
	}
	return &Store{db: db}, nil
}

// New wraps an already opened database
func New(db *buntdb.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// documentKey lays keys out as registros:<user>:dias:<date>
func documentKey(key repository.Key) string {
	return keyPrefix + ":" + key.UserID + ":dias:" + key.Date
}

// Get loads the document stored under key
func (s *Store) Get(ctx context.Context, key repository.Key) (*repository.DayDocument, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, appErrors.FromContext(ctx, "get day record", err)
	}

	var raw string
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(documentKey(key))
		raw = v
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, repository.NotFound(key)
	} else if err != nil {
		return nil, appErrors.NewStorageError("get day record", err).WithContext("key", key.String())
	}

	doc := &repository.DayDocument{}
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		return nil, appErrors.NewCorruptRecordError("document", raw, err).WithContext("key", key.String())
	}
	if doc.Pauses == nil {
		doc.Pauses = []repository.PauseDocument{}
	}
	return doc, nil
}

// Put replaces the document stored under key
func (s *Store) Put(ctx context.Context, key repository.Key, doc *repository.DayDocument) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return appErrors.FromContext(ctx, "put day record", err)
	}

	bs, err := json.Marshal(doc)
	if err != nil {
		return appErrors.NewStorageError("encode day record", err)
	}

	err = s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(documentKey(key), string(bs), nil)
		return err
	})
	if err != nil {
		return appErrors.NewStorageError("put day record", err).WithContext("key", key.String())
	}
	return nil
}
