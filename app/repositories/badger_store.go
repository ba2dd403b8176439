package repositories

import (
	"errors"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// CollectionKey is the single key holding the serialized collection.
const CollectionKey = "collection:posts"

// BadgerStore keeps the serialized collection under one key of a Badger
// database. The caller owns the database and closes it.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore wraps an open Badger database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens (or creates) a Badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: dir, Err: err}
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Load reads the whole collection. A missing key loads as an empty collection.
func (s *BadgerStore) Load() ([]models.Post, error) {
	var posts []models.Post
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(CollectionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			posts = []models.Post{}
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := unmarshalCollection(val)
			if err != nil {
				return err
			}
			posts = decoded
			return nil
		})
	})
	if err != nil {
		return nil, &StorageError{Op: "load", Path: CollectionKey, Err: err}
	}
	return posts, nil
}

// Save replaces the collection in a single transaction.
func (s *BadgerStore) Save(posts []models.Post) error {
	data, err := marshalCollection(posts)
	if err != nil {
		return &StorageError{Op: "save", Path: CollectionKey, Err: err}
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(CollectionKey), data)
	})
	if err != nil {
		return &StorageError{Op: "save", Path: CollectionKey, Err: err}
	}
	return nil
}

// Remove deletes the collection key.
func (s *BadgerStore) Remove() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(CollectionKey))
	})
	if err != nil {
		return &StorageError{Op: "remove", Path: CollectionKey, Err: err}
	}
	return nil
}
