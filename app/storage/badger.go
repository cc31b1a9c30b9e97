package storage

import (
	"context"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements BlobStore on a BadgerDB. Each logical store gets a
// namespace so several stores can share one database, the way the original
// deployment used separately named buckets.
type BadgerStore struct {
	db        *badger.DB
	namespace string
}

// OpenBadger opens (or creates) the BadgerDB at path.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	return badger.Open(opts)
}

// NewBadgerStore creates a BlobStore over db scoped to namespace.
func NewBadgerStore(db *badger.DB, namespace string) *BadgerStore {
	return &BadgerStore{db: db, namespace: namespace}
}

func (s *BadgerStore) fullKey(key string) []byte {
	return []byte(s.namespace + ":" + key)
}

func (s *BadgerStore) List(_ context.Context, prefix string) ([]string, error) {
	keys := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		scan := s.fullKey(prefix)
		for it.Seek(scan); it.ValidForPrefix(scan); it.Next() {
			k := string(it.Item().KeyCopy(nil))
			keys = append(keys, strings.TrimPrefix(k, s.namespace+":"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *BadgerStore) Read(_ context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.fullKey(key))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *BadgerStore) Write(_ context.Context, key string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.fullKey(key), data)
	})
}

func (s *BadgerStore) Remove(_ context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.fullKey(key))
	})
}
