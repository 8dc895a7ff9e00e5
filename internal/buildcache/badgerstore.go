package buildcache

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore is the optional persistent backing for a BuildCache: a
// write-through layer over an embedded BadgerDB, so build results survive
// process restarts instead of living purely in the LRU/LFU policy's
// memory. It never replaces the in-memory Policy as the eviction
// authority — it just mirrors writes so a cold start can rehydrate.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if necessary) a BadgerDB at dir. Pass
// dir == "" to use an in-memory instance, useful for tests that want the
// durability API without touching disk.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("buildcache: open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Put writes key=value durably.
func (s *BadgerStore) Put(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// Get reads key's value, returning ("", false) on a miss.
func (s *BadgerStore) Get(key string) (string, bool) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			value = string(v)
			return nil
		})
	})
	if err != nil {
		return "", false
	}
	return value, true
}

// Delete removes key, if present.
func (s *BadgerStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// DropAll clears every key, used by BuildCache.CleanAllCache when a
// durable store is attached.
func (s *BadgerStore) DropAll() error {
	return s.db.DropAll()
}

// Each calls fn for every stored key/value pair, used to rehydrate a
// fresh in-memory Policy after a restart. Iteration stops early if fn
// returns false.
func (s *BadgerStore) Each(fn func(key, value string) bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			var value string
			if err := item.Value(func(v []byte) error {
				value = string(v)
				return nil
			}); err != nil {
				return err
			}
			if !fn(key, value) {
				break
			}
		}
		return nil
	})
}

// AttachStore wires a durable store to bc: every subsequent
// CacheBuildResult call also writes through to store, and the store's
// existing contents are replayed into the in-memory policy immediately so
// entries from a previous process are usable right away (subject to the
// policy's own capacity and eviction order).
func (bc *BuildCache) AttachStore(store *BadgerStore) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.store = store
	return store.Each(func(key, value string) bool {
		bc.policy.Put(key, value)
		return true
	})
}
