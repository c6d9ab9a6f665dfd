/*
Package boltdb provides a KVStore persisted in a single bbolt bucket.

Every write that does not go through a batch is a separate bolt
transaction. Batches, and therefore cache wraps, are written in a single
transaction.
*/
package boltdb

import (
	"encoding/binary"
	"time"

	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/store"
	"github.com/tendermint/tendermint/libs/log"
	"go.etcd.io/bbolt"
)

var (
	dataBucket = []byte("htlc")
	metaBucket = []byte("meta")
	versionKey = []byte("version")
)

// Store is a KVStore persisted with bbolt.
type Store struct {
	db      *bbolt.DB
	version int64
	logger  log.Logger
}

var (
	_ store.KVStore       = (*Store)(nil)
	_ store.CommitKVStore = (*Store)(nil)
)

// Open opens or creates the database file at given path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", path, err)
	}
	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New returns a store using given database. All required buckets are
// created.
func New(db *bbolt.DB) (*Store, error) {
	tx, err := db.Begin(true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer tx.Rollback()
	for _, name := range [][]byte{dataBucket, metaBucket} {
		if _, err := tx.CreateBucketIfNotExists(name); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "create %s bucket: %s", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	s := &Store{db: db, logger: log.NewNopLogger()}
	if err := s.LoadLatestVersion(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetLogger sets the logger used to report commits.
func (s *Store) SetLogger(logger log.Logger) {
	s.logger = logger.With("module", "boltdb")
}

// Get returns nil iff key doesn't exist.
func (s *Store) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		// Value is only valid during the transaction.
		if v := tx.Bucket(dataBucket).Get(key); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return value, nil
}

// Has checks if a key exists.
func (s *Store) Has(key []byte) (bool, error) {
	var has bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		has = tx.Bucket(dataBucket).Get(key) != nil
		return nil
	})
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return has, nil
}

// Set writes the value in its own transaction.
func (s *Store) Set(key, value []byte) error {
	return s.update(func(b *bbolt.Bucket) error {
		return b.Put(key, value)
	})
}

// Delete removes the key in its own transaction. Deleting a missing key is
// a noop.
func (s *Store) Delete(key []byte) error {
	return s.update(func(b *bbolt.Bucket) error {
		return b.Delete(key)
	})
}

func (s *Store) update(fn func(*bbolt.Bucket) error) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return fn(tx.Bucket(dataBucket))
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// NewBatch returns a batch that is written in a single transaction.
func (s *Store) NewBatch() store.Batch {
	return &batch{s: s}
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *Store) Iterator(start, end []byte) (store.Iterator, error) {
	return &iterator{s: s, start: start, end: end}, nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s *Store) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return &iterator{s: s, start: start, end: end, reverse: true}, nil
}

// CacheWrap gives us a savepoint to perform actions. Writing the cache
// is a single bolt transaction.
func (s *Store) CacheWrap() store.KVCacheWrap {
	return store.BTreeCacheable{KVStore: s}.CacheWrap()
}

// Commit marks the current state as the next version. Bolt transactions
// are durable once written, so only the version counter changes.
func (s *Store) Commit() (store.CommitID, error) {
	next := s.version + 1
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(next))
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(metaBucket).Put(versionKey, raw)
	})
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.version = next
	s.logger.Info("committed state", "version", next)
	return store.CommitID{Version: next}, nil
}

// LoadLatestVersion reads the version counter from the database.
func (s *Store) LoadLatestVersion() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(metaBucket).Get(versionKey)
		switch len(raw) {
		case 0:
			s.version = 0
		case 8:
			s.version = int64(binary.BigEndian.Uint64(raw))
		default:
			return errors.Wrapf(errors.ErrDatabase, "malformed version: %x", raw)
		}
		return nil
	})
}

// LatestVersion returns the version of the last commit. Bolt does not
// compute a state hash so the hash is always empty.
func (s *Store) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.version}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// batch collects all operations and writes them in one transaction.
type batch struct {
	s   *Store
	ops []store.Op
}

var _ store.Batch = (*batch)(nil)

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

// Write applies all operations or none of them.
func (b *batch) Write() error {
	ops := b.ops
	b.ops = nil
	err := b.s.db.Update(func(tx *bbolt.Tx) error {
		w := bucketWriter{b: tx.Bucket(dataBucket)}
		for _, op := range ops {
			if err := op.Apply(w); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// bucketWriter adapts a bolt bucket to the SetDeleter interface.
type bucketWriter struct {
	b *bbolt.Bucket
}

func (w bucketWriter) Set(key, value []byte) error {
	return w.b.Put(key, value)
}

func (w bucketWriter) Delete(key []byte) error {
	return w.b.Delete(key)
}
