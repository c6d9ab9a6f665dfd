/*
Package iavl provides a persistent, versioned merkle store backed by
tendermint/iavl. State is only persisted when committed, every commit
creates a new version.
*/
package iavl

import (
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/store"
	"github.com/tendermint/iavl"
	cmn "github.com/tendermint/tendermint/libs/common"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// defaultCacheSize is the number of tree nodes kept in memory.
	defaultCacheSize = 10000

	// defaultNumHistory is the number of versions kept on disk. Older
	// versions are pruned on commit.
	defaultNumHistory = 20
)

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree       *iavl.MutableTree
	db         dbm.DB
	numHistory int64
	logger     log.Logger
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing. Data is stored in
// a leveldb database called name, inside of the path directory.
func NewCommitStore(path, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "cannot open leveldb %q in %q: %s", name, path, err)
	}
	return newCommitStore(db), nil
}

// NewMemCommitStore creates a new store that keeps all versions in memory.
func NewMemCommitStore() *CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) *CommitStore {
	return &CommitStore{
		tree:       iavl.NewMutableTree(db, defaultCacheSize),
		db:         db,
		numHistory: defaultNumHistory,
		logger:     log.NewNopLogger(),
	}
}

// SetLogger sets the logger used to report commits.
func (s *CommitStore) SetLogger(logger log.Logger) {
	s.logger = logger.With("module", "iavl")
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	version := s.tree.Version()
	_, val := s.tree.GetVersioned(key, version)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	// Keep the history small, remove the versions we no longer need.
	if s.numHistory > 0 && version > s.numHistory {
		toDel := version - s.numHistory
		if s.tree.VersionExists(toDel) {
			if err := s.tree.DeleteVersion(toDel); err != nil {
				return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "delete version %d: %s", toDel, err)
			}
		}
	}

	s.logger.Info("committed state", "version", version, "hash", cmn.HexBytes(hash))
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s *CommitStore) LoadLatestVersion() error {
	version, err := s.tree.Load()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.logger.Debug("loaded state", "version", version)
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions. Nothing is persisted
// until the cache is written and the store is committed.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter returns a wrapped version of the tree.
//
// Data written here is stored in the tree, but not persisted
// until the next Commit.
func (s *CommitStore) Adapter() store.CacheableKVStore {
	return store.BTreeCacheable{KVStore: adapter{tree: s.tree}}
}

// Close releases the underlying database.
func (s *CommitStore) Close() error {
	s.db.Close()
	return nil
}

// adapter converts the mutable tree into a KVStore.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = adapter{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

// Set adds a new value
func (a adapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that can write multiple ops. The tree is only
// persisted on commit, so a non atomic batch is sufficient.
func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
// Start must be less than end, or the Iterator is invalid.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return newLazyIterator(a.tree, start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return newLazyIterator(a.tree, start, end, false), nil
}
