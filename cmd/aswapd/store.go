package main

import (
	"os"
	"path/filepath"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/store/boltdb"
	"github.com/iov-one/htlc/store/iavl"
	"github.com/tendermint/tendermint/libs/log"
)

// openStore opens the configured backend with the latest committed state
// loaded.
func openStore(cfg *config, logger log.Logger) (htlc.CommitKVStore, error) {
	switch cfg.Backend {
	case backendIAVL:
		if err := os.MkdirAll(cfg.DB, 0755); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "cannot create %q: %s", cfg.DB, err)
		}
		s, err := iavl.NewCommitStore(cfg.DB, "swaps")
		if err != nil {
			return nil, err
		}
		s.SetLogger(logger)
		if err := s.LoadLatestVersion(); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case backendBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.DB), 0755); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "cannot create %q: %s", filepath.Dir(cfg.DB), err)
		}
		s, err := boltdb.Open(cfg.DB)
		if err != nil {
			return nil, err
		}
		s.SetLogger(logger)
		return s, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown backend %q", cfg.Backend)
	}
}

// readOnly calls fn with a view of the latest committed state. Nothing
// written through the view is persisted.
func readOnly(cfg *config, logger log.Logger, fn func(htlc.ReadOnlyKVStore) error) error {
	db, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	view := db.CacheWrap()
	defer view.Discard()
	return fn(view)
}
