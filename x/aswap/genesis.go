package aswap

import (
	"io"
	"io/ioutil"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
	"github.com/tendermint/tendermint/libs/log"
)

// Genesis is the serializable state of all swaps.
type Genesis struct {
	Swaps []GenesisSwap `json:"swaps"`
}

// GenesisSwap is a swap together with its identifier.
type GenesisSwap struct {
	ID   string     `json:"id"`
	Swap AtomicSwap `json:"swap"`
}

// ImportGenesis creates all swaps declared in the genesis. Swap identifiers
// cannot be reused: if a swap with the same identifier already exists the
// import fails with ErrDuplicate.
//
// Import is not atomic. Run it on a cache wrap and discard the cache on
// failure.
func ImportGenesis(db htlc.KVStore, g *Genesis, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	b := NewBucket()
	for i, gs := range g.Swaps {
		if gs.ID == "" {
			return errors.Wrapf(errors.ErrEmpty, "swap %d: id", i)
		}
		switch has, err := b.Has(db, gs.ID); {
		case err != nil:
			return errors.Wrapf(err, "swap %q", gs.ID)
		case has:
			return errors.Wrapf(errors.ErrDuplicate, "swap %q", gs.ID)
		}
		swap := gs.Swap
		if err := b.Save(db, gs.ID, &swap); err != nil {
			return err
		}
		logger.Debug("swap created", "id", gs.ID, "expires", swap.Expires)
	}
	logger.Info("genesis imported", "swaps", len(g.Swaps))
	return nil
}

// ExportGenesis returns all stored swaps in ascending identifier order. The
// store is read in pages of given size.
func ExportGenesis(db htlc.ReadOnlyKVStore, pageSize int) (*Genesis, error) {
	if pageSize <= 0 {
		return nil, errors.Wrapf(errors.ErrInput, "page size must be positive, got %d", pageSize)
	}
	b := NewBucket()
	g := &Genesis{Swaps: []GenesisSwap{}}
	var start *orm.Bound
	for {
		ids, err := b.AllSwapIDs(db, start, pageSize)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			swap, err := b.Get(db, id)
			if err != nil {
				return nil, errors.Wrapf(err, "swap %q", id)
			}
			if swap == nil {
				return nil, errors.Wrapf(errors.ErrNotFound, "swap %q", id)
			}
			g.Swaps = append(g.Swaps, GenesisSwap{ID: id, Swap: *swap})
		}
		if len(ids) < pageSize {
			return g, nil
		}
		start = orm.Exclusive([]byte(ids[len(ids)-1]))
	}
}

// ReadGenesis decodes the JSON representation of the genesis.
func ReadGenesis(r io.Reader) (*Genesis, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var g Genesis
	if err := cdc.UnmarshalJSON(raw, &g); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &g, nil
}

// WriteGenesis writes the indented JSON representation of the genesis.
func WriteGenesis(w io.Writer, g *Genesis) error {
	raw, err := cdc.MarshalJSONIndent(g, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	if _, err := w.Write(append(raw, '\n')); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
