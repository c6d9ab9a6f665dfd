package htlc

import (
	"regexp"
	"time"

	"github.com/iov-one/htlc/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	// DefaultLogger is used for all block info that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// BlockInfo is the deadline clock. It carries the height and the time of the
// block that is currently processed, as declared by the host chain.
type BlockInfo struct {
	header  abci.Header
	chainID string
	logger  log.Logger
}

// NewBlockInfo creates a BlockInfo struct with current context of where it is being executed
func NewBlockInfo(header abci.Header, chainID string, logger log.Logger) (BlockInfo, error) {
	if !IsValidChainID(chainID) {
		return BlockInfo{}, errors.Wrap(errors.ErrInput, "chainID invalid")
	}
	if logger == nil {
		logger = DefaultLogger
	}
	return BlockInfo{
		header:  header,
		chainID: chainID,
		logger:  logger,
	}, nil
}

func (b BlockInfo) Header() abci.Header {
	return b.header
}

func (b BlockInfo) ChainID() string {
	return b.chainID
}

func (b BlockInfo) Height() int64 {
	return b.header.Height
}

func (b BlockInfo) BlockTime() time.Time {
	return b.header.Time
}

func (b BlockInfo) UnixTime() UnixTime {
	return AsUnixTime(b.header.Time)
}

func (b BlockInfo) Logger() log.Logger {
	if b.logger == nil {
		return DefaultLogger
	}
	return b.logger
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func (b BlockInfo) WithLogInfo(keyvals ...interface{}) BlockInfo {
	b.logger = b.Logger().With(keyvals...)
	return b
}

// IsExpired returns true if given time is in the past as compared to the "now"
// as declared for the block. Expiration is inclusive, meaning that if current
// time is equal to the expiration time than this function returns true.
func (b BlockInfo) IsExpired(t UnixTime) bool {
	return t <= b.UnixTime()
}

// IsHeightReached returns true if the block height is equal to or greater
// than given height.
func (b BlockInfo) IsHeightReached(height int64) bool {
	return height <= b.header.Height
}
