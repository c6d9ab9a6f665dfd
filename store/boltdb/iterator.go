package boltdb

import (
	"bytes"

	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/store"
	"go.etcd.io/bbolt"
)

// iterChunk is the number of pairs read in a single transaction.
const iterChunk = 32

// iterator reads the bucket in chunks, each in its own read transaction,
// so that no transaction is held open between calls. This allows writes
// after the iterator is released.
type iterator struct {
	s       *Store
	start   []byte
	end     []byte
	reverse bool

	buf  []store.Model
	done bool
}

var _ store.Iterator = (*iterator)(nil)

func (it *iterator) Next() (key, value []byte, err error) {
	if len(it.buf) == 0 && !it.done {
		if err := it.s.db.View(it.fill); err != nil {
			return nil, nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	if len(it.buf) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	m := it.buf[0]
	it.buf = it.buf[1:]
	return m.Key, m.Value, nil
}

func (it *iterator) Release() {
	it.buf = nil
	it.done = true
}

// fill loads the next chunk and narrows the remaining range.
func (it *iterator) fill(tx *bbolt.Tx) error {
	c := tx.Bucket(dataBucket).Cursor()
	if it.reverse {
		it.fillDescending(c)
	} else {
		it.fillAscending(c)
	}
	return nil
}

func (it *iterator) fillAscending(c *bbolt.Cursor) {
	var k, v []byte
	if it.start == nil {
		k, v = c.First()
	} else {
		k, v = c.Seek(it.start)
	}
	for ; k != nil && len(it.buf) < iterChunk; k, v = c.Next() {
		if it.end != nil && bytes.Compare(k, it.end) >= 0 {
			break
		}
		it.buf = append(it.buf, copyPair(k, v))
	}
	if len(it.buf) < iterChunk {
		it.done = true
		return
	}
	// Continue right after the last key.
	last := it.buf[len(it.buf)-1].Key
	it.start = append(append([]byte{}, last...), 0)
}

func (it *iterator) fillDescending(c *bbolt.Cursor) {
	var k, v []byte
	if it.end == nil {
		k, v = c.Last()
	} else if k, _ = c.Seek(it.end); k == nil {
		k, v = c.Last()
	} else {
		// Seek returns the first key not less than end.
		k, v = c.Prev()
	}
	for ; k != nil && len(it.buf) < iterChunk; k, v = c.Prev() {
		if it.start != nil && bytes.Compare(k, it.start) < 0 {
			break
		}
		it.buf = append(it.buf, copyPair(k, v))
	}
	if len(it.buf) < iterChunk {
		it.done = true
		return
	}
	// End is exclusive, continue below the last key.
	it.end = append([]byte{}, it.buf[len(it.buf)-1].Key...)
}

// copyPair copies memory owned by the transaction.
func copyPair(k, v []byte) store.Model {
	return store.Pair(append([]byte{}, k...), append([]byte{}, v...))
}
