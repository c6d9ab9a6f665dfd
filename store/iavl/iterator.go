package iavl

import (
	"sync"

	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/store"
	"github.com/tendermint/iavl"
)

// lazyIterator walks the tree in a separate goroutine and hands over one
// pair at a time, so that only consumed entries are loaded.
type lazyIterator struct {
	read <-chan store.Model
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

var _ store.Iterator = (*lazyIterator)(nil)

func newLazyIterator(tree *iavl.MutableTree, start, end []byte, ascending bool) *lazyIterator {
	read := make(chan store.Model)
	it := &lazyIterator{
		read: read,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(it.done)
		defer close(read)
		tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
			return !it.add(read, key, value)
		})
	}()
	return it
}

// add passes a pair to the reader. It returns false if the iterator was
// released and the walk must stop.
func (i *lazyIterator) add(read chan<- store.Model, key, value []byte) bool {
	select {
	case read <- store.Pair(key, value):
		return true
	case <-i.stop:
		return false
	}
}

func (i *lazyIterator) Next() (key, value []byte, err error) {
	m, ok := <-i.read
	if !ok {
		return nil, nil, errors.ErrIteratorDone
	}
	return m.Key, m.Value, nil
}

// Release blocks until the tree walk is stopped.
func (i *lazyIterator) Release() {
	i.once.Do(func() {
		close(i.stop)
		<-i.done
	})
}
