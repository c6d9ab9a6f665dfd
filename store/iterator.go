package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/iov-one/htlc/errors"
)

// btreeIter streams btree items from a walking goroutine. The btree can be
// modified only after the iterator is released.
type btreeIter struct {
	read <-chan btree.Item
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newBtreeIter(walk func(btree.ItemIterator)) *btreeIter {
	read := make(chan btree.Item)
	iter := &btreeIter{
		read: read,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(iter.done)
		defer close(read)
		walk(func(item btree.Item) bool {
			select {
			case read <- item:
				return true
			case <-iter.stop:
				return false
			}
		})
	}()
	return iter
}

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	return newBtreeIter(func(fn btree.ItemIterator) {
		switch {
		case start == nil && end == nil:
			bt.Ascend(fn)
		case start == nil:
			bt.AscendLessThan(bkey{end}, fn)
		case end == nil:
			bt.AscendGreaterOrEqual(bkey{start}, fn)
		default:
			bt.AscendRange(bkey{start}, bkey{end}, fn)
		}
	})
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	return newBtreeIter(func(fn btree.ItemIterator) {
		switch {
		case start == nil && end == nil:
			bt.Descend(fn)
		case start == nil:
			bt.DescendLessOrEqual(bkeyLess{end}, fn)
		case end == nil:
			bt.DescendGreaterThan(bkeyLess{start}, fn)
		default:
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, fn)
		}
	})
}

// next returns the following item or false if the walk is over.
func (b *btreeIter) next() (keyer, bool) {
	item, ok := <-b.read
	if !ok {
		return nil, false
	}
	return item.(keyer), true
}

// release blocks until the walking goroutine returns.
func (b *btreeIter) release() {
	b.once.Do(func() {
		close(b.stop)
		<-b.done
	})
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// cacheIterator merges the content of a cache layer with the content of the
// store below it. Cache entries overwrite parent entries with the same key
// and tombstones hide them.
type cacheIterator struct {
	cache   *btreeIter
	parent  Iterator
	reverse bool

	started bool

	cacheItem keyer
	cacheOK   bool

	parentKey   []byte
	parentValue []byte
	parentOK    bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(cache *btreeIter, parent Iterator, reverse bool) *cacheIterator {
	return &cacheIterator{
		cache:   cache,
		parent:  parent,
		reverse: reverse,
	}
}

// Next returns the following key-value pair, skipping everything deleted in
// the cache layer.
func (i *cacheIterator) Next() (key, value []byte, err error) {
	if !i.started {
		i.started = true
		i.advanceCache()
		if err := i.advanceParent(); err != nil {
			return nil, nil, err
		}
	}

	for {
		src := i.firstKey()
		switch src {
		case none:
			return nil, nil, errors.ErrIteratorDone
		case parent:
			key, value := i.parentKey, i.parentValue
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		}

		// Cache entry is first, possibly hiding the parent entry.
		item := i.cacheItem
		i.advanceCache()
		if src == both {
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
		}
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
	}
}

// Release releases the Iterator.
func (i *cacheIterator) Release() {
	i.parent.Release()
	i.cache.release()
}

func (i *cacheIterator) advanceCache() {
	i.cacheItem, i.cacheOK = i.cache.next()
}

func (i *cacheIterator) advanceParent() error {
	key, value, err := i.parent.Next()
	switch {
	case err == nil:
		i.parentKey, i.parentValue, i.parentOK = key, value, true
		return nil
	case errors.ErrIteratorDone.Is(err):
		i.parentKey, i.parentValue, i.parentOK = nil, nil, false
		return nil
	default:
		return err
	}
}

// firstKey selects the source that holds the next key in the iteration
// order.
func (i *cacheIterator) firstKey() source {
	if !i.parentOK {
		if !i.cacheOK {
			return none
		}
		return us
	}
	if !i.cacheOK {
		return parent
	}

	cmp := bytes.Compare(i.parentKey, i.cacheItem.Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}
