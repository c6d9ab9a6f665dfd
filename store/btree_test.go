package store

import (
	"testing"

	"github.com/iov-one/htlc/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreSuite(t *testing.T) {
	NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	}).Run(t)
}

func TestBTreeCacheableSuite(t *testing.T) {
	NewTestSuite(func() (CacheableKVStore, func()) {
		// devnull is a black hole, writes to it are lost
		devnull := BTreeCacheable{EmptyKVStore{}}
		return devnull.CacheWrap(), func() {}
	}).Run(t)
}

// TestNestedCacheWrap layers caches three levels deep and makes sure that
// every level only sees what was written to it or below it.
func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("k1"), []byte("base")))

	mid := base.CacheWrap()
	require.NoError(t, mid.Set([]byte("k2"), []byte("mid")))

	top := mid.CacheWrap()
	require.NoError(t, top.Set([]byte("k3"), []byte("top")))
	require.NoError(t, top.Delete([]byte("k1")))

	assertKeys(t, top, "k2", "k3")
	assertKeys(t, mid, "k1", "k2")
	assertKeys(t, base, "k1")

	require.NoError(t, top.Write())
	assertKeys(t, mid, "k2", "k3")
	assertKeys(t, base, "k1")

	require.NoError(t, mid.Write())
	assertKeys(t, base, "k2", "k3")
}

func assertKeys(t *testing.T, kv ReadOnlyKVStore, want ...string) {
	t.Helper()
	it, err := kv.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Release()

	var got []string
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		got = append(got, string(key))
	}
	assert.Equal(t, want, got)
}

func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := randKeys(size, 8)
	vs := randKeys(size, 40)
	models := make([]Model, size)
	for i := 0; i < size; i++ {
		models[i] = Pair(ks[i], vs[i])
	}

	it := NewSliceIterator(models)
	for i := 0; i < size; i++ {
		key, value, err := it.Next()
		require.NoError(t, err)
		assert.Equal(t, ks[i], key)
		assert.Equal(t, vs[i], value)
	}
	_, _, err := it.Next()
	assert.True(t, errors.ErrIteratorDone.Is(err))

	released := NewSliceIterator(models)
	released.Release()
	_, _, err = released.Next()
	assert.True(t, errors.ErrIteratorDone.Is(err), "released iterator must be done")
}

func TestCacheIteratorReleaseRaceCondition(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("A")))
	cache := db.CacheWrap()

	it, err := cache.Iterator([]byte("a"), []byte("z"))
	require.NoError(t, err)
	// Release must be a synchronous operation.
	it.Release()
	require.NoError(t, db.Delete([]byte("a")))

	rit, err := cache.ReverseIterator([]byte("a"), []byte("z"))
	require.NoError(t, err)
	rit.Release()
	require.NoError(t, db.Set([]byte("b"), []byte("B")))
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	b := NewNonAtomicBatch(db)
	require.NoError(t, b.Set([]byte("a"), []byte("1")))
	require.NoError(t, b.Set([]byte("b"), []byte("2")))
	require.NoError(t, b.Delete([]byte("a")))
	assert.Len(t, b.ShowOps(), 3)

	// nothing is visible before write
	v, err := db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, b.Write())
	assert.Empty(t, b.ShowOps())
	assertKeys(t, db, "b")
}

func TestRecordingStore(t *testing.T) {
	db := NewRecordingStore(MemStore())
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Delete([]byte("b")))

	batch := db.NewBatch()
	require.NoError(t, batch.Set([]byte("c"), []byte("3")))
	require.NoError(t, batch.Write())

	want := map[string][]byte{
		"a": []byte("1"),
		"b": nil,
		"c": []byte("3"),
	}
	assert.Equal(t, want, db.KVPairs())
	assertKeys(t, db, "a", "c")
}
