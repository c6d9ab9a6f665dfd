package orm

import (
	"fmt"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest/assert"
	"github.com/iov-one/htlc/store"
)

type testModel struct {
	Name string
}

func (m *testModel) Marshal() ([]byte, error) { return []byte(m.Name), nil }

func (m *testModel) Unmarshal(raw []byte) error {
	m.Name = string(raw)
	return nil
}

func (m *testModel) Validate() error {
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func TestNewBucketName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("ab") })
	assert.Panics(t, func() { NewBucket("Upper") })
	assert.Panics(t, func() { NewBucket("with:colon") })
	assert.Equal(t, "atomic_swap", NewBucket("atomic_swap").Name())
}

func TestDBKeyDoesNotShareMemory(t *testing.T) {
	b := NewBucket("four")
	k1 := b.DBKey([]byte("ABC"))
	k2 := b.DBKey([]byte("LED"))
	assert.Equal(t, []byte("four:ABC"), k1)
	assert.Equal(t, []byte("four:LED"), k2)
}

func TestBucketCRUD(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("things")

	var m testModel
	err := b.Load(db, []byte("a"), &m)
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Nil(t, b.Save(db, []byte("a"), &testModel{Name: "first"}))
	assert.Nil(t, b.Load(db, []byte("a"), &m))
	assert.Equal(t, "first", m.Name)

	// overwrite
	assert.Nil(t, b.Save(db, []byte("a"), &testModel{Name: "second"}))
	assert.Nil(t, b.Load(db, []byte("a"), &m))
	assert.Equal(t, "second", m.Name)

	has, err := b.Has(db, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)

	raw, err := db.Get([]byte("things:a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("second"), raw)

	assert.Nil(t, b.Delete(db, []byte("a")))
	assert.Nil(t, b.Delete(db, []byte("a")))
	has, err = b.Has(db, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	assert.IsErr(t, errors.ErrEmpty, b.Save(db, []byte("b"), &testModel{}))
	assert.IsErr(t, errors.ErrEmpty, b.Save(db, nil, &testModel{Name: "x"}))
}

func TestBucketKeys(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("things")
	other := NewBucket("thing")
	after := NewBucket("thingz")

	for _, k := range []string{"c", "a", "b", "d"} {
		assert.Nil(t, b.Save(db, []byte(k), &testModel{Name: k}))
	}
	// keys of other buckets must never be listed
	assert.Nil(t, other.Save(db, []byte("s:x"), &testModel{Name: "x"}))
	assert.Nil(t, after.Save(db, []byte("a"), &testModel{Name: "x"}))

	cases := map[string]struct {
		start   *Bound
		limit   int
		want    []string
		wantErr *errors.Error
	}{
		"all":                   {limit: 10, want: []string{"a", "b", "c", "d"}},
		"limited":               {limit: 2, want: []string{"a", "b"}},
		"exclusive":             {start: Exclusive([]byte("b")), limit: 10, want: []string{"c", "d"}},
		"inclusive":             {start: Inclusive([]byte("b")), limit: 2, want: []string{"b", "c"}},
		"exclusive missing key": {start: Exclusive([]byte("bb")), limit: 10, want: []string{"c", "d"}},
		"after last key":        {start: Exclusive([]byte("d")), limit: 10, want: []string{}},
		"zero limit":            {limit: 0, want: []string{}},
		"negative limit":        {limit: -1, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			keys, err := b.Keys(db, tc.start, tc.limit)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			got := make([]string, len(keys))
			for i, k := range keys {
				got[i] = string(k)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBucketKeysReadsAtMostLimit(t *testing.T) {
	db := &countingStore{CacheableKVStore: store.MemStore()}
	b := NewBucket("things")
	for i := 0; i < 50; i++ {
		assert.Nil(t, b.Save(db, []byte(fmt.Sprintf("%02d", i)), &testModel{Name: "x"}))
	}

	keys, err := b.Keys(db, nil, 5)
	assert.Nil(t, err)
	assert.Equal(t, 5, len(keys))
	assert.Equal(t, 5, db.reads)

	db.reads, db.iterators = 0, 0
	keys, err = b.Keys(db, nil, 0)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))
	assert.Equal(t, 0, db.iterators)
}

func TestBucketKeysStorageFailure(t *testing.T) {
	db := &countingStore{CacheableKVStore: store.MemStore(), failAfter: 2}
	b := NewBucket("things")
	for _, k := range []string{"a", "b", "c"} {
		assert.Nil(t, b.Save(db, []byte(k), &testModel{Name: k}))
	}

	keys, err := b.Keys(db, nil, 10)
	assert.IsErr(t, errors.ErrDatabase, err)
	if keys != nil {
		t.Fatalf("partial result returned: %q", keys)
	}
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("abd"), prefixEnd([]byte("abc")))
	assert.Equal(t, []byte("b"), prefixEnd([]byte{'a', 0xff}))
	assert.Nil(t, prefixEnd([]byte{0xff, 0xff}))
}

// countingStore counts the pairs read through its iterators and can
// simulate a storage failure.
type countingStore struct {
	store.CacheableKVStore
	reads     int
	iterators int
	// failAfter makes iterators fail after that many reads, if set.
	failAfter int
}

func (c *countingStore) Iterator(start, end []byte) (htlc.Iterator, error) {
	c.iterators++
	it, err := c.CacheableKVStore.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &countingIterator{Iterator: it, store: c}, nil
}

type countingIterator struct {
	htlc.Iterator
	store *countingStore
}

func (i *countingIterator) Next() ([]byte, []byte, error) {
	if i.store.failAfter > 0 && i.store.reads >= i.store.failAfter {
		return nil, nil, errors.Wrap(errors.ErrDatabase, "disk on fire")
	}
	key, value, err := i.Iterator.Next()
	if err == nil {
		i.store.reads++
	}
	return key, value, err
}
