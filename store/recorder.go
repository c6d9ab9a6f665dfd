package store

// RecordingStore wraps a store and remembers every key changed through it,
// including the writes that go through its batches. It is used to report
// what an operation changed, for example during a dry run.
type RecordingStore struct {
	KVStore
	// changes is a map from key to the written value, nil for delete
	changes map[string][]byte
}

var _ KVStore = (*RecordingStore)(nil)

// NewRecordingStore initializes a recording store wrapping given store.
func NewRecordingStore(db KVStore) *RecordingStore {
	return &RecordingStore{
		KVStore: db,
		changes: make(map[string][]byte),
	}
}

// KVPairs returns all recorded changes. Key is the store key that changed.
// Value is the value written, or nil for delete.
func (r *RecordingStore) KVPairs() map[string][]byte {
	return r.changes
}

// Set records the change while performing it.
func (r *RecordingStore) Set(key, value []byte) error {
	if err := r.KVStore.Set(key, value); err != nil {
		return err
	}
	r.changes[string(key)] = value
	return nil
}

// Delete records the change while performing it.
func (r *RecordingStore) Delete(key []byte) error {
	if err := r.KVStore.Delete(key); err != nil {
		return err
	}
	r.changes[string(key)] = nil
	return nil
}

// NewBatch makes sure all batched writes are recorded as well.
func (r *RecordingStore) NewBatch() Batch {
	return &recorderBatch{
		changes: r.changes,
		b:       r.KVStore.NewBatch(),
	}
}

type recorderBatch struct {
	changes map[string][]byte
	b       Batch
}

var _ Batch = (*recorderBatch)(nil)

func (r *recorderBatch) Set(key, value []byte) error {
	r.changes[string(key)] = value
	return r.b.Set(key, value)
}

func (r *recorderBatch) Delete(key []byte) error {
	r.changes[string(key)] = nil
	return r.b.Delete(key)
}

func (r *recorderBatch) Write() error {
	return r.b.Write()
}
