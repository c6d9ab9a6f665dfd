package orm

// Bound is the starting point of a key listing.
type Bound struct {
	key       []byte
	exclusive bool
}

// Exclusive returns a bound that starts right after given key. The key
// itself is never listed.
func Exclusive(key []byte) *Bound {
	return &Bound{key: key, exclusive: true}
}

// Inclusive returns a bound that starts at given key.
func Inclusive(key []byte) *Bound {
	return &Bound{key: key}
}

// Key returns the key of the bound.
func (b *Bound) Key() []byte {
	return b.key
}

// IsExclusive returns true if the bound key is excluded from the listing.
func (b *Bound) IsExclusive() bool {
	return b.exclusive
}
