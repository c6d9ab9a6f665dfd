package orm

// prefixEnd returns the first key that sorts after every key starting with
// given prefix. It returns nil if there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
