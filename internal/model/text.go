package model

// Text returns the tweet body, or "" when absent.
func (t *Tweet) Text() string {
	if t.FullText == nil {
		return ""
	}
	return *t.FullText
}

// At returns the rune at position i of the tweet body as a string, or
// "" when i is past the end. A negative index is a programmer error
// and panics.
func (t *Tweet) At(i int) string {
	if i < 0 {
		panic("tweet text index must be non-negative")
	}
	r := []rune(t.Text())
	if i >= len(r) {
		return ""
	}
	return string(r[i])
}

// Slice returns the runes of the tweet body in [start, stop), clamped
// to the text length. Negative bounds panic, matching At.
func (t *Tweet) Slice(start, stop int) string {
	if start < 0 || stop < 0 {
		panic("tweet text bounds must be non-negative")
	}
	r := []rune(t.Text())
	if start > len(r) {
		start = len(r)
	}
	if stop > len(r) {
		stop = len(r)
	}
	if start >= stop {
		return ""
	}
	return string(r[start:stop])
}
