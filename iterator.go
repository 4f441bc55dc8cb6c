package listpack

// Iterator is a read-only cursor over a ListPack, walking entries lazily in
// either direction. Mutating the pack while an iterator is live invalidates
// every position the iterator has computed; create a fresh one instead.
type Iterator struct {
	lp      *ListPack
	pos     int
	scratch []byte
}

// Iterator returns a cursor positioned at the first entry.
func (lp *ListPack) Iterator() *Iterator {
	return &Iterator{lp: lp, pos: headerSize}
}

// SeekFirst rewinds the cursor to the first entry.
func (it *Iterator) SeekFirst() *Iterator {
	it.pos = headerSize
	return it
}

// SeekLast moves the cursor past the last entry, ready for Prev.
func (it *Iterator) SeekLast() *Iterator {
	it.pos = len(it.lp.data) - 1
	return it
}

func (it *Iterator) IsFirst() bool { return it.pos == headerSize }

func (it *Iterator) IsEnd() bool { return it.pos >= len(it.lp.data)-1 }

// Next decodes the entry under the cursor and advances past it. The
// returned slice is only valid until the next call. Returns nil at the end.
func (it *Iterator) Next() ([]byte, error) {
	if it.IsEnd() {
		return nil, nil
	}
	e, err := it.lp.decodeEntry(it.pos)
	if err != nil {
		return nil, err
	}
	it.pos = e.end()
	return it.bytes(e), nil
}

// Prev decodes the entry ending just before the cursor and steps onto it.
// Returns nil at the head.
func (it *Iterator) Prev() ([]byte, error) {
	if it.IsFirst() {
		return nil, nil
	}
	e, err := it.lp.decodeEntryReverse(it.pos)
	if err != nil {
		return nil, err
	}
	it.pos = e.pos
	return it.bytes(e), nil
}

// bytes returns the entry value, zero-copy for strings. Integer entries are
// rendered into a scratch buffer reused across calls.
func (it *Iterator) bytes(e entry) []byte {
	if e.isInt {
		it.scratch = e.value(it.scratch[:0])
		return it.scratch
	}
	return e.str
}
