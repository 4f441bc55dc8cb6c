// Package listpack implements a flat-buffer encoded sequence container, a
// space-efficient alternative to a pointer-linked list for short lists of
// strings and integers.
package listpack

import (
	"encoding/binary"
	"math"
	"slices"
	"strconv"

	"github.com/klauspost/compress/zstd"
	"github.com/xgzlucario/listpack/internal/pkg"
)

// maxListPackSize is the QuickList node split threshold.
var maxListPackSize = 8 * 1024

// maxTotalBytes bounds the buffer to what the u32 header field can record.
var maxTotalBytes = math.MaxUint32

var (
	bpool      = pkg.NewBufferPool()
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// SetMaxListPackSize sets the encoded-size threshold at which QuickList
// starts a new node.
func SetMaxListPackSize(s int) {
	maxListPackSize = s
}

// ListPack is a list of strings serialization format on Redis.
/*
	ListPack data content:
	+-------------------+------------+--------+--------+-----+--------+------+
	| total_bytes (u32) | count(u16) | entry0 | entry1 | ... | entryN | 0xFF |
	+-------------------+------------+--------+--------+-----+--------+------+
	    |
	  entry content:
	+--------------+-------------+---------------------+
	|    header    |     data    |      entry_len      |
	+--------------+-------------+---------------------+
	|<- 1B+varint->|<- dataLen ->|<- varint(reverse) ->|
	|<-------- entry_len ------->|

	The header byte selects the encoding class: small integers are stored
	inline in the smallest class that fits, strings carry a varint length.
	The reversed entry_len trailer makes it fast to iterate from both sides.

	count saturates at 0xFFFF, meaning the exact count must be recomputed
	by a full scan.
*/
type ListPack struct {
	compress bool
	data     []byte
}

// New creates an empty listpack: header, terminator, no entries.
func New() *ListPack {
	data := bpool.Get(32)[:headerSize+1]
	data[headerSize] = terminator
	lp := &ListPack{data: data}
	lp.setTotalBytes(len(data))
	lp.setCount(0)
	return lp
}

func (lp *ListPack) totalBytes() int {
	return int(binary.LittleEndian.Uint32(lp.data[0:4]))
}

func (lp *ListPack) setTotalBytes(n int) {
	binary.LittleEndian.PutUint32(lp.data[0:4], uint32(n))
}

func (lp *ListPack) count() int {
	return int(binary.LittleEndian.Uint16(lp.data[4:6]))
}

// setCount writes n to the header, saturating at the unknown sentinel.
func (lp *ListPack) setCount(n int) {
	if n > countUnknown {
		n = countUnknown
	}
	binary.LittleEndian.PutUint16(lp.data[4:6], uint16(n))
}

// updateCount adjusts the header count by delta. Once saturated it stays
// unknown until Len rescans, so common mutations never pay an O(n) walk.
func (lp *ListPack) updateCount(delta int) {
	if c := lp.count(); c != countUnknown {
		lp.setCount(c + delta)
	}
}

// splice is the single mutation path: remove removeLen bytes at pos, insert
// ins in their place, and rewrite total_bytes, so header and content never
// disagree. Checks run before any byte moves.
func (lp *ListPack) splice(pos, removeLen int, ins []byte) error {
	if len(lp.data)-removeLen+len(ins) > maxTotalBytes {
		return ErrBufferOverflow
	}
	lp.data = slices.Replace(lp.data, pos, pos+removeLen, ins...)
	lp.setTotalBytes(len(lp.data))
	return nil
}

// Len returns the number of entries. O(1) while the header count is exact.
// A saturated count triggers one forward rescan, and the exact value is
// written back as soon as it fits the header field again.
func (lp *ListPack) Len() int {
	c := lp.count()
	if c != countUnknown {
		return c
	}
	var n int
	for it := lp.Iterator(); !it.IsEnd(); n++ {
		if _, err := it.Next(); err != nil {
			break
		}
	}
	if n < countUnknown {
		lp.setCount(n)
	}
	return n
}

// LPush inserts vals at the head, keeping their given order. Every existing
// byte shifts, making this the expensive direction.
func (lp *ListPack) LPush(vals ...string) error {
	return lp.push(headerSize, vals)
}

// RPush appends vals at the tail. Only the terminator shifts.
func (lp *ListPack) RPush(vals ...string) error {
	return lp.push(len(lp.data)-1, vals)
}

func (lp *ListPack) push(pos int, vals []string) error {
	alloc := bpool.Get(maxListPackSize)[:0]
	for _, v := range vals {
		alloc = appendEntry(alloc, v)
	}
	err := lp.splice(pos, 0, alloc)
	bpool.Put(alloc)
	if err != nil {
		return err
	}
	lp.updateCount(len(vals))
	return nil
}

// Insert places val immediately before the entry at index. index == Len()
// appends, negative indexes address from the tail.
func (lp *ListPack) Insert(index int, val string) error {
	pos, err := lp.seek(index, true)
	if err != nil {
		return err
	}
	alloc := appendEntry(bpool.Get(64)[:0], val)
	err = lp.splice(pos, 0, alloc)
	bpool.Put(alloc)
	if err != nil {
		return err
	}
	lp.updateCount(1)
	return nil
}

// Get returns a copy of the value at index (-1 is the last entry).
func (lp *ListPack) Get(index int) (string, error) {
	e, err := lp.entryAt(index)
	if err != nil {
		return "", err
	}
	if e.isInt {
		return strconv.FormatInt(e.ival, 10), nil
	}
	return string(e.str), nil
}

// Set replaces the value at index in place via a single splice.
func (lp *ListPack) Set(index int, val string) error {
	e, err := lp.entryAt(index)
	if err != nil {
		return err
	}
	alloc := appendEntry(bpool.Get(64)[:0], val)
	err = lp.splice(e.pos, e.size(), alloc)
	bpool.Put(alloc)
	return err
}

// Remove deletes the entry at index and returns its value.
func (lp *ListPack) Remove(index int) (string, error) {
	e, err := lp.entryAt(index)
	if err != nil {
		return "", err
	}
	var val string
	if e.isInt {
		val = strconv.FormatInt(e.ival, 10)
	} else {
		val = string(e.str)
	}
	if err := lp.splice(e.pos, e.size(), nil); err != nil {
		return "", err
	}
	lp.updateCount(-1)
	return val, nil
}

// LPop removes and returns the first entry.
func (lp *ListPack) LPop() (string, bool) {
	v, err := lp.Remove(0)
	return v, err == nil
}

// RPop removes and returns the last entry.
func (lp *ListPack) RPop() (string, bool) {
	v, err := lp.Remove(-1)
	return v, err == nil
}

// Range calls fn for each value from head to tail until fn returns true.
// The data slice is only valid during the call.
func (lp *ListPack) Range(fn func(data []byte) (stop bool)) error {
	it := lp.Iterator()
	for !it.IsEnd() {
		data, err := it.Next()
		if err != nil {
			return err
		}
		if fn(data) {
			return nil
		}
	}
	return nil
}

// RevRange is Range from tail to head.
func (lp *ListPack) RevRange(fn func(data []byte) (stop bool)) error {
	it := lp.Iterator().SeekLast()
	for !it.IsFirst() {
		data, err := it.Prev()
		if err != nil {
			return err
		}
		if fn(data) {
			return nil
		}
	}
	return nil
}

// entryAt resolves index and decodes the entry there.
func (lp *ListPack) entryAt(index int) (entry, error) {
	pos, err := lp.seek(index, false)
	if err != nil {
		return entry{}, err
	}
	return lp.decodeEntry(pos)
}

// seek resolves a logical index to the byte offset of that entry, scanning
// from the nearer end. Negative indexes address from the tail. With
// allowEnd, index == Len() resolves to the terminator offset.
func (lp *ListPack) seek(index int, allowEnd bool) (int, error) {
	n := lp.Len()
	if index < 0 {
		index += n
	}
	limit := n
	if allowEnd {
		limit = n + 1
	}
	if index < 0 || index >= limit {
		return 0, ErrIndexOutOfRange
	}
	if index <= n/2 {
		pos := headerSize
		for ; index > 0; index-- {
			e, err := lp.decodeEntry(pos)
			if err != nil {
				return 0, err
			}
			pos = e.end()
		}
		return pos, nil
	}
	pos := len(lp.data) - 1
	for ; index < n; index++ {
		e, err := lp.decodeEntryReverse(pos)
		if err != nil {
			return 0, err
		}
		pos = e.pos
	}
	return pos, nil
}

// Compress compresses the buffer with zstd. Every other operation requires
// a Decompress first.
func (lp *ListPack) Compress() {
	if lp.compress {
		return
	}
	dst := encoder.EncodeAll(lp.data, bpool.Get(len(lp.data))[:0])
	bpool.Put(lp.data)
	lp.data = slices.Clip(dst)
	lp.compress = true
}

// Decompress restores a compressed buffer.
func (lp *ListPack) Decompress() {
	if !lp.compress {
		return
	}
	lp.data, _ = decoder.DecodeAll(lp.data, bpool.Get(maxListPackSize)[:0])
	lp.compress = false
}
