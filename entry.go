package listpack

import (
	"math"
	"strconv"
)

const (
	headerSize = 6 // total_bytes(u32) + count(u16), little-endian
	terminator = 0xFF

	// countUnknown is the saturated header count, meaning the exact
	// count must be recomputed by a full scan.
	countUnknown = math.MaxUint16

	encoding7BitUint     = 0x00 // 0xxxxxxx: uint 0..127 inline
	encoding7BitUintMask = 0x80
	encoding13BitInt     = 0xC0 // 110xxxxx + 1 byte: int -4096..4095
	encoding13BitIntMask = 0xE0
	encodingStr          = 0xF0 // + uvarint length + payload
	encoding16BitInt     = 0xF1 // + 2 bytes LE
	encoding24BitInt     = 0xF2 // + 3 bytes LE
	encoding32BitInt     = 0xF3 // + 4 bytes LE
	encoding64BitInt     = 0xF4 // + 8 bytes LE
)

// intWidths maps encoding16BitInt..encoding64BitInt to payload widths.
var intWidths = [4]int{2, 3, 4, 8}

// entry is a transient zero-copy view of one encoded element. It borrows
// from the ListPack buffer and is never stored or retained across mutations.
type entry struct {
	pos      int // offset of the header byte
	headLen  int // header byte + optional length varint
	dataLen  int // string payload bytes (0 for integers)
	trailLen int // back-length trailer bytes
	isInt    bool
	ival     int64
	str      []byte // string payload, nil for integers
}

func (e entry) size() int { return e.headLen + e.dataLen + e.trailLen }

func (e entry) end() int { return e.pos + e.size() }

// value renders the entry into its canonical string form, appending to dst.
func (e entry) value(dst []byte) []byte {
	if e.isInt {
		return strconv.AppendInt(dst, e.ival, 10)
	}
	return append(dst, e.str...)
}

// appendEntry encodes data as one entry at the end of dst: header, payload,
// then the byte-reversed back-length trailer covering header + payload.
// Canonical decimal strings are stored in the smallest integer class that
// represents them exactly.
func appendEntry(dst []byte, data string) []byte {
	before := len(dst)
	if v, ok := parseInt(data); ok {
		dst = appendInt(dst, v)
	} else {
		dst = append(dst, encodingStr)
		dst = appendUvarint(dst, len(data), false)
		dst = append(dst, data...)
	}
	return appendUvarint(dst, len(dst)-before, true)
}

func appendInt(dst []byte, v int64) []byte {
	switch {
	case v >= 0 && v <= 127:
		return append(dst, byte(v))
	case v >= -4096 && v <= 4095:
		u := uint16(v) & 0x1FFF
		return append(dst, encoding13BitInt|byte(u>>8), byte(u))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return append(dst, encoding16BitInt, byte(v), byte(v>>8))
	case v >= -(1<<23) && v <= 1<<23-1:
		return append(dst, encoding24BitInt, byte(v), byte(v>>8), byte(v>>16))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return append(dst, encoding32BitInt,
			byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	default:
		return append(dst, encoding64BitInt,
			byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
			byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
	}
}

// readInt decodes a little-endian two's-complement integer of len(b) bytes.
func readInt(b []byte) int64 {
	var u uint64
	for i, c := range b {
		u |= uint64(c) << (8 * i)
	}
	s := 64 - 8*len(b)
	return int64(u<<s) >> s
}

// decodeEntry reads the entry whose header byte sits at pos. The header
// byte, the payload bounds and the back-length trailer are all verified
// before the view is returned.
func (lp *ListPack) decodeEntry(pos int) (entry, error) {
	data := lp.data
	if pos < headerSize || pos >= len(data)-1 {
		return entry{}, ErrCorruptEntry
	}
	e := entry{pos: pos}
	b := data[pos]
	switch {
	case b&encoding7BitUintMask == encoding7BitUint:
		e.isInt, e.ival, e.headLen = true, int64(b), 1

	case b&encoding13BitIntMask == encoding13BitInt:
		if pos+2 > len(data)-1 {
			return entry{}, ErrCorruptEntry
		}
		u := uint16(b&0x1F)<<8 | uint16(data[pos+1])
		v := int64(u)
		if u >= 1<<12 {
			v -= 1 << 13
		}
		e.isInt, e.ival, e.headLen = true, v, 2

	case b == encodingStr:
		slen, n, err := uvarint(data[pos+1 : len(data)-1])
		if err != nil {
			return entry{}, err
		}
		e.headLen = 1 + n
		e.dataLen = int(slen)
		if pos+e.headLen+e.dataLen > len(data)-1 {
			return entry{}, ErrCorruptEntry
		}
		e.str = data[pos+e.headLen : pos+e.headLen+e.dataLen]

	case b >= encoding16BitInt && b <= encoding64BitInt:
		w := intWidths[b-encoding16BitInt]
		if pos+1+w > len(data)-1 {
			return entry{}, ErrCorruptEntry
		}
		e.isInt, e.ival, e.headLen = true, readInt(data[pos+1:pos+1+w]), 1+w

	default:
		return entry{}, ErrCorruptEntry
	}

	payload := e.headLen + e.dataLen
	e.trailLen = SizeUvarint(uint64(payload))
	if e.end() > len(data)-1 {
		return entry{}, ErrCorruptEntry
	}
	back, n, err := uvarintReverse(data[:e.end()])
	if err != nil {
		return entry{}, err
	}
	if n != e.trailLen || int(back) != payload {
		return entry{}, ErrCorruptEntry
	}
	return e, nil
}

// decodeEntryReverse reads the entry whose last byte sits at end-1: the
// back-length trailer locates the header byte without a forward scan, then
// the entry is re-decoded forward and cross-checked.
func (lp *ListPack) decodeEntryReverse(end int) (entry, error) {
	if end <= headerSize || end > len(lp.data)-1 {
		return entry{}, ErrCorruptEntry
	}
	back, n, err := uvarintReverse(lp.data[:end])
	if err != nil {
		return entry{}, err
	}
	pos := end - n - int(back)
	if pos < headerSize {
		return entry{}, ErrCorruptEntry
	}
	e, err := lp.decodeEntry(pos)
	if err != nil {
		return entry{}, err
	}
	if e.end() != end {
		return entry{}, ErrCorruptEntry
	}
	return e, nil
}

// parseInt reports whether s is the canonical decimal form of an int64.
// Only canonical forms round-trip through the integer classes, so "+5",
// "007", "-0" and anything with spaces stay strings.
func parseInt(s string) (int64, bool) {
	if len(s) == 0 || len(s) > 20 || s[0] == '+' {
		return 0, false
	}
	body := s
	if s[0] == '-' {
		body = s[1:]
		if body == "0" {
			return 0, false
		}
	}
	if len(body) == 0 || (len(body) > 1 && body[0] == '0') {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
