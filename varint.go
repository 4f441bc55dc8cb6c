package listpack

import (
	"encoding/binary"
	"math"
	"math/bits"
	"slices"

	"golang.org/x/exp/constraints"
)

// appendUvarint appends n as an uvarint. With reverse, the encoded bytes are
// written back-to-front so the value can be decoded scanning backward from
// the end of the buffer (the back-length trailer encoding).
func appendUvarint[T constraints.Integer](b []byte, n T, reverse bool) []byte {
	if !reverse {
		return binary.AppendUvarint(b, uint64(n))
	}
	before := len(b)
	b = binary.AppendUvarint(b, uint64(n))
	if len(b)-before > 1 {
		slices.Reverse(b[before:])
	}
	return b
}

// uvarint decodes an uvarint from the start of buf, returning the value and
// the number of bytes consumed. Lengths are bounded to 32 bits.
func uvarint(buf []byte) (uint64, int, error) {
	x, n := binary.Uvarint(buf)
	if n <= 0 || x > math.MaxUint32 {
		return 0, 0, ErrMalformedVarint
	}
	return x, n, nil
}

// uvarintReverse decodes a reversed uvarint ending at the last byte of buf.
func uvarintReverse(buf []byte) (uint64, int, error) {
	var x uint64
	var s uint
	for i := range buf {
		b := buf[len(buf)-1-i]
		if b < 0x80 {
			x |= uint64(b) << s
			if x > math.MaxUint32 {
				return 0, 0, ErrMalformedVarint
			}
			return x, i + 1, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
		if s > 35 {
			return 0, 0, ErrMalformedVarint
		}
	}
	return 0, 0, ErrMalformedVarint
}

// SizeUvarint returns the encoded byte length of x.
// See https://go-review.googlesource.com/c/go/+/572196/1/src/encoding/binary/varint.go#174
func SizeUvarint(x uint64) int {
	return int(9*uint32(bits.Len64(x))+64) / 64
}
