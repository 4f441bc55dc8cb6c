package listpack

import (
	"errors"
)

var (
	// ErrMalformedVarint reports a truncated or overflowing varint.
	// The buffer was mutated outside this package, treat it as unusable.
	ErrMalformedVarint = errors.New("listpack: malformed varint")

	// ErrCorruptEntry reports an unrecognized entry header byte or an
	// entry exceeding the buffer bounds, treat the buffer as unusable.
	ErrCorruptEntry = errors.New("listpack: corrupt entry")

	// ErrIndexOutOfRange reports an index that does not resolve to an
	// existing entry.
	ErrIndexOutOfRange = errors.New("listpack: index out of range")

	// ErrBufferOverflow reports a mutation that would grow the buffer
	// beyond the maximum representable total size.
	ErrBufferOverflow = errors.New("listpack: buffer overflow")
)
