// Package hash provides compact map and set types stored inside a single
// listpack, for collections small enough that a tagged linear scan beats a
// real hash table.
package hash

import (
	"encoding/binary"
	"unsafe"

	"github.com/xgzlucario/listpack"
	"github.com/zeebo/xxh3"
)

// ZipMap stores fields as [entry1, entry2, entry3...] in a listpack.
/*
	entry format:
	+-----------------+-----+-----+--------------+
	| val_len(varint) | val | key | hash(1 Byte) |
	+-----------------+-----+-----+--------------+

	The trailing hash byte filters non-matching entries without decoding.
*/
type ZipMap struct {
	data *listpack.ListPack
}

func NewZipMap() *ZipMap {
	return &ZipMap{data: listpack.New()}
}

func (ZipMap) encode(key string, val []byte) string {
	buf := make([]byte, 0, len(key)+len(val)+2)
	buf = binary.AppendUvarint(buf, uint64(len(val)))
	buf = append(buf, val...)
	buf = append(buf, key...)
	buf = append(buf, byte(xxh3.HashString(key)))
	return b2s(buf)
}

func (ZipMap) decode(src []byte) (key string, val []byte) {
	vlen, n := binary.Uvarint(src)
	val = src[n : n+int(vlen)]
	key = b2s(src[n+int(vlen) : len(src)-1])
	return
}

// find scans from the tail for key, returning its entry index or -1. The
// returned val is only valid until the next mutation.
func (zm *ZipMap) find(key string) (index int, val []byte) {
	index = -1
	tag := byte(xxh3.HashString(key))

	i := zm.data.Len()
	_ = zm.data.RevRange(func(entry []byte) bool {
		i--
		if len(entry) > 0 && entry[len(entry)-1] == tag {
			k, v := zm.decode(entry)
			if k == key {
				index, val = i, v
				return true
			}
		}
		return false
	})
	return
}

// Set stores val under key, replacing in place when the field exists.
func (zm *ZipMap) Set(key string, val []byte) (newField bool) {
	i, _ := zm.find(key)
	entry := zm.encode(key, val)
	if i >= 0 {
		_ = zm.data.Set(i, entry)
		return false
	}
	_ = zm.data.RPush(entry)
	return true
}

// Get returns the value stored under key; the slice is only valid until the
// next mutation.
func (zm *ZipMap) Get(key string) ([]byte, bool) {
	if _, val := zm.find(key); val != nil {
		return val, true
	}
	return nil, false
}

func (zm *ZipMap) Remove(key string) bool {
	i, _ := zm.find(key)
	if i >= 0 {
		_, err := zm.data.Remove(i)
		return err == nil
	}
	return false
}

func (zm *ZipMap) Scan(fn func(key string, val []byte)) {
	_ = zm.data.RevRange(func(entry []byte) bool {
		k, v := zm.decode(entry)
		fn(k, v)
		return false
	})
}

func (zm *ZipMap) Len() int { return zm.data.Len() }

func b2s(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
