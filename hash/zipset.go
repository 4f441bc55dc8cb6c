package hash

import (
	"github.com/xgzlucario/listpack"
)

// ZipSet stores keys as [key1, key2, key3...] in a listpack.
type ZipSet struct {
	data *listpack.ListPack
}

func NewZipSet() *ZipSet {
	return &ZipSet{data: listpack.New()}
}

// Add inserts key, reporting whether it was absent.
func (zs *ZipSet) Add(key string) (newField bool) {
	if zs.Exist(key) {
		return false
	}
	_ = zs.data.RPush(key)
	return true
}

func (zs *ZipSet) Exist(key string) bool {
	return zs.index(key) >= 0
}

func (zs *ZipSet) Remove(key string) bool {
	i := zs.index(key)
	if i >= 0 {
		_, err := zs.data.Remove(i)
		return err == nil
	}
	return false
}

func (zs *ZipSet) Scan(fn func(key string)) {
	_ = zs.data.RevRange(func(entry []byte) bool {
		fn(string(entry))
		return false
	})
}

// Pop removes and returns the most recently added key.
func (zs *ZipSet) Pop() (string, bool) {
	return zs.data.RPop()
}

func (zs *ZipSet) Len() int { return zs.data.Len() }

// index scans from the tail for key, returning its entry index or -1.
func (zs *ZipSet) index(key string) int {
	index := -1
	i := zs.data.Len()
	_ = zs.data.RevRange(func(entry []byte) bool {
		i--
		if key == b2s(entry) {
			index = i
			return true
		}
		return false
	})
	return index
}
