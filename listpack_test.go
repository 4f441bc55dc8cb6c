package listpack

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func genKey(i int) string {
	return fmt.Sprintf("%06x", i)
}

func genListPack(start, end int) *ListPack {
	lp := New()
	for i := start; i < end; i++ {
		lp.RPush(genKey(i))
	}
	return lp
}

func lp2list(lp *ListPack) (res []string) {
	lp.Range(func(data []byte) bool {
		res = append(res, string(data))
		return false
	})
	return
}

// checkHeader verifies the structural invariants after a mutation: the
// recorded total equals the physical length, the terminator is in place,
// and the count agrees with a full scan.
func checkHeader(t *testing.T, lp *ListPack, want int) {
	t.Helper()
	assert := assert.New(t)
	assert.Equal(len(lp.data), lp.totalBytes())
	assert.Equal(byte(terminator), lp.data[len(lp.data)-1])
	assert.Equal(want, lp.Len())
	assert.Equal(want, len(lp2list(lp)))
}

func TestListPack(t *testing.T) {
	assert := assert.New(t)

	t.Run("empty", func(t *testing.T) {
		lp := New()
		assert.Equal(0, lp.Len())
		assert.Equal(headerSize+1, len(lp.data))

		_, err := lp.Get(0)
		assert.ErrorIs(err, ErrIndexOutOfRange)
		_, err = lp.Remove(0)
		assert.ErrorIs(err, ErrIndexOutOfRange)

		_, ok := lp.LPop()
		assert.False(ok)
		_, ok = lp.RPop()
		assert.False(ok)
		checkHeader(t, lp, 0)
	})

	t.Run("push", func(t *testing.T) {
		lp := New()
		assert.Nil(lp.RPush("1"))
		assert.Nil(lp.RPush("ab"))
		assert.Nil(lp.LPush("-5"))
		checkHeader(t, lp, 3)
		assert.Equal([]string{"-5", "1", "ab"}, lp2list(lp))

		for i, want := range []string{"-5", "1", "ab"} {
			res, err := lp.Get(i)
			assert.Nil(err)
			assert.Equal(want, res)
		}

		// negative indexes address from the tail
		res, err := lp.Get(-1)
		assert.Nil(err)
		assert.Equal("ab", res)
		res, err = lp.Get(-3)
		assert.Nil(err)
		assert.Equal("-5", res)

		_, err = lp.Get(3)
		assert.ErrorIs(err, ErrIndexOutOfRange)
		_, err = lp.Get(-4)
		assert.ErrorIs(err, ErrIndexOutOfRange)
	})

	t.Run("remove", func(t *testing.T) {
		lp := New()
		lp.RPush("1", "ab")
		lp.LPush("-5")

		res, err := lp.Remove(1)
		assert.Nil(err)
		assert.Equal("1", res)
		checkHeader(t, lp, 2)
		assert.Equal([]string{"-5", "ab"}, lp2list(lp))

		assert.Nil(lp.Insert(1, "x"))
		checkHeader(t, lp, 3)
		assert.Equal([]string{"-5", "x", "ab"}, lp2list(lp))

		res, err = lp.Get(-1)
		assert.Nil(err)
		assert.Equal("ab", res)
	})

	t.Run("insert", func(t *testing.T) {
		lp := genListPack(0, 3)
		// at the very start
		assert.Nil(lp.Insert(0, "head"))
		// at the end appends
		assert.Nil(lp.Insert(lp.Len(), "tail"))
		// before the last
		assert.Nil(lp.Insert(-1, "mid"))
		checkHeader(t, lp, 6)
		assert.Equal(
			[]string{"head", genKey(0), genKey(1), genKey(2), "mid", "tail"},
			lp2list(lp))

		assert.ErrorIs(lp.Insert(7, "nope"), ErrIndexOutOfRange)
		assert.ErrorIs(lp.Insert(-7, "nope"), ErrIndexOutOfRange)
		checkHeader(t, lp, 6)
	})

	t.Run("set", func(t *testing.T) {
		lp := genListPack(0, 100)
		assert.Nil(lp.Set(0, "a"))
		assert.Nil(lp.Set(50, "bbbbbbbbbbbb"))
		assert.Nil(lp.Set(-1, "10086"))
		checkHeader(t, lp, 100)

		res, _ := lp.Get(0)
		assert.Equal("a", res)
		res, _ = lp.Get(50)
		assert.Equal("bbbbbbbbbbbb", res)
		res, _ = lp.Get(99)
		assert.Equal("10086", res)

		assert.ErrorIs(lp.Set(100, "x"), ErrIndexOutOfRange)
	})

	t.Run("pop", func(t *testing.T) {
		const N = 1000
		lp := genListPack(0, N)
		for i := 0; i < N/2; i++ {
			key, ok := lp.LPop()
			assert.True(ok)
			assert.Equal(genKey(i), key)

			key, ok = lp.RPop()
			assert.True(ok)
			assert.Equal(genKey(N-1-i), key)
		}
		assert.Equal(0, lp.Len())
		checkHeader(t, lp, 0)
	})

	t.Run("random-access", func(t *testing.T) {
		const N = 1000
		lp := genListPack(0, N)
		// both scan directions agree for every index
		for i := 0; i < N; i++ {
			res, err := lp.Get(i)
			assert.Nil(err)
			assert.Equal(genKey(i), res)
		}
	})

	t.Run("atomic-failure", func(t *testing.T) {
		lp := genListPack(0, 10)
		before := slices.Clone(lp.data)

		_, err := lp.Get(10)
		assert.ErrorIs(err, ErrIndexOutOfRange)
		_, err = lp.Remove(-11)
		assert.ErrorIs(err, ErrIndexOutOfRange)
		assert.ErrorIs(lp.Insert(11, "x"), ErrIndexOutOfRange)
		assert.Equal(before, lp.data)
	})
}

func TestIterationAgreement(t *testing.T) {
	assert := assert.New(t)

	for _, n := range []int{0, 1, 2, 17, 500} {
		lp := genListPack(0, n)
		lp.LPush("-123456789")
		lp.RPush("not-a-number")

		var fwd, rev []string
		assert.Nil(lp.Range(func(data []byte) bool {
			fwd = append(fwd, string(data))
			return false
		}))
		assert.Nil(lp.RevRange(func(data []byte) bool {
			rev = append(rev, string(data))
			return false
		}))

		slices.Reverse(rev)
		assert.Equal(fwd, rev)
		assert.Equal(n+2, len(fwd))
	}
}

func TestCountSentinel(t *testing.T) {
	assert := assert.New(t)
	const N = countUnknown + 100

	lp := New()
	keys := make([]string, 0, 1000)
	for i := 0; i < N; i += len(keys) {
		keys = keys[:0]
		for j := i; j < i+1000 && j < N; j++ {
			keys = append(keys, genKey(j))
		}
		assert.Nil(lp.RPush(keys...))
	}

	// the header count saturated, Len rescans
	assert.Equal(countUnknown, lp.count())
	assert.Equal(N, lp.Len())

	// removals below the sentinel leave it saturated until the next Len,
	// which restores the exact header count
	for i := 0; i < 200; i++ {
		_, ok := lp.RPop()
		assert.True(ok)
	}
	assert.Equal(N-200, lp.Len())
	assert.Equal(N-200, lp.count())

	res, err := lp.Get(N - 201)
	assert.Nil(err)
	assert.Equal(genKey(N-201), res)
}

func TestCorrupt(t *testing.T) {
	assert := assert.New(t)

	t.Run("bad-header-byte", func(t *testing.T) {
		lp := genListPack(0, 3)
		lp.data[headerSize] = 0xB0 // unassigned encoding

		_, err := lp.Get(0)
		assert.ErrorIs(err, ErrCorruptEntry)
		_, err = lp.Iterator().Next()
		assert.ErrorIs(err, ErrCorruptEntry)
	})

	t.Run("bad-backlen", func(t *testing.T) {
		lp := New()
		lp.RPush("hello")
		lp.data[len(lp.data)-2]++ // corrupt the trailer of the last entry

		_, err := lp.decodeEntryReverse(len(lp.data) - 1)
		assert.Error(err)
		_, err = lp.Iterator().SeekLast().Prev()
		assert.Error(err)
	})

	t.Run("truncated-strlen", func(t *testing.T) {
		lp := New()
		lp.RPush("hello")
		// claim a payload far past the terminator
		lp.data[headerSize+1] = 0x7F

		_, err := lp.Get(0)
		assert.ErrorIs(err, ErrCorruptEntry)
	})
}

func TestBufferOverflow(t *testing.T) {
	assert := assert.New(t)

	old := maxTotalBytes
	maxTotalBytes = 64
	defer func() { maxTotalBytes = old }()

	lp := New()
	assert.Nil(lp.RPush("fits"))
	err := lp.RPush(string(make([]byte, 128)))
	assert.ErrorIs(err, ErrBufferOverflow)

	// the failed push left the pack untouched
	checkHeader(t, lp, 1)
	res, _ := lp.Get(0)
	assert.Equal("fits", res)
}

func TestCompress(t *testing.T) {
	assert := assert.New(t)

	lp := genListPack(0, 500)
	raw := slices.Clone(lp.data)

	lp.Compress()
	assert.True(len(lp.data) < len(raw))
	lp.Compress() // no-op

	lp.Decompress()
	lp.Decompress() // no-op
	assert.Equal(raw, lp.data)
	checkHeader(t, lp, 500)
}

func TestMarshal(t *testing.T) {
	assert := assert.New(t)

	lp := genListPack(0, 100)
	lp.LPush("-42")
	lp.RPush("", "tail value")

	buf, err := lp.Marshal()
	assert.Nil(err)

	lp2 := New()
	assert.Nil(lp2.Unmarshal(buf))
	assert.Equal(lp2list(lp), lp2list(lp2))
	checkHeader(t, lp2, 103)

	// garbage input is rejected
	assert.Error(New().Unmarshal([]byte("*x\r\n")))
}
