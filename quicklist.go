package listpack

//	 +------------------------------ QuickList -----------------------------+
//	 |	     +-----------+     +-----------+             +-----------+      |
//	head --- | listpack0 | <-> | listpack1 | <-> ... <-> | listpackN | --- tail
//	         +-----------+     +-----------+             +-----------+
//
// QuickList is a doubly linked list of listpack nodes, implementing the
// redis quicklist data structure. Each node stays under maxListPackSize
// encoded bytes, keeping splice shifts bounded.
type QuickList struct {
	head, tail *Node
}

type Node struct {
	*ListPack
	prev, next *Node
}

// NewQuickList creates a quicklist with a single empty node.
func NewQuickList() *QuickList {
	n := newNode()
	return &QuickList{head: n, tail: n}
}

func newNode() *Node {
	return &Node{ListPack: New()}
}

// LPush inserts key at the head, starting a new node when the head node is
// full.
func (ls *QuickList) LPush(key string) error {
	if len(ls.head.data)+len(key) >= maxListPackSize {
		n := newNode()
		n.next = ls.head
		ls.head.prev = n
		ls.head = n
	}
	return ls.head.LPush(key)
}

// RPush appends key at the tail, starting a new node when the tail node is
// full.
func (ls *QuickList) RPush(key string) error {
	if len(ls.tail.data)+len(key) >= maxListPackSize {
		n := newNode()
		ls.tail.next = n
		n.prev = ls.tail
		ls.tail = n
	}
	return ls.tail.RPush(key)
}

// LPop removes and returns the first entry.
func (ls *QuickList) LPop() (string, bool) {
	for n := ls.head; n != nil; n = n.next {
		if n.Len() > 0 {
			return n.LPop()
		}
		ls.free(n)
	}
	return "", false
}

// RPop removes and returns the last entry.
func (ls *QuickList) RPop() (string, bool) {
	for n := ls.tail; n != nil; n = n.prev {
		if n.Len() > 0 {
			return n.RPop()
		}
		ls.free(n)
	}
	return "", false
}

// free unlinks an emptied interior node and recycles its buffer.
func (ls *QuickList) free(n *Node) {
	if n.Len() == 0 && n.prev != nil && n.next != nil {
		n.prev.next = n.next
		n.next.prev = n.prev
		bpool.Put(n.data)
	}
}

// Size returns the total number of entries across nodes.
func (ls *QuickList) Size() (n int) {
	for node := ls.head; node != nil; node = node.next {
		n += node.Len()
	}
	return
}

// Index returns the entry at logical position i.
func (ls *QuickList) Index(i int) (string, bool) {
	if i < 0 {
		return "", false
	}
	for n := ls.head; n != nil; n = n.next {
		if c := n.Len(); i >= c {
			i -= c
			continue
		}
		v, err := n.Get(i)
		return v, err == nil
	}
	return "", false
}

// Set replaces the entry at logical position i.
func (ls *QuickList) Set(i int, key string) bool {
	if i < 0 {
		return false
	}
	for n := ls.head; n != nil; n = n.next {
		if c := n.Len(); i >= c {
			i -= c
			continue
		}
		return n.ListPack.Set(i, key) == nil
	}
	return false
}

// Range calls fn for entries in [start, stop], both inclusive, redis LRANGE
// style: negative offsets count from the tail, out-of-bound offsets clamp.
func (ls *QuickList) Range(start, stop int, fn func(data []byte)) {
	start, stop, ok := ls.resolveRange(start, stop)
	if !ok {
		return
	}
	count := stop - start + 1
	for n := ls.head; n != nil && count > 0; n = n.next {
		if c := n.Len(); start >= c {
			start -= c
			continue
		}
		it := n.Iterator()
		for i := 0; i < start; i++ {
			if _, err := it.Next(); err != nil {
				return
			}
		}
		start = 0
		for !it.IsEnd() && count > 0 {
			data, err := it.Next()
			if err != nil {
				return
			}
			fn(data)
			count--
		}
	}
}

// RevRange is Range walking from the tail: offset 0 is the last entry.
func (ls *QuickList) RevRange(start, stop int, fn func(data []byte)) {
	start, stop, ok := ls.resolveRange(start, stop)
	if !ok {
		return
	}
	count := stop - start + 1
	for n := ls.tail; n != nil && count > 0; n = n.prev {
		if c := n.Len(); start >= c {
			start -= c
			continue
		}
		it := n.Iterator().SeekLast()
		for i := 0; i < start; i++ {
			if _, err := it.Prev(); err != nil {
				return
			}
		}
		start = 0
		for !it.IsFirst() && count > 0 {
			data, err := it.Prev()
			if err != nil {
				return
			}
			fn(data)
			count--
		}
	}
}

// RangeCount returns how many entries Range(start, stop) would visit.
func (ls *QuickList) RangeCount(start, stop int) int {
	start, stop, ok := ls.resolveRange(start, stop)
	if !ok {
		return 0
	}
	return stop - start + 1
}

func (ls *QuickList) resolveRange(start, stop int) (int, int, bool) {
	n := ls.Size()
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	start = max(start, 0)
	stop = min(stop, n-1)
	if start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}
