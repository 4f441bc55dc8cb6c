package listpack

import (
	"strconv"

	"github.com/xgzlucario/listpack/internal/iface"
	"github.com/xgzlucario/listpack/internal/resp"
)

var (
	_ iface.Encoder = (*ListPack)(nil)
	_ iface.Encoder = (*QuickList)(nil)
)

// Encode writes the pack as a RESP array: the element count followed by one
// bulk string per entry.
func (lp *ListPack) Encode(writer *resp.Writer) error {
	n := lp.Len()
	writer.WriteArray(n + 1)
	writer.WriteBulkString(strconv.Itoa(n))
	return lp.Range(func(data []byte) bool {
		writer.WriteBulk(data)
		return false
	})
}

// Decode reads an array written by Encode and appends its entries.
func (lp *ListPack) Decode(reader *resp.Reader) error {
	args, err := reader.ReadArray()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return ErrCorruptEntry
	}
	n, err := strconv.Atoi(string(args[0]))
	if err != nil || n != len(args)-1 {
		return ErrCorruptEntry
	}
	for _, arg := range args[1:] {
		if err := lp.RPush(string(arg)); err != nil {
			return err
		}
	}
	return nil
}

// Marshal returns the RESP serialization of lp.
func (lp *ListPack) Marshal() ([]byte, error) {
	writer := resp.NewWriter()
	if err := lp.Encode(writer); err != nil {
		return nil, err
	}
	return writer.Bytes()
}

// Unmarshal appends the entries serialized in b.
func (lp *ListPack) Unmarshal(b []byte) error {
	return lp.Decode(resp.NewReader(b))
}

// Encode flattens the whole quicklist into one RESP array; Decode rebuilds
// the node chain with fresh split points.
func (ls *QuickList) Encode(writer *resp.Writer) error {
	n := ls.Size()
	writer.WriteArray(n + 1)
	writer.WriteBulkString(strconv.Itoa(n))
	for node := ls.head; node != nil; node = node.next {
		err := node.Range(func(data []byte) bool {
			writer.WriteBulk(data)
			return false
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (ls *QuickList) Decode(reader *resp.Reader) error {
	args, err := reader.ReadArray()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return ErrCorruptEntry
	}
	n, err := strconv.Atoi(string(args[0]))
	if err != nil || n != len(args)-1 {
		return ErrCorruptEntry
	}
	for _, arg := range args[1:] {
		if err := ls.RPush(string(arg)); err != nil {
			return err
		}
	}
	return nil
}

// Marshal returns the RESP serialization of ls.
func (ls *QuickList) Marshal() ([]byte, error) {
	writer := resp.NewWriter()
	if err := ls.Encode(writer); err != nil {
		return nil, err
	}
	return writer.Bytes()
}

// Unmarshal appends the entries serialized in b.
func (ls *QuickList) Unmarshal(b []byte) error {
	return ls.Decode(resp.NewReader(b))
}
