// Package resp provides a thin RESP writer/reader pair over tidwall/redcon,
// used to serialize the container types.
package resp

import (
	"bytes"

	"github.com/tidwall/redcon"
)

type Writer struct {
	*redcon.Writer
	buf *bytes.Buffer
}

func NewWriter() *Writer {
	b := bytes.NewBuffer(nil)
	return &Writer{Writer: redcon.NewWriter(b), buf: b}
}

// Bytes flushes pending writes and returns everything written so far.
func (w *Writer) Bytes() ([]byte, error) {
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type Reader struct {
	*redcon.Reader
}

func NewReader(b []byte) *Reader {
	return &Reader{redcon.NewReader(bytes.NewReader(b))}
}

// ReadArray reads one RESP array of bulk strings.
func (r *Reader) ReadArray() ([][]byte, error) {
	cmd, err := r.ReadCommand()
	if err != nil {
		return nil, err
	}
	return cmd.Args, nil
}
