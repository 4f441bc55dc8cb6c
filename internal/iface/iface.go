// Package iface declares the serialization contract shared by the
// container types.
package iface

import "github.com/xgzlucario/listpack/internal/resp"

// Encoder is implemented by containers that serialize to RESP.
type Encoder interface {
	Encode(writer *resp.Writer) error
	Decode(reader *resp.Reader) error
}
