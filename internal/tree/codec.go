package tree

import (
	"bytes"
	"fmt"
	"io"

	"todo-cli/internal/bytecodec"
)

// PayloadCodec reads and writes the payload part of a serialized node. The
// child count and children follow it on the wire.
type PayloadCodec[T any] interface {
	EncodePayload(enc *bytecodec.Encoder, v T)
	DecodePayload(dec *bytecodec.Decoder) (T, error)
}

// Encode writes the tree to w in pre-order starting at the root.
func (t *Tree[T]) Encode(w io.Writer, codec PayloadCodec[T]) error {
	enc := bytecodec.NewEncoder(w)
	var rec func(id NodeID)
	rec = func(id NodeID) {
		n := &t.nodes[id]
		codec.EncodePayload(enc, n.data)
		enc.U32(uint32(len(n.children)))
		for _, ch := range n.children {
			if enc.Err() != nil {
				return
			}
			rec(ch)
		}
	}
	rec(t.root)
	return enc.Flush()
}

func (t *Tree[T]) Bytes(codec PayloadCodec[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Encode(&buf, codec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode rebuilds a tree from a stream written by Encode. The stream must hold
// exactly one root node; anything malformed, truncated or trailing yields
// ErrCorruptData.
func Decode[T any](r io.Reader, codec PayloadCodec[T]) (*Tree[T], error) {
	dec := bytecodec.NewDecoder(r)

	rootData, err := codec.DecodePayload(dec)
	if err != nil {
		return nil, fmt.Errorf("decode root: %w", err)
	}
	t := NewWithRoot(rootData)

	// Each pending frame counts children still to be read under parent.
	type frame struct {
		parent    NodeID
		remaining uint32
	}
	n, err := dec.U32()
	if err != nil {
		return nil, fmt.Errorf("decode root: %w", err)
	}
	stack := []frame{{parent: t.root, remaining: n}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.remaining == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		top.remaining--
		parent := top.parent

		data, err := codec.DecodePayload(dec)
		if err != nil {
			return nil, fmt.Errorf("decode node %d: %w", t.Len(), err)
		}
		id := t.alloc(data, NoNode)
		t.attach(id, LastChild, parent)

		count, err := dec.U32()
		if err != nil {
			return nil, fmt.Errorf("decode node %d: %w", t.Len(), err)
		}
		if count > 0 {
			stack = append(stack, frame{parent: id, remaining: count})
		}
	}
	if err := dec.End(); err != nil {
		return nil, err
	}
	return t, nil
}
