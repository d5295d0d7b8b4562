package model

import "todo-cli/internal/bytecodec"

// Entry is the payload of every node in a todo list.
type Entry struct {
	Name     string `json:"name" yaml:"name"`
	Complete bool   `json:"complete" yaml:"complete"`
}

// Row is one line of a listing: an entry plus where it sits in the display
// window. It is what the CLI prints for `show` in json/yaml form.
type Row struct {
	ID         int    `json:"id" yaml:"id"`
	Depth      int    `json:"depth" yaml:"depth"`
	ChildCount int    `json:"childCount" yaml:"childCount"`
	Name       string `json:"name" yaml:"name"`
	Complete   bool   `json:"complete" yaml:"complete"`
}

// Node is a nested, id-free view of a subtree used by exports.
type Node struct {
	Name     string `json:"name" yaml:"name"`
	Complete bool   `json:"complete" yaml:"complete"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// EntryCodec is the on-disk encoding of an Entry: the name as a
// length-prefixed string followed by the completion byte.
type EntryCodec struct{}

func (EntryCodec) EncodePayload(enc *bytecodec.Encoder, e Entry) {
	enc.String(e.Name)
	enc.Bool(e.Complete)
}

func (EntryCodec) DecodePayload(dec *bytecodec.Decoder) (Entry, error) {
	name, err := dec.String()
	if err != nil {
		return Entry{}, err
	}
	done, err := dec.Bool()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Complete: done}, nil
}
