// Package bytecodec encodes primitive values to and from a byte stream.
//
// Integers are fixed-width big-endian, booleans are a single 0/1 byte and
// strings are UTF-8 bytes preceded by a u32 length.
package bytecodec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxStringLen bounds the length prefix accepted by Decoder.String.
const MaxStringLen = 16 << 20

// ErrCorrupt is returned (wrapped) for truncated or malformed input.
var ErrCorrupt = errors.New("corrupt data")

// Encoder writes primitives to an underlying writer. The first write error is
// sticky: later calls are no-ops and Err/Flush report it.
type Encoder struct {
	w   *bufio.Writer
	buf [4]byte
	err error
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

func (e *Encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *Encoder) Bool(v bool) {
	if v {
		e.U8(1)
		return
	}
	e.U8(0)
}

func (e *Encoder) U8(v uint8) {
	e.buf[0] = v
	e.write(e.buf[:1])
}

func (e *Encoder) U32(v uint32) {
	binary.BigEndian.PutUint32(e.buf[:], v)
	e.write(e.buf[:4])
}

// String writes the u32 byte length followed by the raw bytes.
func (e *Encoder) String(s string) {
	if e.err != nil {
		return
	}
	if len(s) > MaxStringLen {
		e.err = fmt.Errorf("string of %d bytes exceeds limit %d", len(s), MaxStringLen)
		return
	}
	e.U32(uint32(len(s)))
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *Encoder) Err() error { return e.err }

// Flush pushes buffered bytes to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	e.err = e.w.Flush()
	return e.err
}

// Decoder reads primitives written by Encoder.
type Decoder struct {
	r   *bufio.Reader
	buf [4]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

func (d *Decoder) read(n int, what string) ([]byte, error) {
	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		return nil, readErr(err, what)
	}
	return d.buf[:n], nil
}

func readErr(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", ErrCorrupt, what)
	}
	return fmt.Errorf("read %s: %w", what, err)
}

func (d *Decoder) U8() (uint8, error) {
	b, err := d.read(1, "u8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool accepts only 0 and 1.
func (d *Decoder) Bool() (bool, error) {
	b, err := d.read(1, "bool")
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid bool byte 0x%02x", ErrCorrupt, b[0])
	}
}

func (d *Decoder) U32() (uint32, error) {
	b, err := d.read(4, "u32")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *Decoder) String() (string, error) {
	n, err := d.U32()
	if err != nil {
		return "", err
	}
	if n > MaxStringLen {
		return "", fmt.Errorf("%w: string length %d exceeds limit", ErrCorrupt, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return "", readErr(err, "string")
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", ErrCorrupt)
	}
	return string(b), nil
}

// End reports ErrCorrupt if any bytes remain in the stream.
func (d *Decoder) End() error {
	if _, err := d.r.ReadByte(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read trailer: %w", err)
	}
	return fmt.Errorf("%w: trailing bytes after root node", ErrCorrupt)
}
