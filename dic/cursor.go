package dic

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/wakachi-nlp/wakachi/werror"
)

// cursor is a bounds-checked sequential little-endian reader over a byte
// slice. The binary dictionary layout (header, grammar block, word-info
// records) is a sequence of fixed- and variable-width fields, so a single
// cursor type serves all of them instead of splitting fixed-size regions
// into unsafe struct-cast views and variable ones into manual decode (see
// DESIGN.md, dic entry, for the rationale).
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor { return &cursor{b: b} }

func (c *cursor) remaining() int { return len(c.b) - c.pos }

func (c *cursor) need(n int) error {
	if n < 0 || c.remaining() < n {
		return werror.DictionaryFormat("unexpected end of dictionary data at offset %d, need %d more bytes", c.pos, n)
	}
	return nil
}

func (c *cursor) skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.b[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) u16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.b[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) i16() (int16, error) {
	v, err := c.u16()
	return int16(v), err
}

func (c *cursor) u32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.b[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) u64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.b[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *cursor) i64() (int64, error) {
	v, err := c.u64()
	return int64(v), err
}

func (c *cursor) bytesN(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.b[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// stringLen reads a 15-bit length prefix: one byte if the value is <128,
// otherwise two bytes with the top bit of the first byte set, the
// remaining 15 bits big-endian.
func (c *cursor) stringLen() (int, error) {
	first, err := c.u8()
	if err != nil {
		return 0, err
	}
	if first&0x80 == 0 {
		return int(first), nil
	}
	second, err := c.u8()
	if err != nil {
		return 0, err
	}
	return int(first&0x7f)<<8 | int(second), nil
}

// utf16String reads a length-prefixed UTF-16 string; a zero length yields
// "". In a WordInfo record a zero length means "same as surface", and
// wordInfoTable.Get substitutes the surface for an empty normalized,
// dictionary or reading form.
func (c *cursor) utf16String() (string, error) {
	n, err := c.stringLen()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		u, err := c.u16()
		if err != nil {
			return "", err
		}
		units[i] = u
	}
	// utf16.Decode combines surrogate pairs for us; it does not assume BMP.
	return string(utf16.Decode(units)), nil
}

// i32Array reads a one-byte count followed by that many little-endian
// int32 values, so one split/synonym list holds at most 255 entries.
func (c *cursor) i32Array() ([]int32, error) {
	n, err := c.u8()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]int32, n)
	for i := range out {
		v, err := c.i32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
