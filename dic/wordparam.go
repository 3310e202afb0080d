package dic

import (
	"encoding/binary"

	"github.com/wakachi-nlp/wakachi/werror"
)

const wordParamEntrySize = 6 // leftId:i16, rightId:i16, cost:i16

// wordParamTable is the dense array of per-word (leftId, rightId, cost)
// triples. It is a read-only view over the mapped dictionary image until
// SetCost is called, at which point it clones itself into an owned buffer.
type wordParamTable struct {
	view byteView
	size int
}

func parseWordParamTable(c *cursor) (*wordParamTable, error) {
	sizeRaw, err := c.i32()
	if err != nil {
		return nil, err
	}
	size := int(sizeRaw)
	if size < 0 {
		return nil, werror.DictionaryFormat("word param table: negative size %d", size)
	}
	raw, err := c.bytesN(size * wordParamEntrySize)
	if err != nil {
		return nil, err
	}
	return &wordParamTable{view: newByteView(raw), size: size}, nil
}

func (t *wordParamTable) entry(wordIndex int) ([]byte, error) {
	if wordIndex < 0 || wordIndex >= t.size {
		return nil, werror.DictionaryFormat("word param table: index %d out of range [0,%d)", wordIndex, t.size)
	}
	off := wordIndex * wordParamEntrySize
	return t.view.bytes()[off : off+wordParamEntrySize], nil
}

func (t *wordParamTable) GetLeftID(wordIndex int) (int16, error) {
	e, err := t.entry(wordIndex)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(e[0:2])), nil
}

func (t *wordParamTable) GetRightID(wordIndex int) (int16, error) {
	e, err := t.entry(wordIndex)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(e[2:4])), nil
}

func (t *wordParamTable) GetCost(wordIndex int) (int16, error) {
	e, err := t.entry(wordIndex)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(e[4:6])), nil
}

// SetCost overwrites the cost field of wordIndex, cloning the backing
// buffer into an owned copy on first use.
func (t *wordParamTable) SetCost(wordIndex int, cost int16) error {
	if wordIndex < 0 || wordIndex >= t.size {
		return werror.DictionaryFormat("word param table: index %d out of range [0,%d)", wordIndex, t.size)
	}
	t.view.ensureOwned()
	off := wordIndex*wordParamEntrySize + 4
	binary.LittleEndian.PutUint16(t.view.bytes()[off:off+2], uint16(cost))
	return nil
}

func (t *wordParamTable) Size() int { return t.size }
