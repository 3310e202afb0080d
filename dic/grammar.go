package dic

import (
	"github.com/wakachi-nlp/wakachi/pos"
	"github.com/wakachi-nlp/wakachi/werror"
)

// InhibitedConnection is the sentinel connection cost that forbids a
// transition outright.
const InhibitedConnection int16 = 0x7FFF

// BOS/EOS parameters are always the zero left/right id at zero cost.
const (
	BOSEOSLeftID  = 0
	BOSEOSRightID = 0
	BOSEOSCost    = 0
)

// connectionMatrix is the dense leftSize x rightSize int16 connection-cost
// table, stored column-major (matrix[right*leftSize+left]), with
// copy-on-write semantics: SetConnectCost clones the matrix into an owned
// buffer on first write, leaving the original dictionary byte image
// untouched.
type connectionMatrix struct {
	leftSize, rightSize int
	raw                 []int16 // cells as decoded from the dictionary image; never written
	owned               []int16 // non-nil once a write has happened
}

func (m *connectionMatrix) cells() []int16 {
	if m.owned != nil {
		return m.owned
	}
	return m.raw
}

func (m *connectionMatrix) index(left, right int) int { return right*m.leftSize + left }

// Get returns the connection cost for (left, right), or InhibitedConnection
// if out of range.
func (m *connectionMatrix) Get(left, right int) int16 {
	if left < 0 || left >= m.leftSize || right < 0 || right >= m.rightSize {
		return InhibitedConnection
	}
	return m.cells()[m.index(left, right)]
}

// Set clones the matrix into an owned buffer on first call, then writes
// through the clone. The backing dictionary image is never mutated.
func (m *connectionMatrix) Set(left, right int, cost int16) error {
	if left < 0 || left >= m.leftSize || right < 0 || right >= m.rightSize {
		return werror.Config("connection matrix: (%d,%d) out of range [%d,%d)", left, right, m.leftSize, m.rightSize)
	}
	if m.owned == nil {
		m.owned = append([]int16(nil), m.raw...)
	}
	m.owned[m.index(left, right)] = cost
	return nil
}

// LeftSize / RightSize report the matrix dimensions.
func (m *connectionMatrix) LeftSize() int  { return m.leftSize }
func (m *connectionMatrix) RightSize() int { return m.rightSize }

// Grammar holds the POS table and the bigram connection-cost matrix parsed
// from a dictionary's grammar block.
type Grammar struct {
	posTable *pos.Table
	matrix   *connectionMatrix
}

// PartOfSpeechSize returns the number of registered POS entries.
func (g *Grammar) PartOfSpeechSize() int { return g.posTable.Size() }

// PosTable exposes the underlying pos.Table, for callers (e.g.
// chardef.ParseUnkDef) that resolve a POS tuple directly rather than
// through PartOfSpeechString/PartOfSpeechID.
func (g *Grammar) PosTable() *pos.Table { return g.posTable }

// PartOfSpeechString returns the POS tuple for id.
func (g *Grammar) PartOfSpeechString(id int) (pos.POS, bool) { return g.posTable.Get(id) }

// PartOfSpeechID resolves a tuple to its id, appending it to the user POS
// range when allowUser is true and it isn't already registered.
func (g *Grammar) PartOfSpeechID(p pos.POS, allowUser bool) (int, error) {
	return g.posTable.ResolveID(p, allowUser)
}

// GetConnectCost returns the bigram cost of transitioning from rightId of
// the previous node to leftId of the next node.
func (g *Grammar) GetConnectCost(left, right int) int16 { return g.matrix.Get(left, right) }

// SetConnectCost overwrites one cell, copy-on-write.
func (g *Grammar) SetConnectCost(left, right int, cost int16) error {
	return g.matrix.Set(left, right, cost)
}

func (g *Grammar) LeftSize() int  { return g.matrix.LeftSize() }
func (g *Grammar) RightSize() int { return g.matrix.RightSize() }

// parseGrammar reads the grammar block starting at c's current position and
// returns the constructed Grammar. c is left positioned just after the
// block: posSize, posSize POS entries, 4-byte alignment padding, leftSize,
// rightSize, leftSize*rightSize*i16 costs.
func parseGrammar(c *cursor) (*Grammar, error) {
	posSizeRaw, err := c.i16()
	if err != nil {
		return nil, err
	}
	posSize := int(posSizeRaw)
	if posSize < 0 || posSize > pos.MaxID+1 {
		return nil, werror.RuntimeLimit("grammar: posSize %d exceeds %d", posSize, pos.MaxID+1)
	}
	entries := make([]pos.POS, posSize)
	for i := 0; i < posSize; i++ {
		var p pos.POS
		for d := 0; d < pos.Depth; d++ {
			s, err := c.utf16String()
			if err != nil {
				return nil, err
			}
			p[d] = s
		}
		entries[i] = p
	}
	// 4-byte alignment padding relative to the start of the grammar block;
	// parse always hands parseGrammar a cursor starting exactly
	// after the header, so padding is computed relative to c.pos here.
	if pad := c.pos % 4; pad != 0 {
		if err := c.skip(4 - pad); err != nil {
			return nil, err
		}
	}
	leftSizeRaw, err := c.i16()
	if err != nil {
		return nil, err
	}
	rightSizeRaw, err := c.i16()
	if err != nil {
		return nil, err
	}
	leftSize, rightSize := int(leftSizeRaw), int(rightSizeRaw)
	if leftSize < 0 || rightSize < 0 {
		return nil, werror.DictionaryFormat("grammar: negative matrix dimension (%d,%d)", leftSize, rightSize)
	}
	count := leftSize * rightSize
	raw, err := c.bytesN(count * 2)
	if err != nil {
		return nil, err
	}
	cells := make([]int16, count)
	for i := 0; i < count; i++ {
		cells[i] = int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
	}

	posTable, err := pos.NewTable(entries)
	if err != nil {
		return nil, err
	}
	return &Grammar{
		posTable: posTable,
		matrix:   &connectionMatrix{leftSize: leftSize, rightSize: rightSize, raw: cells},
	}, nil
}
