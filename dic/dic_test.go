package dic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakachi-nlp/wakachi/pos"
)

func TestCursorPrimitives(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFF, 0xFF, 0xFF}
	c := newCursor(raw)
	v32, err := c.i32()
	require.NoError(t, err)
	assert.Equal(t, int32(0x04030201), v32)
	v32b, err := c.i32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v32b)
	_, err = c.u8()
	assert.Error(t, err, "reading past the end must fail, not panic")
}

func TestCursorStringLenShortAndLong(t *testing.T) {
	// A 15-bit length of 200 is encoded as two bytes: 0x80|(200>>8), 200&0xff.
	raw := []byte{0x80 | 0x00, 200}
	c := newCursor(raw)
	n, err := c.stringLen()
	require.NoError(t, err)
	assert.Equal(t, 200, n)

	c2 := newCursor([]byte{5})
	n2, err := c2.stringLen()
	require.NoError(t, err)
	assert.Equal(t, 5, n2)
}

func TestCursorUTF16StringSurrogatePair(t *testing.T) {
	// U+1F600 (😀) encodes as the surrogate pair D83D DE00.
	raw := []byte{2, 0x3D, 0xD8, 0x00, 0xDE}
	c := newCursor(raw)
	s, err := c.utf16String()
	require.NoError(t, err)
	assert.Equal(t, "😀", s)
}

func TestTrieCommonPrefixSearch(t *testing.T) {
	tr := &trie{
		base:      []int32{0, -1},
		check:     []int32{0, 0},
		wordLists: [][]int32{{5}},
	}
	matches := tr.CommonPrefixSearch([]byte{1}, 0)
	require.Len(t, matches, 1)
	assert.Equal(t, int32(5), matches[0].WordIndex)
	assert.Equal(t, 1, matches[0].ByteLength)
}

func TestTrieNoMatch(t *testing.T) {
	tr := &trie{base: []int32{0}, check: []int32{0}, wordLists: nil}
	matches := tr.CommonPrefixSearch([]byte{9}, 0)
	assert.Empty(t, matches)
}

func TestConnectionMatrixCopyOnWrite(t *testing.T) {
	raw := []int16{1, 2, 3, 4}
	m := &connectionMatrix{leftSize: 2, rightSize: 2, raw: raw}
	assert.Equal(t, int16(1), m.Get(0, 0))

	require.NoError(t, m.Set(0, 0, 99))
	assert.Equal(t, int16(99), m.Get(0, 0))
	// The original backing slice must be untouched by the write.
	assert.Equal(t, int16(1), raw[0])
}

func TestConnectionMatrixOutOfRangeIsInhibited(t *testing.T) {
	m := &connectionMatrix{leftSize: 1, rightSize: 1, raw: []int16{0}}
	assert.Equal(t, InhibitedConnection, m.Get(5, 5))
}

func TestClassifyMagicSystemAndUser(t *testing.T) {
	isUser, hasSyn, hasGram, ok := classifyMagic(MagicSystemV1)
	require.True(t, ok)
	assert.False(t, isUser)
	assert.False(t, hasSyn)
	assert.True(t, hasGram)

	isUser, hasSyn, hasGram, ok = classifyMagic(MagicUserV1)
	require.True(t, ok)
	assert.True(t, isUser)
	assert.False(t, hasSyn)
	assert.False(t, hasGram)

	_, _, _, ok = classifyMagic(0xDEADBEEF)
	assert.False(t, ok)
}

func TestWordParamTableSetCostIsCopyOnWrite(t *testing.T) {
	entries := []byte{
		1, 0, 2, 0, 10, 0, // word 0: left=1 right=2 cost=10
		3, 0, 4, 0, 20, 0, // word 1: left=3 right=4 cost=20
	}
	backing := append([]byte(nil), entries...)
	tbl := &wordParamTable{view: newByteView(backing), size: 2}

	cost, err := tbl.GetCost(0)
	require.NoError(t, err)
	assert.Equal(t, int16(10), cost)

	require.NoError(t, tbl.SetCost(0, 42))
	cost, err = tbl.GetCost(0)
	require.NoError(t, err)
	assert.Equal(t, int16(42), cost)

	// original buffer untouched
	assert.Equal(t, byte(10), backing[4])
}

func TestGrammarPartOfSpeechResolution(t *testing.T) {
	table, err := pos.NewTable([]pos.POS{{"名詞", "一般", "*", "*", "*", "*"}})
	require.NoError(t, err)
	g := &Grammar{posTable: table, matrix: &connectionMatrix{leftSize: 1, rightSize: 1, raw: []int16{0}}}

	id, err := g.PartOfSpeechID(pos.POS{"名詞", "一般", "*", "*", "*", "*"}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	_, err = g.PartOfSpeechID(pos.POS{"動詞", "一般", "*", "*", "*", "*"}, false)
	assert.Error(t, err, "unregistered POS with userPOS=forbid must fail")

	id, err = g.PartOfSpeechID(pos.POS{"動詞", "一般", "*", "*", "*", "*"}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestParseHeaderRejectsTruncated(t *testing.T) {
	_, err := parseHeader([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestParseHeaderDescriptionTrimsNulByte(t *testing.T) {
	raw := make([]byte, HeaderSize)
	// magic bytes for MagicSystemV1, little-endian.
	copy(raw[0:8], []byte{0xE7, 0x11, 0xD1, 0x8B, 0xF1, 0xD3, 0x66, 0x73})
	copy(raw[16:], []byte("hello"))
	h, err := parseHeader(raw)
	require.NoError(t, err)
	assert.Equal(t, "hello", h.Description)
	assert.False(t, h.IsUser)
	assert.True(t, h.HasGrammar)
}

func TestI32ArrayRoundTrip(t *testing.T) {
	raw := []byte{2, 1, 0, 0, 0, 2, 0, 0, 0}
	c := newCursor(raw)
	vals, err := c.i32Array()
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, vals)
}
