package chardef

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakachi-nlp/wakachi/pos"
)

const sampleCharDef = `
# comment line, ignored
DEFAULT 0 1 0
SPACE 0 1 0
KANJI 0 0 2
0x0020 SPACE
0x4E00..0x9FFF KANJI
`

func TestParseCharDefRangesAndFlags(t *testing.T) {
	cc, err := ParseCharDef(strings.NewReader(sampleCharDef))
	require.NoError(t, err)

	assert.Equal(t, CategorySpace, cc.TypesOf(' '))
	assert.Equal(t, CategoryKanji, cc.TypesOf('東'))
	assert.Equal(t, CategoryDefault, cc.TypesOf('x'), "code points outside every range fall back to DEFAULT")

	flags := cc.Flags(CategoryKanji)
	assert.False(t, flags.Invoke)
	assert.False(t, flags.Group)
	assert.Equal(t, 2, flags.Length)
}

func TestParseCharDefRejectsUnknownCategory(t *testing.T) {
	_, err := ParseCharDef(strings.NewReader("0x0041 NOTACATEGORY\n"))
	assert.Error(t, err)
}

const sampleUnkDef = `
KANJI,1,2,3000,名詞,一般,*,*,*,*
SYMBOL,4,5,500,記号,一般,*,*,*,*
`

func TestParseUnkDef(t *testing.T) {
	table, err := pos.NewTable(nil)
	require.NoError(t, err)

	entries, err := ParseUnkDef(strings.NewReader(sampleUnkDef), table)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, CategoryKanji, entries[0].Category)
	assert.Equal(t, int16(1), entries[0].LeftID)
	assert.Equal(t, int16(2), entries[0].RightID)
	assert.Equal(t, int16(3000), entries[0].Cost)
	assert.Equal(t, pos.POS{"名詞", "一般", "*", "*", "*", "*"}, entries[0].POS)

	// Both rows should have registered (possibly shared) user POS entries.
	assert.GreaterOrEqual(t, table.Size(), 2)
}
