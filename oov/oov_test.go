package oov

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/input"
)

func buildText(t *testing.T, cc *chardef.CharCategory, text string) *input.InputText {
	t.Helper()
	return input.NewBuilder(text).Build(cc)
}

func TestMaskBasic(t *testing.T) {
	var m Mask
	assert.False(t, m.Has(3))
	m.Set(3)
	assert.True(t, m.Has(3))
	assert.False(t, m.Has(4))
}

func TestMaskBeyond64FallsThrough(t *testing.T) {
	var m Mask
	m.Set(65)
	assert.False(t, m.Has(65), "lengths beyond 64 can't be represented, so Has always reports unset")
}

func TestMeCabProviderGroupedCategory(t *testing.T) {
	cc, err := chardef.ParseCharDef(strings.NewReader(
		"KANJI 1 1 0\n0x4E00..0x9FFF KANJI\n"))
	require.NoError(t, err)

	entries := []chardef.UnkEntry{{Category: chardef.CategoryKanji, LeftID: 1, RightID: 2, Cost: 100, PosID: 5}}
	p := NewMeCabProvider(cc, entries)

	text := buildText(t, cc, "東京都")
	nodes := p.ProvideOOV(text, 0, 0)
	require.Len(t, nodes, 1, "GROUP=1 should emit exactly one node spanning the whole run")
	assert.Equal(t, 0, nodes[0].Begin)
	assert.Equal(t, len("東京都"), nodes[0].End)
	assert.True(t, nodes[0].IsOOV)
	assert.Equal(t, int16(5), nodes[0].Info.POSID)
}

func TestMeCabProviderUngroupedEmitsPerRune(t *testing.T) {
	cc, err := chardef.ParseCharDef(strings.NewReader(
		"KANJI 1 0 0\n0x4E00..0x9FFF KANJI\n"))
	require.NoError(t, err)
	entries := []chardef.UnkEntry{{Category: chardef.CategoryKanji, LeftID: 1, RightID: 2, Cost: 100, PosID: 5}}
	p := NewMeCabProvider(cc, entries)

	text := buildText(t, cc, "東京都")
	nodes := p.ProvideOOV(text, 0, 0)
	require.Len(t, nodes, 3, "ungrouped category emits one node per rune boundary")
	assert.Equal(t, 3, nodes[0].End)
	assert.Equal(t, 6, nodes[1].End)
	assert.Equal(t, 9, nodes[2].End)
}

func TestMeCabProviderRespectsMask(t *testing.T) {
	cc, err := chardef.ParseCharDef(strings.NewReader(
		"KANJI 1 0 0\n0x4E00..0x9FFF KANJI\n"))
	require.NoError(t, err)
	entries := []chardef.UnkEntry{{Category: chardef.CategoryKanji, LeftID: 1, RightID: 2, Cost: 100, PosID: 5}}
	p := NewMeCabProvider(cc, entries)
	text := buildText(t, cc, "東京都")

	var mask Mask
	mask.Set(3)
	nodes := p.ProvideOOV(text, 0, mask)
	require.Len(t, nodes, 2, "the 3-byte length already covered in-vocabulary should be suppressed")
}

func TestSimpleProvider(t *testing.T) {
	cc, err := chardef.ParseCharDef(strings.NewReader("KANJI 1 0 0\n0x4E00..0x9FFF KANJI\n"))
	require.NoError(t, err)
	text := buildText(t, cc, "東京")
	p := &SimpleProvider{LeftID: 1, RightID: 2, Cost: 50, PosID: 9}

	nodes := p.ProvideOOV(text, 0, 0)
	require.Len(t, nodes, 1)
	assert.Equal(t, len("東京"), nodes[0].End)
	assert.Equal(t, int16(9), nodes[0].Info.POSID)
}

func TestRegexProviderAnchoredMatch(t *testing.T) {
	cc, err := chardef.ParseCharDef(strings.NewReader("DEFAULT 0 1 0\n"))
	require.NoError(t, err)
	text := buildText(t, cc, "12345abc")
	p := &RegexProvider{Pattern: regexp.MustCompile(`^[0-9]+`), LeftID: 1, RightID: 1, Cost: 10, PosID: 2}

	nodes := p.ProvideOOV(text, 0, 0)
	require.Len(t, nodes, 1)
	assert.Equal(t, 5, nodes[0].End)
	assert.Equal(t, "12345", nodes[0].Info.Surface)
}

func TestRegexProviderNoMatchAtOffset(t *testing.T) {
	cc, err := chardef.ParseCharDef(strings.NewReader("DEFAULT 0 1 0\n"))
	require.NoError(t, err)
	text := buildText(t, cc, "abc123")
	p := &RegexProvider{Pattern: regexp.MustCompile(`^[0-9]+`), LeftID: 1, RightID: 1, Cost: 10}

	nodes := p.ProvideOOV(text, 0, 0)
	assert.Empty(t, nodes)
}
