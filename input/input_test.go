package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakachi-nlp/wakachi/dic/chardef"
)

func mustCharCategory(t *testing.T, def string) *chardef.CharCategory {
	t.Helper()
	cc, err := chardef.ParseCharDef(strings.NewReader(def))
	require.NoError(t, err)
	return cc
}

func TestBuilderIdentityBuild(t *testing.T) {
	cc := mustCharCategory(t, "DEFAULT 0 1 0\n")
	b := NewBuilder("abc")
	text := b.Build(cc)

	assert.Equal(t, "abc", text.Normalized())
	assert.Equal(t, 3, text.ByteLen())
	for i := 0; i <= 3; i++ {
		assert.Equal(t, i, text.GetOriginalIndex(i))
	}
}

func TestOffsetMappingMonotone(t *testing.T) {
	cc := mustCharCategory(t, "DEFAULT 0 1 0\n")
	b := NewBuilder("ABC")
	require.NoError(t, (&DefaultInputTextPlugin{}).Rewrite(b))
	text := b.Build(cc)

	assert.Equal(t, "abc", text.Normalized())
	prev := -1
	for i := 0; i <= text.ByteLen(); i++ {
		got := text.GetOriginalIndex(i)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestCanBowFalseInsideMultiByteRune(t *testing.T) {
	cc := mustCharCategory(t, "DEFAULT 0 1 0\nKANJI 0 0 2\n0x6771..0x90FD KANJI\n")
	b := NewBuilder("東")
	text := b.Build(cc)

	assert.True(t, text.CanBow(0))
	for i := 1; i < text.ByteLen(); i++ {
		assert.False(t, text.CanBow(i), "continuation bytes must not be BOW positions")
	}
}

func TestCanBowFalseUnderNoOOVBOW(t *testing.T) {
	cc := mustCharCategory(t, "DEFAULT 0 1 0\nNOOOVBOW 0 1 0\n0x0041 NOOOVBOW\n")
	b := NewBuilder("A")
	text := b.Build(cc)
	assert.False(t, text.CanBow(0))
}

func TestProlongedSoundMarkCollapse(t *testing.T) {
	cc := mustCharCategory(t, "DEFAULT 0 1 0\n")
	b := NewBuilder("すごーーーい")
	require.NoError(t, (ProlongedSoundMarkInputTextPlugin{}).Rewrite(b))
	text := b.Build(cc)
	assert.Equal(t, "すごーい", text.Normalized())
}

func TestUserReplacementsLongestMatchFirst(t *testing.T) {
	cc := mustCharCategory(t, "DEFAULT 0 1 0\n")
	b := NewBuilder("ABCxyz")
	plugin := &DefaultInputTextPlugin{UserReplacements: map[string]string{
		"ABC": "X",
		"A":   "Z",
	}}
	require.NoError(t, plugin.Rewrite(b))
	text := b.Build(cc)
	assert.Equal(t, "xxyz", text.Normalized())
}

func TestGetCharCategoryTypesUnion(t *testing.T) {
	cc := mustCharCategory(t, "DEFAULT 0 1 0\nKANJI 0 0 2\nHIRAGANA 0 0 0\n0x6771 KANJI\n0x3059 HIRAGANA\n")
	b := NewBuilder("東す")
	text := b.Build(cc)

	// byte offsets: 東 occupies [0,3), す occupies [3,6).
	types := text.GetCharCategoryTypes(0, text.ByteLen())
	assert.NotZero(t, types&chardef.CategoryKanji)
	assert.NotZero(t, types&chardef.CategoryHiragana)
}
