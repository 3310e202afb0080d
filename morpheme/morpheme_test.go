package morpheme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/input"
	"github.com/wakachi-nlp/wakachi/lattice"
	"github.com/wakachi-nlp/wakachi/pos"
	"github.com/wakachi-nlp/wakachi/wordid"
)

// fakeLexicon resolves a fixed table of word ids to WordInfo/connection
// parameters, standing in for *dic.LexiconSet in these tests.
type fakeLexicon struct {
	infos map[wordid.ID]*dic.WordInfo
}

func (f *fakeLexicon) GetWordInfo(id wordid.ID) (*dic.WordInfo, error) { return f.infos[id], nil }
func (f *fakeLexicon) GetLeftID(wordid.ID) (int16, error)              { return 1, nil }
func (f *fakeLexicon) GetRightID(wordid.ID) (int16, error)             { return 2, nil }
func (f *fakeLexicon) GetCost(wordid.ID) (int16, error)                { return 10, nil }

type fakeGrammar struct{}

func (fakeGrammar) PartOfSpeechString(id int) (pos.POS, bool) {
	return pos.POS{"名詞", "普通名詞", "*", "*", "*", "*"}, true
}

func buildText(t *testing.T, s string) *input.InputText {
	t.Helper()
	cc, err := chardef.ParseCharDef(strings.NewReader("DEFAULT 0 1 0\n"))
	require.NoError(t, err)
	return input.NewBuilder(s).Build(cc)
}

func TestGetMapsToOriginalOffsets(t *testing.T) {
	text := buildText(t, "京都")
	lex := &fakeLexicon{infos: map[wordid.ID]*dic.WordInfo{
		1: {Surface: "京都", NormalizedForm: "京都", DictionaryForm: "京都", ReadingForm: "キョウト"},
	}}
	path := []*lattice.Node{{Begin: 0, End: 6, WordID: 1}}
	list := New(text, path, ModeC, lex, fakeGrammar{})

	m, err := list.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Begin())
	assert.Equal(t, 2, m.End())
	assert.Equal(t, "京都", m.Surface())
	assert.Equal(t, "キョウト", m.ReadingForm())
}

func TestSplitExpandsWiderUnitsToModeA(t *testing.T) {
	text := buildText(t, "東京都")
	aID1, aID2 := wordid.MakeUnchecked(0, 10), wordid.MakeUnchecked(0, 11)
	cID := wordid.MakeUnchecked(0, 12)
	lex := &fakeLexicon{infos: map[wordid.ID]*dic.WordInfo{
		aID1: {Surface: "東京", NormalizedForm: "東京", DictionaryForm: "東京", ReadingForm: "トウキョウ"},
		aID2: {Surface: "都", NormalizedForm: "都", DictionaryForm: "都", ReadingForm: "ト"},
		cID: {
			Surface: "東京都", NormalizedForm: "東京都", DictionaryForm: "東京都", ReadingForm: "トウキョウト",
			AUnitSplit: []wordid.ID{aID1, aID2},
		},
	}}
	path := []*lattice.Node{{Begin: 0, End: 9, WordID: cID}}
	list := New(text, path, ModeC, lex, fakeGrammar{})

	split, err := list.Split(ModeA)
	require.NoError(t, err)
	require.Equal(t, 2, split.Size())

	m0, err := split.Get(0)
	require.NoError(t, err)
	m1, err := split.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "東京", m0.Surface())
	assert.Equal(t, "都", m1.Surface())
	assert.Equal(t, m0.End(), m1.Begin())
}

func TestSplitLeavesUnitAUnchanged(t *testing.T) {
	text := buildText(t, "猫")
	id := wordid.MakeUnchecked(0, 1)
	lex := &fakeLexicon{infos: map[wordid.ID]*dic.WordInfo{
		id: {Surface: "猫", NormalizedForm: "猫", DictionaryForm: "猫", ReadingForm: "ネコ"},
	}}
	path := []*lattice.Node{{Begin: 0, End: 3, WordID: id}}
	list := New(text, path, ModeC, lex, fakeGrammar{})

	split, err := list.Split(ModeA)
	require.NoError(t, err)
	require.Equal(t, 1, split.Size())
	m, err := split.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "猫", m.Surface())
}

func TestSplitSameModeReturnsSameList(t *testing.T) {
	text := buildText(t, "猫")
	id := wordid.MakeUnchecked(0, 1)
	lex := &fakeLexicon{infos: map[wordid.ID]*dic.WordInfo{
		id: {Surface: "猫"},
	}}
	path := []*lattice.Node{{Begin: 0, End: 3, WordID: id}}
	list := New(text, path, ModeC, lex, fakeGrammar{})

	same, err := list.Split(ModeC)
	require.NoError(t, err)
	assert.Same(t, list, same)
}
