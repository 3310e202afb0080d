package tokenizer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/morpheme"
	"github.com/wakachi-nlp/wakachi/oov"
	"github.com/wakachi-nlp/wakachi/pos"
)

// buildCharCategory parses a minimal char.def recognizing kanji as their
// own category, everything else falling back to DEFAULT.
func buildCharCategory(t *testing.T) *chardef.CharCategory {
	t.Helper()
	cc, err := chardef.ParseCharDef(strings.NewReader(
		"DEFAULT 0 1 0\n" +
			"KANJI 0 0 0\n" +
			"0x4E00..0x9FFF KANJI\n",
	))
	require.NoError(t, err)
	return cc
}

// buildGrammar makes a two-POS grammar with every connection allowed at
// cost 0, so BestPath always finds a path through every candidate node.
func buildGrammar(t *testing.T) *dic.Grammar {
	t.Helper()
	return dic.NewFixedCostGrammar([]pos.POS{
		{"名詞", "普通名詞", "*", "*", "*", "*"},
		{"助詞", "格助詞", "*", "*", "*", "*"},
	}, 4, 4, 0)
}

func buildLexicon(t *testing.T) *dic.LexiconSet {
	t.Helper()
	tokyo := dic.NewSingleWordLexicon(0, "東京", 0, 0, 100, dic.WordInfo{
		Surface: "東京", HeadwordLength: len("東京"), POSID: 0,
		NormalizedForm: "東京", DictionaryForm: "東京", ReadingForm: "トウキョウ",
	})
	return dic.NewLexiconSet(tokyo)
}

func newTestTokenizer(t *testing.T, opts Options) *Tokenizer {
	t.Helper()
	tok, err := New(opts)
	require.NoError(t, err)
	return tok
}

func TestTokenizeResolvesKnownWord(t *testing.T) {
	cc := buildCharCategory(t)
	tok := newTestTokenizer(t, Options{
		Lexicon:      buildLexicon(t),
		Grammar:      buildGrammar(t),
		CharCategory: cc,
		OovProviders: []oov.Provider{&oov.SimpleProvider{LeftID: 1, RightID: 1, Cost: 1000, PosID: 1}},
	})

	list, err := tok.Tokenize(morpheme.ModeC, "東京")
	require.NoError(t, err)
	require.Equal(t, 1, list.Size())

	m, err := list.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "東京", m.Surface())
	assert.Equal(t, "トウキョウ", m.ReadingForm())
	assert.False(t, m.IsOOV())
}

func TestTokenizeFallsBackToOovProvider(t *testing.T) {
	cc := buildCharCategory(t)
	tok := newTestTokenizer(t, Options{
		Lexicon:      buildLexicon(t),
		Grammar:      buildGrammar(t),
		CharCategory: cc,
		OovProviders: []oov.Provider{&oov.SimpleProvider{LeftID: 1, RightID: 1, Cost: 1000, PosID: 1}},
	})

	// Not in the lexicon, and the default category spans the whole run,
	// so SimpleProvider should cover it as a single OOV morpheme.
	list, err := tok.Tokenize(morpheme.ModeC, "abc")
	require.NoError(t, err)
	require.Equal(t, 1, list.Size())

	m, err := list.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "abc", m.Surface())
	assert.True(t, m.IsOOV())
}

func TestTokenizeSentencesSplitsAndTokenizesEach(t *testing.T) {
	cc := buildCharCategory(t)
	tok := newTestTokenizer(t, Options{
		Lexicon:      buildLexicon(t),
		Grammar:      buildGrammar(t),
		CharCategory: cc,
		OovProviders: []oov.Provider{&oov.SimpleProvider{LeftID: 1, RightID: 1, Cost: 1000, PosID: 1}},
	})

	lists, err := tok.TokenizeSentences(morpheme.ModeC, "東京。abc。")
	require.NoError(t, err)
	require.Len(t, lists, 2)

	m0, err := lists[0].Get(0)
	require.NoError(t, err)
	assert.Equal(t, "東京", m0.Surface())
}

func TestDumpInternalStructuresProducesValidJSON(t *testing.T) {
	cc := buildCharCategory(t)
	tok := newTestTokenizer(t, Options{
		Lexicon:      buildLexicon(t),
		Grammar:      buildGrammar(t),
		CharCategory: cc,
		OovProviders: []oov.Provider{&oov.SimpleProvider{LeftID: 1, RightID: 1, Cost: 1000, PosID: 1}},
	})

	dump, err := tok.DumpInternalStructures("東京")
	require.NoError(t, err)

	var parsed LatticeDump
	require.NoError(t, json.Unmarshal([]byte(dump), &parsed))
	assert.Equal(t, "東京", parsed.Text)
	assert.NotEmpty(t, parsed.Nodes)
	assert.NotEmpty(t, parsed.BestPath)

	var sawTokyo bool
	for _, n := range parsed.Nodes {
		if n.Surface == "東京" {
			sawTokyo = true
			assert.True(t, n.IsConnectedToBOS)
		}
		assert.False(t, n.Begin == 0 && n.End == 0, "BOS node should not appear in the dump")
	}
	assert.True(t, sawTokyo, "expected a dumped node for the lexicon entry")
	for _, idx := range parsed.BestPath {
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(parsed.Nodes))
	}
}

func TestNewRequiresLexiconAndGrammar(t *testing.T) {
	_, err := New(Options{Grammar: buildGrammar(t)})
	assert.Error(t, err)

	_, err = New(Options{Lexicon: buildLexicon(t)})
	assert.Error(t, err)
}
