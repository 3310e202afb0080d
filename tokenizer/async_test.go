package tokenizer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakachi-nlp/wakachi/morpheme"
	"github.com/wakachi-nlp/wakachi/oov"
)

func TestTokenizeSentencesAsyncPreservesOrder(t *testing.T) {
	cc := buildCharCategory(t)
	tok := newTestTokenizer(t, Options{
		Lexicon:      buildLexicon(t),
		Grammar:      buildGrammar(t),
		CharCategory: cc,
		OovProviders: []oov.Provider{&oov.SimpleProvider{LeftID: 1, RightID: 1, Cost: 1000, PosID: 1}},
	})

	inputs := []string{"abc", "東京", "def", "東京", "ghi"}
	in := make(chan string)
	go func() {
		defer close(in)
		for _, s := range inputs {
			in <- s
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out := tok.TokenizeSentencesAsync(ctx, morpheme.ModeC, in, 3)

	var got []string
	for r := range out {
		require.NoError(t, r.Err)
		m, err := r.List.Get(0)
		require.NoError(t, err)
		got = append(got, m.Surface())
	}
	assert.Equal(t, []string{"abc", "東京", "def", "東京", "ghi"}, got)
}
