// Package tokenizer is the glue that drives tokenization end to end:
// build an InputText via text plugins, walk the lattice populating
// candidates from the lexicon and OOV providers, Viterbi-search the best
// path, run the path-rewrite plugins, and wrap the result as a
// morpheme.MorphemeList.
package tokenizer

import (
	"encoding/json"

	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/input"
	"github.com/wakachi-nlp/wakachi/lattice"
	"github.com/wakachi-nlp/wakachi/morpheme"
	"github.com/wakachi-nlp/wakachi/oov"
	"github.com/wakachi-nlp/wakachi/rewrite"
	"github.com/wakachi-nlp/wakachi/sentence"
	"github.com/wakachi-nlp/wakachi/werror"
	"github.com/wakachi-nlp/wakachi/wordid"
)

// Options configures a Tokenizer. Lexicon and Grammar are required;
// everything else has a usable zero value (no text plugins, no OOV
// providers, no rewrite plugins).
type Options struct {
	Lexicon      *dic.LexiconSet
	Grammar      *dic.Grammar
	CharCategory *chardef.CharCategory

	TextPlugins    []input.TextPlugin
	OovProviders   []oov.Provider
	RewritePlugins []rewrite.Plugin
	TokenChunker   *rewrite.TokenChunkerPlugin

	// SentenceLimit bounds sentence.GetEos's scan; 0 selects
	// sentence.DefaultLimit.
	SentenceLimit int
}

// Tokenizer holds one loaded dictionary's lexicon/grammar plus the
// configured plugin chain, ready to tokenize any number of texts.
type Tokenizer struct {
	lexicon      *dic.LexiconSet
	grammar      *dic.Grammar
	charCategory *chardef.CharCategory

	textPlugins    []input.TextPlugin
	oovProviders   []oov.Provider
	rewritePlugins []rewrite.Plugin
	tokenChunker   *rewrite.TokenChunkerPlugin

	sentenceLimit int
}

// New validates opts and builds a Tokenizer.
func New(opts Options) (*Tokenizer, error) {
	if opts.Lexicon == nil {
		return nil, werror.Config("tokenizer: Lexicon is required")
	}
	if opts.Grammar == nil {
		return nil, werror.Config("tokenizer: Grammar is required")
	}
	return &Tokenizer{
		lexicon:        opts.Lexicon,
		grammar:        opts.Grammar,
		charCategory:   opts.CharCategory,
		textPlugins:    opts.TextPlugins,
		oovProviders:   opts.OovProviders,
		rewritePlugins: opts.RewritePlugins,
		tokenChunker:   opts.TokenChunker,
		sentenceLimit:  opts.SentenceLimit,
	}, nil
}

// buildInputText runs text through the configured text plugins.
func (t *Tokenizer) buildInputText(text string) (*input.InputText, error) {
	b := input.NewBuilder(text)
	for _, p := range t.textPlugins {
		if err := p.Rewrite(b); err != nil {
			return nil, err
		}
	}
	return b.Build(t.charCategory), nil
}

// connectCost adapts *dic.Grammar to lattice.ConnectCost.
func (t *Tokenizer) connectCost(leftID, rightID int16) int16 {
	return t.grammar.GetConnectCost(int(leftID), int(rightID))
}

// buildLattice allocates the lattice, populates candidates at every
// reachable byte offset from the lexicon and OOV providers, and inserts
// EOS.
func (t *Tokenizer) buildLattice(text *input.InputText) (*lattice.Lattice, error) {
	l := lattice.New(text.ByteLen())
	data := text.Bytes()

	for i := 0; i < text.ByteLen(); i++ {
		if len(l.NodesEndingAt(i)) == 0 {
			continue // unreachable offset: nothing connects back to BOS here
		}
		if !text.CanBow(i) {
			continue
		}

		var mask oov.Mask
		for _, m := range t.lexicon.Lookup(data, i) {
			leftID, err := t.lexicon.GetLeftID(m.WordID)
			if err != nil {
				return nil, err
			}
			rightID, err := t.lexicon.GetRightID(m.WordID)
			if err != nil {
				return nil, err
			}
			cost, err := t.lexicon.GetCost(m.WordID)
			if err != nil {
				return nil, err
			}
			n := &lattice.Node{
				Begin: i, End: i + m.ByteLength,
				LeftID: leftID, RightID: rightID, Cost: cost,
				WordID: m.WordID, DictionaryID: wordid.Dic(m.WordID),
			}
			l.Add(n, t.connectCost)
			mask.Set(m.ByteLength)
		}

		for _, provider := range t.oovProviders {
			for _, n := range provider.ProvideOOV(text, i, mask) {
				l.Add(n, t.connectCost)
				mask.Set(n.End - n.Begin)
			}
		}
	}

	if err := l.InsertEOS(t.connectCost); err != nil {
		return nil, err
	}
	return l, nil
}

// resolveWordInfo adapts the lexicon into a rewrite.WordInfoResolver.
func (t *Tokenizer) resolveWordInfo(n *lattice.Node) (*dic.WordInfo, error) {
	if n.Info != nil {
		return n.Info, nil
	}
	return t.lexicon.GetWordInfo(n.WordID)
}

func (t *Tokenizer) posOf(posID int16) (category, subcategory string) {
	p, ok := t.grammar.PartOfSpeechString(int(posID))
	if !ok {
		return "", ""
	}
	return p[0], p[1]
}

// runRewritePlugins applies every configured rewrite plugin, in order, to
// path.
func (t *Tokenizer) runRewritePlugins(text *input.InputText, path []*lattice.Node) ([]*lattice.Node, error) {
	var err error
	for _, p := range t.rewritePlugins {
		path, err = p.Rewrite(text, path, t.resolveWordInfo)
		if err != nil {
			return nil, err
		}
	}
	if t.tokenChunker != nil {
		path, err = t.tokenChunker.RewriteWithPos(path, t.resolveWordInfo, t.posOf)
		if err != nil {
			return nil, err
		}
	}
	return path, nil
}

// Tokenize runs the full tokenization pipeline over text and returns it as
// a MorphemeList at mode.
func (t *Tokenizer) Tokenize(mode morpheme.Mode, text string) (*morpheme.MorphemeList, error) {
	inputText, err := t.buildInputText(text)
	if err != nil {
		return nil, err
	}
	l, err := t.buildLattice(inputText)
	if err != nil {
		return nil, err
	}
	path, err := l.BestPath()
	if err != nil {
		return nil, err
	}
	path = trimBOSEOS(path)
	path, err = t.runRewritePlugins(inputText, path)
	if err != nil {
		return nil, err
	}
	// The best path is at the widest granularity; Split expands it to mode.
	return morpheme.New(inputText, path, morpheme.ModeC, t.lexicon, t.grammar).Split(mode)
}

// trimBOSEOS drops the synthetic BOS/EOS sentinels lattice.BestPath
// includes, since morpheme.MorphemeList presents only real morphemes.
func trimBOSEOS(path []*lattice.Node) []*lattice.Node {
	if len(path) < 2 {
		return nil
	}
	return path[1 : len(path)-1]
}

// nonBreakChecker adapts a *dic.LexiconSet into sentence.NonBreakChecker:
// a candidate sentence break is rejected if any dictionary entry starting
// within a bounded lookback window spans across it.
type nonBreakChecker struct {
	lexicon *dic.LexiconSet
}

// nonBreakWindowBytes bounds how far back HasNonBreakWord looks for a word
// that might cross the candidate boundary; long outliers beyond this are
// not guarded against, the same bounded-window tradeoff oov.RegexProvider
// makes for its match window.
const nonBreakWindowBytes = 64

func (c *nonBreakChecker) HasNonBreakWord(text *input.InputText, eosByte int) bool {
	data := text.Bytes()
	windowStart := eosByte - nonBreakWindowBytes
	if windowStart < 0 {
		windowStart = 0
	}
	for start := windowStart; start < eosByte; start++ {
		if !text.CanBow(start) {
			continue
		}
		for _, m := range c.lexicon.Lookup(data, start) {
			if start+m.ByteLength > eosByte {
				return true
			}
		}
	}
	return false
}

// TokenizeSentences splits text into sentences first, then tokenizes each
// one independently.
func (t *Tokenizer) TokenizeSentences(mode morpheme.Mode, text string) ([]*morpheme.MorphemeList, error) {
	inputText, err := t.buildInputText(text)
	if err != nil {
		return nil, err
	}
	checker := &nonBreakChecker{lexicon: t.lexicon}
	spans := sentence.Split(inputText, checker, t.sentenceLimit)

	results := make([]*morpheme.MorphemeList, 0, len(spans))
	for _, sp := range spans {
		sentenceText := string(inputText.Bytes()[sp.Begin:sp.End])
		list, err := t.Tokenize(mode, sentenceText)
		if err != nil {
			return nil, err
		}
		results = append(results, list)
	}
	return results, nil
}

// NodeDump is the JSON shape of one lattice node in a LatticeDump.
type NodeDump struct {
	Begin            int    `json:"begin"`
	End              int    `json:"end"`
	WordID           int32  `json:"wordId"`
	Surface          string `json:"surface"`
	DictionaryID     int    `json:"dictionaryId"`
	IsOOV            bool   `json:"isOov"`
	LeftID           int16  `json:"leftId"`
	RightID          int16  `json:"rightId"`
	Cost             int16  `json:"cost"`
	TotalCost        int64  `json:"totalCost"`
	IsConnectedToBOS bool   `json:"isConnectedToBOS"`
}

// LatticeDump is the full lattice snapshot DumpInternalStructures
// produces: every node in the arena except BOS/EOS, plus the best path
// through it, expressed as indices into Nodes so the JSON round-trips
// field-for-field through json.Marshal/json.Unmarshal.
type LatticeDump struct {
	Text     string     `json:"text"`
	Nodes    []NodeDump `json:"nodes"`
	BestPath []int      `json:"bestPath"`
}

// DumpInternalStructures builds a JSON-serializable snapshot of the full
// lattice (before rewrite plugins run) for debugging. BOS and EOS nodes
// are omitted from Nodes; BestPath indices are remapped to match.
func (t *Tokenizer) DumpInternalStructures(text string) (string, error) {
	inputText, err := t.buildInputText(text)
	if err != nil {
		return "", err
	}
	l, err := t.buildLattice(inputText)
	if err != nil {
		return "", err
	}

	dump := LatticeDump{Text: text}
	arenaToDump := make(map[int]int, l.NodeCount())
	for i := 0; i < l.NodeCount(); i++ {
		if i == l.BosIndex() || i == l.EosIndex() {
			continue
		}
		n := l.Node(i)
		wi, err := t.resolveWordInfo(n)
		surface := ""
		if err == nil && wi != nil {
			surface = wi.Surface
		}
		arenaToDump[i] = len(dump.Nodes)
		dump.Nodes = append(dump.Nodes, NodeDump{
			Begin: n.Begin, End: n.End, WordID: int32(n.WordID), Surface: surface,
			DictionaryID: n.DictionaryID, IsOOV: n.IsOOV,
			LeftID: n.LeftID, RightID: n.RightID, Cost: n.Cost,
			TotalCost: n.TotalCost(), IsConnectedToBOS: n.ConnectedToBOS(),
		})
	}

	if path, err := l.BestPath(); err == nil {
		for _, n := range path {
			if idx, ok := arenaToDump[n.Index()]; ok {
				dump.BestPath = append(dump.BestPath, idx)
			}
		}
	}

	out, err := json.Marshal(dump)
	if err != nil {
		return "", werror.Tokenization("tokenizer: dumping internal structures: %v", err)
	}
	return string(out), nil
}
