// Package morpheme presents a tokenized path as the caller-facing view: a
// MorphemeList wrapping (InputText, path, mode, grammar), with A/B/C
// granularity splitting driven by each WordInfo's own split arrays.
package morpheme

import (
	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/lattice"
	"github.com/wakachi-nlp/wakachi/pos"
	"github.com/wakachi-nlp/wakachi/wordid"

	"github.com/wakachi-nlp/wakachi/input"
)

// Mode selects the splitting granularity a MorphemeList presents: the
// ordinal order A < B < C matches dic.UnitA < dic.UnitB < dic.UnitC, so "is
// this word split at the requested mode" reduces to an ordinal comparison.
type Mode int

const (
	ModeA Mode = iota
	ModeB
	ModeC
)

// Lexicon is the subset of *dic.LexiconSet that morpheme needs to resolve a
// split word id back into its own WordInfo and connection parameters.
type Lexicon interface {
	GetWordInfo(id wordid.ID) (*dic.WordInfo, error)
	GetLeftID(id wordid.ID) (int16, error)
	GetRightID(id wordid.ID) (int16, error)
	GetCost(id wordid.ID) (int16, error)
}

// Grammar is the subset of *dic.Grammar that morpheme needs to resolve a
// posId into its 6-tuple.
type Grammar interface {
	PartOfSpeechString(id int) (pos.POS, bool)
}

// Morpheme is one unit of a MorphemeList: a node's WordInfo plus its
// position in the original (pre-normalization) text.
type Morpheme struct {
	beginOriginal, endOriginal int
	surface                    string
	info                       *dic.WordInfo
	node                       *lattice.Node
}

// Begin and End return this morpheme's span as character offsets into the
// original (un-normalized) text.
func (m Morpheme) Begin() int { return m.beginOriginal }
func (m Morpheme) End() int   { return m.endOriginal }

// Surface returns the original-text substring this morpheme covers —
// distinct from WordInfo.NormalizedForm, which is the dictionary's
// canonical spelling, not a copy of the input.
func (m Morpheme) Surface() string { return m.surface }

func (m Morpheme) NormalizedForm() string { return m.info.NormalizedForm }
func (m Morpheme) DictionaryForm() string { return m.info.DictionaryForm }
func (m Morpheme) ReadingForm() string    { return m.info.ReadingForm }
func (m Morpheme) POSID() int16           { return m.info.POSID }
func (m Morpheme) IsOOV() bool            { return m.node.IsOOV }
func (m Morpheme) WordInfo() *dic.WordInfo { return m.info }

// MorphemeList wraps an InputText, the chosen path (BOS/EOS already
// trimmed by the caller), the mode it was produced at, and enough of the
// dictionary to resolve POS tuples and further splits on demand.
type MorphemeList struct {
	text         *input.InputText
	originalText []rune
	path         []*lattice.Node
	mode         Mode
	lexicon      Lexicon
	grammar      Grammar
}

// New wraps path (a best-path slice with BOS/EOS already removed) as a
// MorphemeList at mode.
func New(text *input.InputText, path []*lattice.Node, mode Mode, lexicon Lexicon, grammar Grammar) *MorphemeList {
	return &MorphemeList{
		text:         text,
		originalText: []rune(text.Original()),
		path:         path,
		mode:         mode,
		lexicon:      lexicon,
		grammar:      grammar,
	}
}

// Mode returns the granularity this list was produced at.
func (l *MorphemeList) Mode() Mode { return l.mode }

// Size returns the number of morphemes.
func (l *MorphemeList) Size() int { return len(l.path) }

func (l *MorphemeList) wordInfo(n *lattice.Node) (*dic.WordInfo, error) {
	if n.WordID == wordid.Absent {
		return n.Info, nil
	}
	return l.lexicon.GetWordInfo(n.WordID)
}

// Get returns the i-th morpheme, mapping its byte span back to
// original-text character offsets via the InputText's offset maps.
func (l *MorphemeList) Get(i int) (Morpheme, error) {
	n := l.path[i]
	wi, err := l.wordInfo(n)
	if err != nil {
		return Morpheme{}, err
	}
	begin := l.text.GetOriginalIndex(n.Begin)
	end := l.text.GetOriginalIndex(n.End)
	return Morpheme{
		beginOriginal: begin,
		endOriginal:   end,
		surface:       string(l.originalText[begin:end]),
		info:          wi,
		node:          n,
	}, nil
}

// PartOfSpeech resolves a morpheme's posId into its 6-tuple.
func (l *MorphemeList) PartOfSpeech(m Morpheme) (pos.POS, bool) {
	return l.grammar.PartOfSpeechString(int(m.info.POSID))
}

// Split returns a new MorphemeList at mode, expanding every morpheme whose
// own unit type is wider than mode using its aUnitSplit (mode A) or
// bUnitSplit (mode B) word-id list; morphemes already at or finer than
// mode pass through unchanged. Mode C never splits, since C is the widest
// granularity.
func (l *MorphemeList) Split(mode Mode) (*MorphemeList, error) {
	if mode == l.mode {
		return l, nil
	}
	var out []*lattice.Node
	for _, n := range l.path {
		wi, err := l.wordInfo(n)
		if err != nil {
			return nil, err
		}
		splitIDs := l.splitFor(mode, wi)
		if splitIDs == nil {
			out = append(out, n)
			continue
		}
		expanded, err := l.expand(n, splitIDs)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return &MorphemeList{
		text:         l.text,
		originalText: l.originalText,
		path:         out,
		mode:         mode,
		lexicon:      l.lexicon,
		grammar:      l.grammar,
	}, nil
}

// splitFor returns the word-id list to expand wi into at mode, or nil if wi
// is already at or finer than mode and needs no expansion.
func (l *MorphemeList) splitFor(mode Mode, wi *dic.WordInfo) []wordid.ID {
	unit := wi.GetUnitType()
	switch mode {
	case ModeA:
		if unit != dic.UnitA {
			return wi.AUnitSplit
		}
	case ModeB:
		if unit == dic.UnitC {
			return wi.BUnitSplit
		}
	}
	return nil
}

// expand replaces n with one node per id in splitIDs, partitioning n's byte
// span proportionally to each sub-word's own surface byte length (they sum
// to n's span by construction of the dictionary's split tables).
func (l *MorphemeList) expand(n *lattice.Node, splitIDs []wordid.ID) ([]*lattice.Node, error) {
	nodes := make([]*lattice.Node, len(splitIDs))
	begin := n.Begin
	for i, id := range splitIDs {
		wi, err := l.lexicon.GetWordInfo(id)
		if err != nil {
			return nil, err
		}
		leftID, err := l.lexicon.GetLeftID(id)
		if err != nil {
			return nil, err
		}
		rightID, err := l.lexicon.GetRightID(id)
		if err != nil {
			return nil, err
		}
		cost, err := l.lexicon.GetCost(id)
		if err != nil {
			return nil, err
		}
		end := begin + len(wi.Surface)
		nodes[i] = &lattice.Node{
			Begin: begin, End: end,
			LeftID: leftID, RightID: rightID, Cost: cost,
			WordID: id, DictionaryID: wordid.Dic(id),
		}
		begin = end
	}
	if len(nodes) > 0 {
		nodes[len(nodes)-1].End = n.End
	}
	return nodes, nil
}
