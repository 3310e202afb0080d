// Package rewrite implements path-rewrite plugins: they run on the
// tokenizer's chosen best path, in configured order, and may concatenate
// runs of nodes into a single synthesized node. Like the OOV providers,
// they do not fail on ordinary input data: Rewrite returns an error only
// when resolving a node's WordInfo fails, and a malformed configuration is
// instead caught once at plugin construction time.
package rewrite

import (
	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/input"
	"github.com/wakachi-nlp/wakachi/lattice"
	"github.com/wakachi-nlp/wakachi/wordid"
)

// WordInfoResolver fetches the WordInfo backing a path node: a lexicon
// lookup when the node carries a real WordID, or the node's own
// synthesized Info for OOV and already-rewritten nodes.
type WordInfoResolver func(n *lattice.Node) (*dic.WordInfo, error)

// Plugin rewrites the best path in place, returning the replacement
// sequence.
type Plugin interface {
	Rewrite(text *input.InputText, path []*lattice.Node, resolve WordInfoResolver) ([]*lattice.Node, error)
}

// Concatenate replaces path[begin:end] with one node whose WordInfo is
// synthesized: concatenated surface/dictionaryForm/readingForm,
// normalizedForm from the explicit argument when non-empty or the
// concatenated surface otherwise, POS taken from path[begin].
func Concatenate(path []*lattice.Node, begin, end int, normalizedForm string, resolve WordInfoResolver) (*lattice.Node, error) {
	var surface, dictForm, reading string
	var headLen int
	var firstInfo *dic.WordInfo
	for i := begin; i < end; i++ {
		wi, err := resolve(path[i])
		if err != nil {
			return nil, err
		}
		if i == begin {
			firstInfo = wi
		}
		surface += wi.Surface
		dictForm += wi.DictionaryForm
		reading += wi.ReadingForm
		headLen += wi.HeadwordLength
	}
	if normalizedForm == "" {
		normalizedForm = surface
	}
	first, last := path[begin], path[end-1]
	var cost int32
	for i := begin; i < end; i++ {
		cost += int32(path[i].Cost)
	}
	return &lattice.Node{
		Begin: first.Begin, End: last.End,
		LeftID: first.LeftID, RightID: last.RightID, Cost: clampCost(cost),
		WordID: wordid.Absent, DictionaryID: -1,
		Info: &dic.WordInfo{
			Surface:        surface,
			HeadwordLength: headLen,
			POSID:          firstInfo.POSID,
			NormalizedForm: normalizedForm,
			DictionaryForm: dictForm,
			ReadingForm:    reading,
		},
	}, nil
}

// ConcatenateOov behaves like Concatenate but marks the resulting node OOV
// and stamps posID, reusing existing (a lattice node already covering the
// exact merged span, found by the caller via getMinimumNode-style lookup)
// instead of synthesizing a fresh one when provided.
func ConcatenateOov(path []*lattice.Node, begin, end int, posID int16, resolve WordInfoResolver, existing *lattice.Node) (*lattice.Node, error) {
	if existing != nil {
		existing.IsOOV = true
		if existing.Info != nil {
			existing.Info.POSID = posID
		}
		return existing, nil
	}
	n, err := Concatenate(path, begin, end, "", resolve)
	if err != nil {
		return nil, err
	}
	n.IsOOV = true
	n.Info.POSID = posID
	return n, nil
}

func clampCost(cost int32) int16 {
	if cost > 32767 {
		return 32767
	}
	if cost < -32768 {
		return -32768
	}
	return int16(cost)
}

// charCategoryTypesOfNode reports the category bits spanning a node's
// byte range.
func charCategoryTypesOfNode(text *input.InputText, n *lattice.Node) chardef.CategoryType {
	return text.GetCharCategoryTypes(n.Begin, n.End)
}
