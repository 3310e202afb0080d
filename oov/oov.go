// Package oov implements the out-of-vocabulary node providers: MeCab
// char-definition driven, a fixed-POS fallback, and an anchored-regex
// matcher. Each implements Provider and never returns an error for bad
// input data — an OOV provider must either produce a valid contribution
// or produce nothing.
package oov

import (
	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/input"
	"github.com/wakachi-nlp/wakachi/lattice"
	"github.com/wakachi-nlp/wakachi/wordid"
)

// Mask is the 64-bit "other in-vocabulary words at this offset" bitset:
// bit k set means an in-vocabulary node of byte length k+1 already exists
// at the offset a provider is being asked about. Byte
// lengths beyond 64 cannot be represented and are treated as "not already
// covered" — providers fall through to emitting their own candidate rather
// than silently dropping long words, matching the documented fixed design
// limit.
type Mask uint64

// Has reports whether an in-vocabulary node of byteLength already exists.
func (m Mask) Has(byteLength int) bool {
	if byteLength <= 0 || byteLength > 64 {
		return false
	}
	return m&(1<<uint(byteLength-1)) != 0
}

// Set records that an in-vocabulary node of byteLength exists, a no-op for
// lengths beyond the 64-bit window.
func (m *Mask) Set(byteLength int) {
	if byteLength <= 0 || byteLength > 64 {
		return
	}
	*m |= 1 << uint(byteLength-1)
}

// Provider emits OOV node candidates covering [offset, offset+k) for one or
// more k. Implementations must not error on malformed or unusual input
// text; configuration errors are caught at setup time instead.
type Provider interface {
	ProvideOOV(text *input.InputText, offset int, mask Mask) []*lattice.Node
}

func newInfoNode(text *input.InputText, begin, end int, leftID, rightID, cost int16, posID int16) *lattice.Node {
	surface := string(text.Bytes()[begin:end])
	return &lattice.Node{
		Begin: begin, End: end,
		LeftID: leftID, RightID: rightID, Cost: cost,
		WordID: wordid.Absent, DictionaryID: -1,
		IsOOV: true,
		Info: &dic.WordInfo{
			Surface:        surface,
			HeadwordLength: end - begin,
			POSID:          posID,
			NormalizedForm: surface,
			DictionaryForm: surface,
			ReadingForm:    surface,
		},
	}
}

// MeCabProvider is the char.def/unk.def driven provider: for every
// category applicable at offset, it walks the category's continuous run
// (bounded by the category's LENGTH flag) and emits one OOV node per
// template registered for that category, at every qualifying length
// (a single node at the full run length when the category's GROUP flag is
// set).
type MeCabProvider struct {
	Categories *chardef.CharCategory
	byCategory map[chardef.CategoryType][]chardef.UnkEntry
}

// NewMeCabProvider groups entries by category for fast lookup per offset.
func NewMeCabProvider(categories *chardef.CharCategory, entries []chardef.UnkEntry) *MeCabProvider {
	p := &MeCabProvider{Categories: categories, byCategory: make(map[chardef.CategoryType][]chardef.UnkEntry)}
	for _, e := range entries {
		p.byCategory[e.Category] = append(p.byCategory[e.Category], e)
	}
	return p
}

// allCategories enumerates every CategoryType bit in declaration order;
// iterating a closed, small set rather than reflecting over the bitset.
var allCategories = []chardef.CategoryType{
	chardef.CategoryDefault, chardef.CategorySpace, chardef.CategoryKanji,
	chardef.CategorySymbol, chardef.CategoryNumeric, chardef.CategoryAlpha,
	chardef.CategoryHiragana, chardef.CategoryKatakana, chardef.CategoryKanjiNumeric,
	chardef.CategoryGreek, chardef.CategoryCyrillic,
	chardef.CategoryUser1, chardef.CategoryUser2, chardef.CategoryUser3, chardef.CategoryUser4,
}

func (p *MeCabProvider) ProvideOOV(text *input.InputText, offset int, mask Mask) []*lattice.Node {
	if offset >= text.ByteLen() {
		return nil
	}
	types := text.GetCharCategoryTypes(offset, offset+runeByteLen(text, offset))
	var out []*lattice.Node

	for _, cat := range allCategories {
		if types&cat == 0 {
			continue
		}
		templates := p.byCategory[cat]
		if len(templates) == 0 {
			continue
		}
		flags := p.Categories.Flags(cat)
		maxBytes := 0
		if flags.Length > 0 {
			maxBytes = charsToBytes(text, offset, flags.Length)
		}
		runLen := text.CategoryContinuousLength(offset, maxBytes)
		if maxBytes > 0 && runLen > maxBytes {
			runLen = maxBytes
		}
		if runLen == 0 {
			continue
		}

		lengths := candidateLengths(text, offset, runLen, flags.Group)
		for _, length := range lengths {
			if mask.Has(length) {
				continue
			}
			for _, tpl := range templates {
				out = append(out, newInfoNode(text, offset, offset+length, tpl.LeftID, tpl.RightID, tpl.Cost, tpl.PosID))
			}
		}
	}
	return out
}

// candidateLengths returns the byte lengths a non-grouped category emits
// one node per rune boundary up to runLen; a grouped category emits only
// the full run length.
func candidateLengths(text *input.InputText, offset, runLen int, grouped bool) []int {
	if grouped {
		return []int{runLen}
	}
	var lengths []int
	b := offset
	end := offset + runLen
	for b < end {
		b += runeByteLen(text, b)
		lengths = append(lengths, b-offset)
	}
	return lengths
}

// runeByteLen returns the number of UTF-8 bytes the rune at byteOffset
// occupies, found by scanning forward to the next character-index change.
func runeByteLen(text *input.InputText, byteOffset int) int {
	c := text.CharIndexOf(byteOffset)
	for b := byteOffset + 1; b < text.ByteLen(); b++ {
		if text.CharIndexOf(b) != c {
			return b - byteOffset
		}
	}
	return text.ByteLen() - byteOffset
}

func charsToBytes(text *input.InputText, offset, chars int) int {
	b := offset
	for i := 0; i < chars && b < text.ByteLen(); i++ {
		b += runeByteLen(text, b)
	}
	return b - offset
}

// SimpleProvider emits a single OOV node of length = char-category
// continuous run length, with a fixed POS and cost.
type SimpleProvider struct {
	LeftID, RightID, Cost int16
	PosID                 int16
}

func (p *SimpleProvider) ProvideOOV(text *input.InputText, offset int, mask Mask) []*lattice.Node {
	if offset >= text.ByteLen() {
		return nil
	}
	runLen := text.CategoryContinuousLength(offset, 0)
	if runLen == 0 || mask.Has(runLen) {
		return nil
	}
	return []*lattice.Node{newInfoNode(text, offset, offset+runLen, p.LeftID, p.RightID, p.Cost, p.PosID)}
}
