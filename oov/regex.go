package oov

import (
	"regexp"

	"github.com/wakachi-nlp/wakachi/input"
	"github.com/wakachi-nlp/wakachi/lattice"
)

// defaultRegexWindow is the default bounded char window a RegexProvider
// searches within.
const defaultRegexWindow = 32

// RegexProvider matches a compiled, anchored regex within a bounded
// character window starting at the candidate offset.
type RegexProvider struct {
	Pattern               *regexp.Regexp // must be anchored with ^
	LeftID, RightID, Cost int16
	PosID                 int16
	// Window bounds how many characters past offset are searched; 0 means
	// defaultRegexWindow.
	Window int
	// Strict requires the match to end exactly at a char-category
	// boundary (as reported by text.CategoryContinuousLength); relaxed
	// matches are accepted at any length the regex itself settles on.
	Strict bool
}

func (p *RegexProvider) window() int {
	if p.Window > 0 {
		return p.Window
	}
	return defaultRegexWindow
}

func (p *RegexProvider) ProvideOOV(text *input.InputText, offset int, mask Mask) []*lattice.Node {
	if p.Pattern == nil || offset >= text.ByteLen() {
		return nil
	}
	end := offset
	for i := 0; i < p.window() && end < text.ByteLen(); i++ {
		end += runeByteLen(text, end)
	}
	window := text.Bytes()[offset:end]

	loc := p.Pattern.FindIndex(window)
	if loc == nil || loc[0] != 0 {
		return nil
	}
	length := loc[1]
	if length == 0 {
		return nil
	}
	if p.Strict {
		runLen := text.CategoryContinuousLength(offset, 0)
		if length != runLen {
			return nil
		}
	}
	if mask.Has(length) {
		return nil
	}
	return []*lattice.Node{newInfoNode(text, offset, offset+length, p.LeftID, p.RightID, p.Cost, p.PosID)}
}
