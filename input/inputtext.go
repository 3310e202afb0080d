// Package input builds the normalized, offset-mapped view of raw text that
// the lattice and OOV providers operate on. Normalization happens rune by
// rune, using golang.org/x/text/unicode/norm's NFKC form plus
// unicode.ToLower, rather than over the whole string at once, so that
// every normalized rune keeps a precise pointer back to the original
// character it came from.
package input

import (
	"github.com/wakachi-nlp/wakachi/dic/chardef"
)

// InputText is the normalized, byte-addressable view of one tokenize call's
// input text, with bijective offset maps back to the original text.
type InputText struct {
	original   []rune
	normalized []rune
	bytes      []byte

	// byteToChar[b] is the normalized character index containing byte b;
	// it has len(bytes)+1 entries, the last being len(normalized) (the
	// end-of-text sentinel used by EOS).
	byteToChar []int

	// charToOriginal[c] is the original character index that normalized
	// character c was derived from; it has len(normalized)+1 entries, the
	// last being len(original).
	charToOriginal []int

	categories []chardef.CategoryType // one bitset per normalized rune
	canBow     []bool                 // one flag per byte offset (len(bytes)+1, trailing entry false)

	// charToByte[c] is the byte offset where normalized character c begins;
	// it has len(normalized)+1 entries, the last being len(bytes).
	charToByte []int
}

// ByteLen returns the length of the normalized UTF-8 byte image.
func (t *InputText) ByteLen() int { return len(t.bytes) }

// Bytes returns the normalized UTF-8 byte image. Callers must not mutate it.
func (t *InputText) Bytes() []byte { return t.bytes }

// Original returns the raw text this InputText was built from.
func (t *InputText) Original() string { return string(t.original) }

// Normalized returns the normalized text.
func (t *InputText) Normalized() string { return string(t.normalized) }

// GetOriginalIndex maps a byte offset in the normalized image back to a
// character index in the original text. Monotone non-decreasing in
// byteOffset.
func (t *InputText) GetOriginalIndex(byteOffset int) int {
	return t.charToOriginal[t.byteToChar[byteOffset]]
}

// CharIndexOf maps a byte offset to a normalized character index.
func (t *InputText) CharIndexOf(byteOffset int) int { return t.byteToChar[byteOffset] }

// CanBow reports whether byteOffset may begin a word: false inside a
// multi-byte code point, and false when the character at that offset
// carries the NOOOVBOW category bit.
func (t *InputText) CanBow(byteOffset int) bool {
	if byteOffset < 0 || byteOffset >= len(t.canBow) {
		return false
	}
	return t.canBow[byteOffset]
}

// GetCharCategoryTypes returns the union of category bits over the
// normalized characters spanning byte offsets [begin, end).
func (t *InputText) GetCharCategoryTypes(begin, end int) chardef.CategoryType {
	var types chardef.CategoryType
	startChar := t.byteToChar[begin]
	endChar := t.byteToChar[end]
	for c := startChar; c < endChar; c++ {
		types |= t.categories[c]
	}
	return types
}

// CategoryContinuousLength returns the byte length of the maximal run of
// normalized characters starting at byteOffset that all share at least one
// category bit with the starting character, bounded by max bytes (0 or
// negative means unbounded).
func (t *InputText) CategoryContinuousLength(byteOffset int, max int) int {
	startChar := t.byteToChar[byteOffset]
	if startChar >= len(t.categories) {
		return 0
	}
	want := t.categories[startChar]
	c := startChar
	for c < len(t.categories) && t.categories[c]&want != 0 {
		c++
		if max > 0 {
			end := t.charByteOffset(c)
			if end-byteOffset >= max {
				break
			}
		}
	}
	return t.charByteOffset(c) - byteOffset
}

// ByteOffsetOf returns the byte offset at which normalized character index
// c begins (c == len(Normalized()) yields ByteLen()), the inverse of
// CharIndexOf.
func (t *InputText) ByteOffsetOf(c int) int { return t.charByteOffset(c) }

// charByteOffset returns the byte offset at which normalized character
// index c begins (c == len(normalized) yields ByteLen()).
func (t *InputText) charByteOffset(c int) int {
	if c < 0 || c >= len(t.charToByte) {
		return len(t.bytes)
	}
	return t.charToByte[c]
}
