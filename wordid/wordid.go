// Package wordid defines the packed 32-bit word identifier used across the
// dictionary, lattice and morpheme layers: 4 bits of dictionary id, 28 bits
// of in-dictionary word index.
package wordid

import "github.com/wakachi-nlp/wakachi/werror"

// ID is a word identifier: dicId:4 | wordIndex:28.
type ID int32

// Absent marks an OOV or not-yet-resolved word (BOS/EOS nodes, OOV
// placeholders before a provider fills them in).
const Absent ID = -1

const (
	dicBits  = 4
	wordBits = 28
	wordMask = 1<<wordBits - 1
	maxDic   = 1<<dicBits - 1 // 15 is reserved, so 0..14 are valid
	maxWord  = 1<<wordBits - 1
)

// Make packs a dictionary id and a word index into an ID. dic must be in
// [0,14] (15 is reserved) and word must fit in 28 bits; violating either
// bound is a RuntimeLimitError, not a panic, since callers may be decoding
// attacker-controlled dictionary files.
func Make(dic, word int) (ID, error) {
	if dic < 0 || dic >= maxDic {
		return Absent, werror.RuntimeLimit("wordid: dictionary id %d out of range [0,%d)", dic, maxDic)
	}
	if word < 0 || word > maxWord {
		return Absent, werror.RuntimeLimit("wordid: word index %d exceeds %d bits", word, wordBits)
	}
	return MakeUnchecked(dic, word), nil
}

// MakeUnchecked packs without bounds checking; used on the hot lookup path
// once the dictionary has already validated its own word-index ranges.
func MakeUnchecked(dic, word int) ID {
	return ID(dic<<wordBits | (word & wordMask))
}

// Dic extracts the dictionary id (unsigned top 4 bits).
func Dic(id ID) int {
	return int(uint32(id) >> wordBits)
}

// Word extracts the 28-bit word index.
func Word(id ID) int {
	return int(id) & wordMask
}

// IsAbsent reports whether id is negative, the sentinel range for "no
// word" (Absent for OOV markers and BOS/EOS). An ID packed with dictionary
// id 8 or higher is negative as an int32 and is reported absent as well.
func IsAbsent(id ID) bool {
	return id < 0
}
