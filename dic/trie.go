package dic

import (
	"encoding/binary"

	"github.com/wakachi-nlp/wakachi/werror"
)

// trie is Aoe's double-array trie: two parallel int32 arrays, base and
// check, of identical length. A state s transitions on byte b to
// s' = base[s] ^ b if check[s'] == s. A terminal state (base[s] < 0) holds
// -base[s]-1 as an index into wordLists, the array of word-id groups
// (homograph surfaces resolve to more than one dictionary entry sharing a
// trie terminal).
type trie struct {
	base, check []int32
	wordLists   [][]int32
}

// parseTrie reads the double-array trie plus its word-id lists from c,
// which must be positioned at the start of the lexicon's trie section:
// `size:i32` int-pairs of base/check, immediately followed here by the
// word-id association table this module defines: a `count:i32`, then
// count lists in cursor.i32Array's one-byte-counted form.
func parseTrie(c *cursor) (*trie, error) {
	sizeRaw, err := c.i32()
	if err != nil {
		return nil, err
	}
	size := int(sizeRaw)
	if size < 0 {
		return nil, werror.DictionaryFormat("trie: negative size %d", size)
	}
	raw, err := c.bytesN(size * 8)
	if err != nil {
		return nil, err
	}
	base := make([]int32, size)
	check := make([]int32, size)
	for i := 0; i < size; i++ {
		base[i] = int32(binary.LittleEndian.Uint32(raw[i*8:]))
		check[i] = int32(binary.LittleEndian.Uint32(raw[i*8+4:]))
	}

	listCountRaw, err := c.i32()
	if err != nil {
		return nil, err
	}
	listCount := int(listCountRaw)
	if listCount < 0 {
		return nil, werror.DictionaryFormat("trie: negative word-id list count %d", listCount)
	}
	wordLists := make([][]int32, listCount)
	for i := 0; i < listCount; i++ {
		ids, err := c.i32Array()
		if err != nil {
			return nil, err
		}
		wordLists[i] = ids
	}

	return &trie{base: base, check: check, wordLists: wordLists}, nil
}

// transition returns the child of s on byte b, or false if check doesn't
// confirm the edge.
func (t *trie) transition(s int32, b byte) (int32, bool) {
	if int(s) < 0 || int(s) >= len(t.base) {
		return 0, false
	}
	next := t.base[s] ^ int32(b)
	if int(next) < 0 || int(next) >= len(t.check) || t.check[next] != s {
		return 0, false
	}
	return next, true
}

func (t *trie) isTerminal(s int32) bool {
	return int(s) >= 0 && int(s) < len(t.base) && t.base[s] < 0
}

func (t *trie) wordsAt(s int32) []int32 {
	idx := int(-t.base[s] - 1)
	if idx < 0 || idx >= len(t.wordLists) {
		return nil
	}
	return t.wordLists[idx]
}

// PrefixMatch is one common-prefix lookup result.
type PrefixMatch struct {
	WordIndex  int32 // index into this lexicon's word-param/word-info tables
	ByteLength int
}

// CommonPrefixSearch walks bytes[offset:] and returns, in increasing
// byteLength order, every (wordIndex, byteLength) pair whose prefix
// resolves to a trie terminal. The returned wordIndex values are raw
// per-lexicon indices; the caller (Lexicon) packs them into a full
// wordid.ID with its own dictionary id.
func (t *trie) CommonPrefixSearch(data []byte, offset int) []PrefixMatch {
	var out []PrefixMatch
	state := int32(0)
	for i := offset; i < len(data); i++ {
		next, ok := t.transition(state, data[i])
		if !ok {
			break
		}
		state = next
		if t.isTerminal(state) {
			for _, w := range t.wordsAt(state) {
				out = append(out, PrefixMatch{WordIndex: w, ByteLength: i + 1 - offset})
			}
		}
	}
	return out
}
