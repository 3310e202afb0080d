package dic

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/wakachi-nlp/wakachi/pos"
	"github.com/wakachi-nlp/wakachi/wordid"
)

// NewSingleWordLexicon builds a minimal in-memory Lexicon recognizing
// exactly one headword, without parsing a compiled dictionary file. A real
// multi-headword lexicon is always built from a binary dictionary image via
// Open; compiling one from source (the CSV-to-binary builder) is out of
// scope for this module. Callers that need a small fixed vocabulary — a
// handful of special-cased entries, or a test fixture — compose one
// NewSingleWordLexicon per headword into a LexiconSet instead.
func NewSingleWordLexicon(dicID int, word string, leftID, rightID, cost int16, info WordInfo) *Lexicon {
	wordInfos := newWordInfoTable([]int32{0}, encodeWordInfoRecord(info), false, dicID)

	paramBytes := make([]byte, wordParamEntrySize)
	binary.LittleEndian.PutUint16(paramBytes[0:2], uint16(leftID))
	binary.LittleEndian.PutUint16(paramBytes[2:4], uint16(rightID))
	binary.LittleEndian.PutUint16(paramBytes[4:6], uint16(cost))
	params := &wordParamTable{view: newByteView(paramBytes), size: 1}

	return &Lexicon{dicID: dicID, trie: singleWordTrie(word), params: params, wordInfos: wordInfos}
}

// singleWordTrie builds a double array accepting exactly word's bytes,
// terminal at the final state and nowhere else: base[i] = byte ^ (i+1) and
// check[i+1] = i, so state i moves to i+1 on word's i-th byte under the
// same base/check transition rule CommonPrefixSearch applies to a parsed
// dictionary, with no special-casing for a hand-built trie.
func singleWordTrie(word string) *trie {
	data := []byte(word)
	size := len(data) + 1
	base := make([]int32, size)
	check := make([]int32, size)
	for i, b := range data {
		base[i] = int32(b) ^ int32(i+1)
		check[i+1] = int32(i)
	}
	base[len(data)] = -1 // terminal, indexing wordLists[0]
	return &trie{base: base, check: check, wordLists: [][]int32{{0}}}
}

func encodeUTF16Field(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := []byte{byte(len(units))}
	for _, u := range units {
		out = binary.LittleEndian.AppendUint16(out, u)
	}
	return out
}

func encodeI32ArrayField(vals []int32) []byte {
	out := []byte{byte(len(vals))}
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint32(out, uint32(v))
	}
	return out
}

// wordIDsToRaw extracts each id's word-index component, matching what
// wordInfoTable.Get expects in an i32Array split field: it re-packs each
// raw value against the table's own dicID via packID, so a split entry
// referencing a different dictionary cannot round-trip through this
// helper. Fine for the single-dictionary fixtures this constructor targets.
func wordIDsToRaw(ids []wordid.ID) []int32 {
	if len(ids) == 0 {
		return nil
	}
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[i] = int32(wordid.Word(id))
	}
	return out
}

// encodeWordInfoRecord packs info in the same variable-length layout
// wordInfoTable.Get decodes: surface, headwordLength, posId, normalizedForm,
// dictionaryFormWordId, dictionaryForm, and readingForm — each of the three
// trailing string fields collapsing to empty when it equals surface, same
// as a compiled dictionary binary encodes "same as surface" — then the
// three i32Array split fields. SynonymGroupIDs is omitted since hasSynonym
// is always false for a table built this way.
func encodeWordInfoRecord(info WordInfo) []byte {
	var rec []byte
	rec = append(rec, encodeUTF16Field(info.Surface)...)

	headLen := make([]byte, 2)
	binary.LittleEndian.PutUint16(headLen, uint16(info.HeadwordLength))
	rec = append(rec, headLen...)

	pidBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(pidBytes, uint16(info.POSID))
	rec = append(rec, pidBytes...)

	normalized := info.NormalizedForm
	if normalized == info.Surface {
		normalized = ""
	}
	rec = append(rec, encodeUTF16Field(normalized)...)

	rec = append(rec, binary.LittleEndian.AppendUint32(nil, 0xFFFFFFFF)...) // dictionaryFormWordId = -1

	dictForm := info.DictionaryForm
	if dictForm == info.Surface {
		dictForm = ""
	}
	rec = append(rec, encodeUTF16Field(dictForm)...)

	reading := info.ReadingForm
	if reading == info.Surface {
		reading = ""
	}
	rec = append(rec, encodeUTF16Field(reading)...)

	rec = append(rec, encodeI32ArrayField(wordIDsToRaw(info.AUnitSplit))...)
	rec = append(rec, encodeI32ArrayField(wordIDsToRaw(info.BUnitSplit))...)
	rec = append(rec, encodeI32ArrayField(wordIDsToRaw(info.WordStructure))...)
	return rec
}

// NewFixedCostGrammar builds a Grammar with the given POS table whose
// connection matrix is leftSize x rightSize and charges cost at every
// cell, without parsing a dictionary's grammar block. Intended for
// embedding a few fixed POS entries and for tests that need a real
// *Grammar rather than a hand-rolled fake.
func NewFixedCostGrammar(entries []pos.POS, leftSize, rightSize int, cost int16) *Grammar {
	posTable, err := pos.NewTable(entries)
	if err != nil {
		// entries is caller-supplied and fixed-size in every call site this
		// constructor targets; NewTable only fails past pos.MaxID entries.
		panic(err)
	}
	cells := make([]int16, leftSize*rightSize)
	for i := range cells {
		cells[i] = cost
	}
	return &Grammar{
		posTable: posTable,
		matrix:   &connectionMatrix{leftSize: leftSize, rightSize: rightSize, raw: cells},
	}
}
