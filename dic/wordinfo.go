package dic

import (
	"github.com/wakachi-nlp/wakachi/werror"
	"github.com/wakachi-nlp/wakachi/wordid"
)

// UnitType is the granularity a WordInfo was authored at.
type UnitType int

const (
	UnitA UnitType = iota // smallest unit
	UnitB                 // intermediate
	UnitC                 // named-entity sized
)

// WordInfo is the immutable per-word tuple a lexicon resolves a wordid.ID
// to.
type WordInfo struct {
	Surface              string
	HeadwordLength       int
	POSID                int16
	NormalizedForm       string
	DictionaryFormWordID wordid.ID
	DictionaryForm       string
	ReadingForm          string
	AUnitSplit           []wordid.ID
	BUnitSplit           []wordid.ID
	WordStructure        []wordid.ID
	SynonymGroupIDs      []int32
}

// GetUnitType reports the granularity a word was registered at: A if
// aUnitSplit is empty, B if only aUnitSplit is non-empty, C if bUnitSplit
// is non-empty.
func (w *WordInfo) GetUnitType() UnitType {
	switch {
	case len(w.BUnitSplit) > 0:
		return UnitC
	case len(w.AUnitSplit) > 0:
		return UnitB
	default:
		return UnitA
	}
}

// wordInfoTable holds the word-info offset array and the record region; it
// decodes records lazily since each is variable-length and most lookups
// touch only a handful of entries per call.
type wordInfoTable struct {
	offsets    []int32
	records    []byte
	hasSynonym bool
	dicID      int
}

func parseWordInfoOffsets(c *cursor) ([]int32, error) {
	sizeRaw, err := c.i32()
	if err != nil {
		return nil, err
	}
	size := int(sizeRaw)
	if size < 0 {
		return nil, werror.DictionaryFormat("word info offsets: negative size %d", size)
	}
	offsets := make([]int32, size)
	for i := range offsets {
		v, err := c.i32()
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}
	return offsets, nil
}

func newWordInfoTable(offsets []int32, records []byte, hasSynonym bool, dicID int) *wordInfoTable {
	return &wordInfoTable{offsets: offsets, records: records, hasSynonym: hasSynonym, dicID: dicID}
}

func (t *wordInfoTable) Size() int { return len(t.offsets) }

func (t *wordInfoTable) packID(raw int32) wordid.ID {
	if raw < 0 {
		return wordid.Absent
	}
	return wordid.MakeUnchecked(t.dicID, int(raw))
}

func (t *wordInfoTable) packIDs(raws []int32) []wordid.ID {
	if len(raws) == 0 {
		return nil
	}
	out := make([]wordid.ID, len(raws))
	for i, r := range raws {
		out[i] = t.packID(r)
	}
	return out
}

// Get decodes and returns the WordInfo record for wordIndex.
func (t *wordInfoTable) Get(wordIndex int) (*WordInfo, error) {
	if wordIndex < 0 || wordIndex >= len(t.offsets) {
		return nil, werror.DictionaryFormat("word info table: index %d out of range [0,%d)", wordIndex, len(t.offsets))
	}
	off := int(t.offsets[wordIndex])
	if off < 0 || off > len(t.records) {
		return nil, werror.DictionaryFormat("word info table: bad offset %d for index %d", off, wordIndex)
	}
	c := newCursor(t.records[off:])

	surface, err := c.utf16String()
	if err != nil {
		return nil, err
	}
	headwordLen, err := c.u16()
	if err != nil {
		return nil, err
	}
	posIDRaw, err := c.i16()
	if err != nil {
		return nil, err
	}
	normalized, err := c.utf16String()
	if err != nil {
		return nil, err
	}
	if normalized == "" {
		normalized = surface
	}
	dictFormIDRaw, err := c.i32()
	if err != nil {
		return nil, err
	}
	dictionaryForm, err := c.utf16String()
	if err != nil {
		return nil, err
	}
	if dictionaryForm == "" {
		dictionaryForm = surface
	}
	reading, err := c.utf16String()
	if err != nil {
		return nil, err
	}
	if reading == "" {
		reading = surface
	}
	aSplitRaw, err := c.i32Array()
	if err != nil {
		return nil, err
	}
	bSplitRaw, err := c.i32Array()
	if err != nil {
		return nil, err
	}
	structureRaw, err := c.i32Array()
	if err != nil {
		return nil, err
	}
	var synonymRaw []int32
	if t.hasSynonym {
		synonymRaw, err = c.i32Array()
		if err != nil {
			return nil, err
		}
	}

	return &WordInfo{
		Surface:              surface,
		HeadwordLength:       int(headwordLen),
		POSID:                posIDRaw,
		NormalizedForm:       normalized,
		DictionaryFormWordID: t.packID(dictFormIDRaw),
		DictionaryForm:       dictionaryForm,
		ReadingForm:          reading,
		AUnitSplit:           t.packIDs(aSplitRaw),
		BUnitSplit:           t.packIDs(bSplitRaw),
		WordStructure:        t.packIDs(structureRaw),
		SynonymGroupIDs:      synonymRaw,
	}, nil
}
