package dic

import (
	"github.com/wakachi-nlp/wakachi/werror"
	"github.com/wakachi-nlp/wakachi/wordid"
)

// Lexicon is one dictionary's trie + word-parameter table + word-info
// table, all addressed by the same dictionary id (so wordid.ID values it
// hands out always decode back to this lexicon via wordid.Dic).
type Lexicon struct {
	dicID     int
	trie      *trie
	params    *wordParamTable
	wordInfos *wordInfoTable
}

// DicID returns the dictionary id this lexicon's word ids are tagged with.
func (l *Lexicon) DicID() int { return l.dicID }

// Size returns the number of words in this lexicon.
func (l *Lexicon) Size() int { return l.params.Size() }

// Match is a lexicon-level common-prefix lookup result: a fully-qualified
// wordid.ID (this lexicon's dictionary id already baked in, unlike the
// trie's raw per-lexicon PrefixMatch) and the byte length it matched.
type Match struct {
	WordID     wordid.ID
	ByteLength int
}

// Lookup performs a common-prefix search at a single byte offset,
// returning every (wordId, byteLength) match in increasing byteLength
// order.
func (l *Lexicon) Lookup(data []byte, offset int) []Match {
	raw := l.trie.CommonPrefixSearch(data, offset)
	out := make([]Match, len(raw))
	for i, m := range raw {
		out[i] = Match{WordID: wordid.MakeUnchecked(l.dicID, int(m.WordIndex)), ByteLength: m.ByteLength}
	}
	return out
}

func (l *Lexicon) wordIndex(id wordid.ID) (int, error) {
	if wordid.Dic(id) != l.dicID {
		return 0, werror.Config("lexicon %d: word id %d belongs to dictionary %d", l.dicID, id, wordid.Dic(id))
	}
	return wordid.Word(id), nil
}

func (l *Lexicon) GetLeftID(id wordid.ID) (int16, error) {
	idx, err := l.wordIndex(id)
	if err != nil {
		return 0, err
	}
	return l.params.GetLeftID(idx)
}

func (l *Lexicon) GetRightID(id wordid.ID) (int16, error) {
	idx, err := l.wordIndex(id)
	if err != nil {
		return 0, err
	}
	return l.params.GetRightID(idx)
}

func (l *Lexicon) GetCost(id wordid.ID) (int16, error) {
	idx, err := l.wordIndex(id)
	if err != nil {
		return 0, err
	}
	return l.params.GetCost(idx)
}

func (l *Lexicon) SetCost(id wordid.ID, cost int16) error {
	idx, err := l.wordIndex(id)
	if err != nil {
		return err
	}
	return l.params.SetCost(idx, cost)
}

func (l *Lexicon) GetWordInfo(id wordid.ID) (*WordInfo, error) {
	idx, err := l.wordIndex(id)
	if err != nil {
		return nil, err
	}
	return l.wordInfos.Get(idx)
}

// LexiconSet composes a system lexicon with zero or more user lexicons.
// Lookups query every contained lexicon; each lexicon's own dictionary id
// is already baked into the wordid.ID values it returns, so results from
// different lexicons never collide.
type LexiconSet struct {
	system *Lexicon
	users  []*Lexicon
}

// NewLexiconSet builds a set from a required system lexicon and optional
// user lexicons, in load order. Later user dictionaries shadow nothing;
// lookups simply accumulate candidates from all of them.
func NewLexiconSet(system *Lexicon, users ...*Lexicon) *LexiconSet {
	return &LexiconSet{system: system, users: users}
}

// Size returns the highest dictionary id participating in this set plus
// one; every wordid.ID this set returns has a dictionary id below it.
func (s *LexiconSet) Size() int {
	n := s.system.dicID + 1
	for _, u := range s.users {
		if u.dicID+1 > n {
			n = u.dicID + 1
		}
	}
	return n
}

func (s *LexiconSet) lexicons() []*Lexicon {
	all := make([]*Lexicon, 0, 1+len(s.users))
	all = append(all, s.system)
	all = append(all, s.users...)
	return all
}

// Lookup queries every contained lexicon at offset and concatenates their
// matches; order across lexicons is system-first, then user dictionaries
// in load order.
func (s *LexiconSet) Lookup(data []byte, offset int) []Match {
	var out []Match
	for _, lex := range s.lexicons() {
		out = append(out, lex.Lookup(data, offset)...)
	}
	return out
}

func (s *LexiconSet) lexiconFor(id wordid.ID) (*Lexicon, error) {
	dic := wordid.Dic(id)
	if s.system.dicID == dic {
		return s.system, nil
	}
	for _, u := range s.users {
		if u.dicID == dic {
			return u, nil
		}
	}
	return nil, werror.Config("lexicon set: no lexicon registered for dictionary id %d", dic)
}

func (s *LexiconSet) GetWordInfo(id wordid.ID) (*WordInfo, error) {
	lex, err := s.lexiconFor(id)
	if err != nil {
		return nil, err
	}
	return lex.GetWordInfo(id)
}

func (s *LexiconSet) GetLeftID(id wordid.ID) (int16, error) {
	lex, err := s.lexiconFor(id)
	if err != nil {
		return 0, err
	}
	return lex.GetLeftID(id)
}

func (s *LexiconSet) GetRightID(id wordid.ID) (int16, error) {
	lex, err := s.lexiconFor(id)
	if err != nil {
		return 0, err
	}
	return lex.GetRightID(id)
}

func (s *LexiconSet) GetCost(id wordid.ID) (int16, error) {
	lex, err := s.lexiconFor(id)
	if err != nil {
		return 0, err
	}
	return lex.GetCost(id)
}

// ReverseLookup finds word ids whose WordInfo matches (headword, posId,
// reading), iterating the system lexicon then user lexicons in order and
// returning every match (a headword can be registered multiple times with
// different POS or readings).
func (s *LexiconSet) ReverseLookup(headword string, posID int, reading string) ([]wordid.ID, error) {
	var out []wordid.ID
	for _, lex := range s.lexicons() {
		for i := 0; i < lex.Size(); i++ {
			wi, err := lex.wordInfos.Get(i)
			if err != nil {
				return nil, err
			}
			if wi.Surface == headword && int(wi.POSID) == posID && wi.ReadingForm == reading {
				out = append(out, wordid.MakeUnchecked(lex.dicID, i))
			}
		}
	}
	return out, nil
}
