// Package pos implements the fixed-depth part-of-speech table: a 6-tuple of
// strings (category/subcategories/inflection type/inflection form) mapped to
// a dense posId, shared by the system dictionary and appendable by user
// dictionaries.
package pos

import (
	"strings"

	"github.com/wakachi-nlp/wakachi/werror"
)

// Depth is the fixed number of POS tuple elements (categories, sub
// categories, inflection type, inflection form).
const Depth = 6

// MaxID is the largest posId the 16-bit on-disk encoding can carry.
const MaxID = 32767

// POS is an immutable 6-tuple.
type POS [Depth]string

func (p POS) key() string { return strings.Join(p[:], "\x00") }

// Table maps POS 6-tuples to dense ids. System entries occupy
// [0, systemSize); user dictionaries append beyond that without
// deduplicating against each other (see Table.AddUserPOS).
type Table struct {
	entries []POS
	byKey   map[string]int
}

// NewTable builds a Table from the system POS list, in on-disk order (so
// posId matches the dictionary's own indices).
func NewTable(system []POS) (*Table, error) {
	if len(system) > MaxID+1 {
		return nil, werror.RuntimeLimit("pos: system POS count %d exceeds %d", len(system), MaxID+1)
	}
	t := &Table{entries: append([]POS(nil), system...), byKey: make(map[string]int, len(system))}
	for i, p := range system {
		t.byKey[p.key()] = i
	}
	return t, nil
}

// Size returns the number of registered POS entries (system + user).
func (t *Table) Size() int { return len(t.entries) }

// Get returns the tuple for id, or false if id is out of range.
func (t *Table) Get(id int) (POS, bool) {
	if id < 0 || id >= len(t.entries) {
		return POS{}, false
	}
	return t.entries[id], true
}

// Lookup returns the id of an existing tuple (system or previously
// appended), or false.
func (t *Table) Lookup(p POS) (int, bool) {
	id, ok := t.byKey[p.key()]
	return id, ok
}

// AddUserPOS appends p unconditionally, even if an identical tuple was
// already registered: user-dictionary POS ids must stay stable once
// assigned, which rules out retroactively deduplicating against entries
// added by a different user dictionary loaded earlier in the same
// process.
func (t *Table) AddUserPOS(p POS) (int, error) {
	if len(t.entries) > MaxID {
		return 0, werror.RuntimeLimit("pos: POS table full at %d entries", len(t.entries))
	}
	id := len(t.entries)
	t.entries = append(t.entries, p)
	// Only index the first occurrence under byKey so Lookup still finds a
	// reading for round-tripping system POS; later duplicates remain
	// addressable only by their own id.
	if _, exists := t.byKey[p.key()]; !exists {
		t.byKey[p.key()] = id
	}
	return id, nil
}

// ResolveID resolves p to an id. When allowUser is true and p isn't
// registered yet, it is appended (AddUserPOS); otherwise an unknown p is a
// ConfigError.
func (t *Table) ResolveID(p POS, allowUser bool) (int, error) {
	if id, ok := t.Lookup(p); ok {
		return id, nil
	}
	if !allowUser {
		return 0, werror.Config("pos: %v not found in system POS table and userPOS=forbid", p)
	}
	return t.AddUserPOS(p)
}
