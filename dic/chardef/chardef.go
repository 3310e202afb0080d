// Package chardef parses MeCab-compatible char.def and unk.def text files:
// the category ranges and per-category flags that drive the MeCab
// out-of-vocabulary provider. Parsing is line-oriented, trim-then-split,
// rather than a grammar/parser-generator approach, since both file formats
// are one-record-per-line.
package chardef

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/wakachi-nlp/wakachi/pos"
	"github.com/wakachi-nlp/wakachi/werror"
)

// CategoryType is a bit in the per-code-point category bitset InputText
// precomputes.
type CategoryType uint32

const (
	CategoryDefault CategoryType = 1 << iota
	CategorySpace
	CategoryKanji
	CategorySymbol
	CategoryNumeric
	CategoryAlpha
	CategoryHiragana
	CategoryKatakana
	CategoryKanjiNumeric
	CategoryGreek
	CategoryCyrillic
	CategoryUser1
	CategoryUser2
	CategoryUser3
	CategoryUser4
	CategoryNoOOVBOW
)

var categoryNames = map[string]CategoryType{
	"DEFAULT":      CategoryDefault,
	"SPACE":        CategorySpace,
	"KANJI":        CategoryKanji,
	"SYMBOL":       CategorySymbol,
	"NUMERIC":      CategoryNumeric,
	"ALPHA":        CategoryAlpha,
	"HIRAGANA":     CategoryHiragana,
	"KATAKANA":     CategoryKatakana,
	"KANJINUMERIC": CategoryKanjiNumeric,
	"GREEK":        CategoryGreek,
	"CYRILLIC":     CategoryCyrillic,
	"USER1":        CategoryUser1,
	"USER2":        CategoryUser2,
	"USER3":        CategoryUser3,
	"USER4":        CategoryUser4,
	"NOOOVBOW":     CategoryNoOOVBOW,
}

// CategoryFlags are the per-category INVOKE/GROUP/LENGTH settings declared
// on a category's own definition line.
type CategoryFlags struct {
	Invoke bool
	Group  bool
	Length int
}

type codeRange struct {
	lo, hi rune
	types  CategoryType
}

// CharCategory is the parsed char.def table: a default category plus a
// sorted list of code point ranges that override it, and the flags
// declared per named category.
type CharCategory struct {
	ranges   []codeRange
	flags    map[CategoryType]CategoryFlags
	fallback CategoryType
}

// parseLine strips comments (from '#') and surrounding whitespace, and
// reports whether anything is left.
func parseLine(raw string) (string, bool) {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func lookupCategory(name string) (CategoryType, error) {
	t, ok := categoryNames[name]
	if !ok {
		return 0, werror.DictionaryFormat("chardef: unknown category %q", name)
	}
	return t, nil
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, werror.DictionaryFormat("chardef: bad code point %q: %v", s, err)
	}
	return rune(v), nil
}

// ParseCharDef reads a char.def file from r.
func ParseCharDef(r io.Reader) (*CharCategory, error) {
	cc := &CharCategory{flags: make(map[CategoryType]CategoryFlags), fallback: CategoryDefault}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		// Category definition lines have a NAME that resolves via
		// categoryNames followed by INVOKE GROUP LENGTH integers.
		if t, err := lookupCategory(fields[0]); err == nil && len(fields) >= 4 {
			invoke, err1 := strconv.Atoi(fields[1])
			group, err2 := strconv.Atoi(fields[2])
			length, err3 := strconv.Atoi(fields[3])
			if err1 == nil && err2 == nil && err3 == nil {
				cc.flags[t] = CategoryFlags{Invoke: invoke != 0, Group: group != 0, Length: length}
				continue
			}
		}
		// Otherwise this is a code-point range line: either a single code
		// point or LO..HI, followed by one or more category names.
		if len(fields) < 2 {
			return nil, werror.DictionaryFormat("chardef: malformed line %q", line)
		}
		var lo, hi rune
		if parts := strings.SplitN(fields[0], "..", 2); len(parts) == 2 {
			l, err := parseCodePoint(parts[0])
			if err != nil {
				return nil, err
			}
			h, err := parseCodePoint(parts[1])
			if err != nil {
				return nil, err
			}
			lo, hi = l, h
		} else {
			l, err := parseCodePoint(fields[0])
			if err != nil {
				return nil, err
			}
			lo, hi = l, l
		}
		var types CategoryType
		for _, name := range fields[1:] {
			t, err := lookupCategory(name)
			if err != nil {
				return nil, err
			}
			types |= t
		}
		cc.ranges = append(cc.ranges, codeRange{lo: lo, hi: hi, types: types})
	}
	if err := scanner.Err(); err != nil {
		return nil, werror.IO(err, "chardef: reading char.def")
	}
	sort.Slice(cc.ranges, func(i, j int) bool { return cc.ranges[i].lo < cc.ranges[j].lo })
	return cc, nil
}

// LoadCharDef opens and parses path.
func LoadCharDef(path string) (*CharCategory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, werror.IO(err, "chardef: opening %s", path)
	}
	defer f.Close()
	return ParseCharDef(f)
}

// TypesOf returns the category bitset for r: the union of every declared
// range containing r, or just the default category if none match.
func (c *CharCategory) TypesOf(r rune) CategoryType {
	var types CategoryType
	for _, rg := range c.ranges {
		if r >= rg.lo && r <= rg.hi {
			types |= rg.types
		}
	}
	if types == 0 {
		return c.fallback
	}
	return types
}

// Flags returns the INVOKE/GROUP/LENGTH settings for t, defaulting to
// "never invoke, no grouping, length 0" when t has no declaration.
func (c *CharCategory) Flags(t CategoryType) CategoryFlags {
	return c.flags[t]
}

// UnkEntry is one unk.def template row: the (leftId, rightId, cost, POS)
// to stamp on an out-of-vocabulary node belonging to Category.
type UnkEntry struct {
	Category CategoryType
	LeftID   int16
	RightID  int16
	Cost     int16
	POS      pos.POS
	PosID    int16
}

// ParseUnkDef reads unk.def rows of the form:
//
//	CATEGORY,leftId,rightId,cost,pos1,pos2,pos3,pos4,pos5,pos6
//
// resolving each POS tuple against table (appending to the user POS range
// when it isn't already registered, since unk.def POS entries are
// conventionally user-dictionary-scoped).
func ParseUnkDef(r io.Reader, table *pos.Table) ([]UnkEntry, error) {
	scanner := bufio.NewScanner(r)
	var out []UnkEntry
	for scanner.Scan() {
		line, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 4+pos.Depth {
			return nil, werror.DictionaryFormat("unk.def: malformed line %q", line)
		}
		category, err := lookupCategory(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, err
		}
		leftID, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, werror.DictionaryFormat("unk.def: bad leftId %q", fields[1])
		}
		rightID, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, werror.DictionaryFormat("unk.def: bad rightId %q", fields[2])
		}
		cost, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			return nil, werror.DictionaryFormat("unk.def: bad cost %q", fields[3])
		}
		var p pos.POS
		for i := 0; i < pos.Depth; i++ {
			p[i] = strings.TrimSpace(fields[4+i])
		}
		posID, err := table.ResolveID(p, true)
		if err != nil {
			return nil, err
		}
		out = append(out, UnkEntry{
			Category: category,
			LeftID:   int16(leftID),
			RightID:  int16(rightID),
			Cost:     int16(cost),
			POS:      p,
			PosID:    int16(posID),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, werror.IO(err, "unk.def: reading")
	}
	return out, nil
}

// LoadUnkDef opens and parses path.
func LoadUnkDef(path string, table *pos.Table) ([]UnkEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, werror.IO(err, "unk.def: opening %s", path)
	}
	defer f.Close()
	return ParseUnkDef(f, table)
}
