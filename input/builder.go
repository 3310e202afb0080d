package input

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/wakachi-nlp/wakachi/dic/chardef"
)

// TextPlugin rewrites a Builder's rune buffer before the final byte image
// and offset maps are computed. Plugins run in configured order; each sees
// the output of the previous one.
type TextPlugin interface {
	Rewrite(b *Builder) error
}

// Builder accumulates a (normalized rune, origin original-char-index) pair
// list that Build() turns into byte image + offset maps. Replacing a span
// of runes with a different number of output runes is the single primitive
// every plugin uses; it is always offset-monotone by construction, which
// keeps the resulting offset map monotone regardless of which plugins ran.
type Builder struct {
	original []rune
	runes    []rune
	origins  []int // origins[i] = original char index that runes[i] was derived from
}

// NewBuilder seeds a Builder with text, one rune per position, each mapped
// to its own index (the identity mapping before any plugin runs).
func NewBuilder(text string) *Builder {
	original := []rune(text)
	runes := append([]rune(nil), original...)
	origins := make([]int, len(runes))
	for i := range origins {
		origins[i] = i
	}
	return &Builder{original: original, runes: runes, origins: origins}
}

// Len returns the current rune count.
func (b *Builder) Len() int { return len(b.runes) }

// At returns the rune currently at position i.
func (b *Builder) At(i int) rune { return b.runes[i] }

// Replace substitutes runes[begin:end] with replacement, attributing every
// replacement rune to the origin of runes[begin] (the start of the span it
// replaces) so offsets stay monotone non-decreasing even when replacement
// is shorter or longer than the span it replaces.
func (b *Builder) Replace(begin, end int, replacement []rune) {
	origin := b.origins[begin]
	newRunes := make([]rune, 0, len(b.runes)-(end-begin)+len(replacement))
	newOrigins := make([]int, 0, cap(newRunes))
	newRunes = append(newRunes, b.runes[:begin]...)
	newOrigins = append(newOrigins, b.origins[:begin]...)
	for range replacement {
		newOrigins = append(newOrigins, origin)
	}
	newRunes = append(newRunes, replacement...)
	newRunes = append(newRunes, b.runes[end:]...)
	newOrigins = append(newOrigins, b.origins[end:]...)
	b.runes = newRunes
	b.origins = newOrigins
}

// Build materializes the final InputText: UTF-8 byte image, byte<->char and
// char<->original offset maps, and category/canBow vectors from cc.
func (b *Builder) Build(cc *chardef.CharCategory) *InputText {
	n := len(b.runes)
	categories := make([]chardef.CategoryType, n)
	for i, r := range b.runes {
		if cc != nil {
			categories[i] = cc.TypesOf(r)
		}
	}

	var bytesOut []byte
	byteToChar := make([]int, 0, n+1)
	charToByte := make([]int, n+1)
	canBow := make([]bool, 0, n+1)

	for i, r := range b.runes {
		charToByte[i] = len(bytesOut)
		encoded := []byte(string(r))
		noOOVBOW := categories[i]&chardef.CategoryNoOOVBOW != 0
		for j := range encoded {
			byteToChar = append(byteToChar, i)
			canBow = append(canBow, j == 0 && !noOOVBOW)
		}
		bytesOut = append(bytesOut, encoded...)
	}
	charToByte[n] = len(bytesOut)
	byteToChar = append(byteToChar, n)
	canBow = append(canBow, false)

	charToOriginal := make([]int, n+1)
	copy(charToOriginal, b.origins)
	charToOriginal[n] = len(b.original)

	return &InputText{
		original:       append([]rune(nil), b.original...),
		normalized:     append([]rune(nil), b.runes...),
		bytes:          bytesOut,
		byteToChar:     byteToChar,
		charToOriginal: charToOriginal,
		charToByte:     charToByte,
		categories:     categories,
		canBow:         canBow,
	}
}

// defaultLowercaseExceptions holds runes the default plugin must not lowercase
// even though unicode.ToLower would change them (e.g. the German eszett,
// which Sudachi-family normalizers traditionally leave untouched to avoid
// colliding with "ss").
var defaultLowercaseExceptions = map[rune]bool{
	'ß': true,
}

// DefaultInputTextPlugin first applies UserReplacements as literal
// substring substitutions, then normalizes every rune (replacement output
// included) to NFKC and lowercases it unless it is in Exceptions or the
// built-in exception list.
type DefaultInputTextPlugin struct {
	// UserReplacements maps literal substrings of the original text to a
	// replacement string, checked longest-key-first so multi-character
	// entries take precedence over single-character ones.
	UserReplacements map[string]string
	// Exceptions lists runes that must pass through unlowercased.
	Exceptions map[rune]bool
}

// Rewrite applies user replacements then per-rune NFKC + lowercasing.
func (p *DefaultInputTextPlugin) Rewrite(b *Builder) error {
	if len(p.UserReplacements) > 0 {
		applyUserReplacements(b, p.UserReplacements)
	}

	exceptions := p.Exceptions
	for i := 0; i < b.Len(); {
		r := b.At(i)
		normalized := []rune(norm.NFKC.String(string(r)))
		if !(exceptions[r] || defaultLowercaseExceptions[r]) {
			for j, nr := range normalized {
				normalized[j] = unicode.ToLower(nr)
			}
		}
		if len(normalized) == 1 && normalized[0] == r {
			i++
			continue
		}
		b.Replace(i, i+1, normalized)
		i += len(normalized)
	}
	return nil
}

// applyUserReplacements substitutes every occurrence of each key in
// replacements, longest key first so overlapping entries resolve
// deterministically (a 3-character key wins over a 1-character prefix of
// it).
func applyUserReplacements(b *Builder, replacements map[string]string) {
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sortByLengthDesc(keys)

	for i := 0; i < b.Len(); {
		matched := false
		for _, k := range keys {
			kr := []rune(k)
			if matchesAt(b, i, kr) {
				b.Replace(i, i+len(kr), []rune(replacements[k]))
				i += len([]rune(replacements[k]))
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
}

func matchesAt(b *Builder, i int, pattern []rune) bool {
	if i+len(pattern) > b.Len() {
		return false
	}
	for j, r := range pattern {
		if b.At(i+j) != r {
			return false
		}
	}
	return true
}

func sortByLengthDesc(keys []string) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && len([]rune(keys[j-1])) < len([]rune(keys[j])); j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}

// prolongedSoundMarks are the rune set the ProlongedSoundMarkInputTextPlugin
// collapses runs of into a single occurrence: the katakana-hiragana
// prolonged sound mark, the wave dash, and the fullwidth tilde, which are
// frequently used interchangeably to stretch a preceding vowel in informal
// Japanese text.
var prolongedSoundMarks = map[rune]bool{
	'ー': true,
	'〜': true,
	'～': true,
}

// ProlongedSoundMarkInputTextPlugin collapses runs of 2+ prolonged-sound
// characters into a single one, so "すごーーーい" and "すごーい" normalize
// to the same token boundary.
type ProlongedSoundMarkInputTextPlugin struct{}

func (ProlongedSoundMarkInputTextPlugin) Rewrite(b *Builder) error {
	i := 0
	for i < b.Len() {
		r := b.At(i)
		if !prolongedSoundMarks[r] {
			i++
			continue
		}
		j := i + 1
		for j < b.Len() && prolongedSoundMarks[b.At(j)] {
			j++
		}
		if j-i > 1 {
			b.Replace(i, j, []rune{r})
		}
		i++
	}
	return nil
}
