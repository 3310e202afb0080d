// Package sentence implements a sentence-boundary detector: a single
// forward scan over normalized text that finds the next sentence
// terminator while respecting parenthesis nesting, quote/itemize guards,
// and lexicon-backed non-break lookahead.
package sentence

import (
	"strings"
	"unicode"

	"github.com/wakachi-nlp/wakachi/input"
)

// DefaultLimit is the character count GetEos scans before forcing a cut at
// the last whitespace (or hard-cutting) rather than waiting indefinitely
// for a terminator.
const DefaultLimit = 4096

// NonBreakChecker queries whether a dictionary entry spans across eosByte,
// in which case the candidate sentence break there must be rejected.
// Implemented against a *dic.LexiconSet by the tokenizer package; sentence
// itself stays independent of the dictionary packages.
type NonBreakChecker interface {
	HasNonBreakWord(text *input.InputText, eosByte int) bool
}

// Span is a byte range [Begin, End) within one InputText's normalized
// image.
type Span struct {
	Begin, End int
}

// singleRuneBreakers are sentence terminators that end a sentence by
// themselves.
const singleRuneBreakers = "。？！♪…?!"

var openParens = map[rune]bool{'(': true, '（': true, '[': true, '{': true, '「': true}
var closeParens = map[rune]bool{')': true, '）': true, ']': true, '}': true, '」': true}

// prohibitedBOS characters are absorbed into the preceding sentence rather
// than allowed to start the next one.
const prohibitedBOS = ")]}」、,。）"

var quoteMarkerPrefix = map[rune]bool{'!': true, '?': true, ')': true, '！': true, '？': true, '）': true}

var quoteMarkerSuffixes = []string{"です", "と", "っ"}

func isAlnum(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// matchBreaker reports whether a breaker pattern starts at runes[i],
// returning the exclusive end index of the match, or -1 if none matches.
func matchBreaker(runes []rune, i int) int {
	r := runes[i]
	switch {
	case strings.ContainsRune(singleRuneBreakers, r):
		return i + 1
	case r == '・':
		j := i
		for j < len(runes) && runes[j] == '・' {
			j++
		}
		if j-i >= 3 {
			return j
		}
		return -1
	case r == '.':
		if isStandalonePeriod(runes, i) {
			return i + 1
		}
		return -1
	case hasTagAt(runes, i):
		return matchBrRun(runes, i)
	default:
		return -1
	}
}

// isStandalonePeriod reports whether the '.' at i is not surrounded by
// alphanumerics and not followed by a comma.
func isStandalonePeriod(runes []rune, i int) bool {
	if i > 0 && isAlnum(runes[i-1]) {
		return false
	}
	if i+1 < len(runes) {
		next := runes[i+1]
		if isAlnum(next) || next == ',' || next == '、' {
			return false
		}
	}
	return true
}

func hasTagAt(runes []rune, i int) bool {
	if i+4 > len(runes) {
		return false
	}
	return strings.EqualFold(string(runes[i:i+4]), "<br>")
}

// matchBrRun counts consecutive <br> tags starting at i, requiring at
// least 2 to count as a breaker.
func matchBrRun(runes []rune, i int) int {
	j, count := i, 0
	for hasTagAt(runes, j) {
		j += 4
		count++
	}
	if count >= 2 {
		return j
	}
	return -1
}

func adjustParenLevel(level *int, r rune) {
	switch {
	case openParens[r]:
		*level++
	case closeParens[r]:
		if *level > 0 {
			*level--
		}
	}
}

// absorbProhibitedBOS extends end over any run of prohibited-BOS
// characters, so they join the sentence that just ended rather than
// starting the next one.
func absorbProhibitedBOS(runes []rune, end int) int {
	for end < len(runes) && strings.ContainsRune(prohibitedBOS, runes[end]) {
		end++
	}
	return end
}

// isItemizeHeader reports whether prefix ends in "[alphanumeric].", the
// shape of a list-item marker rather than a real sentence end.
func isItemizeHeader(prefix []rune) bool {
	if len(prefix) < 2 {
		return false
	}
	if prefix[len(prefix)-1] != '.' {
		return false
	}
	return isAlnum(prefix[len(prefix)-2])
}

// continuousPhraseGuard rejects a candidate eos when the text keeps
// reading as one phrase across it: と/や/の immediately following an
// itemize-header-shaped prefix.
func continuousPhraseGuard(runes []rune, end int) bool {
	if end >= len(runes) {
		return false
	}
	next := runes[end]
	if next != 'と' && next != 'や' && next != 'の' {
		return false
	}
	return isItemizeHeader(runes[:end])
}

// quoteMarkerStraddles rejects a candidate eos whose preceding character is
// ! ? ) (or fullwidth equivalent) immediately followed by a quote-trailing
// marker, a shape that continues one phrase rather than ending it.
func quoteMarkerStraddles(runes []rune, end int) bool {
	if end == 0 || end > len(runes) {
		return false
	}
	if !quoteMarkerPrefix[runes[end-1]] {
		return false
	}
	rest := runes[end:]
	for _, suffix := range quoteMarkerSuffixes {
		sr := []rune(suffix)
		if len(rest) >= len(sr) && string(rest[:len(sr)]) == suffix {
			return true
		}
	}
	return false
}

// lastWhitespace returns the char index just past the last whitespace rune
// in runes[:limit], or 0 if none is found.
func lastWhitespace(runes []rune, limit int) int {
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := limit; i > 0; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return 0
}

// GetEos finds the next sentence boundary at or after startByte in text,
// scanning at most limit characters (DefaultLimit if limit <= 0). It
// returns the byte length of the next sentence, relative to startByte, or
// a negative number whose absolute value is the relative byte length of an
// incomplete tail — either because no terminator was found before the end
// of text, or because the scan limit was hit and the cut point is the last
// whitespace (or a hard cut at the limit) rather than a genuine boundary.
// Both cases share the same sign deliberately: callers disambiguate by
// comparing the absolute value to the remaining buffer length.
func GetEos(text *input.InputText, startByte int, checker NonBreakChecker, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	allRunes := []rune(text.Normalized())
	startChar := text.CharIndexOf(startByte)
	runes := allRunes[startChar:]

	scanLen := len(runes)
	overflow := scanLen > limit
	if overflow {
		scanLen = limit
	}

	parenLevel := 0
	for i := 0; i < scanLen; i++ {
		adjustParenLevel(&parenLevel, runes[i])
		end := matchBreaker(runes, i)
		if end < 0 {
			continue
		}
		if parenLevel > 0 {
			continue
		}
		end = absorbProhibitedBOS(runes, end)
		if isItemizeHeader(runes[:end]) {
			continue
		}
		if continuousPhraseGuard(runes, end) {
			continue
		}
		if quoteMarkerStraddles(runes, end) {
			continue
		}
		eosByte := text.ByteOffsetOf(startChar+end) - startByte
		if checker != nil && checker.HasNonBreakWord(text, startByte+eosByte) {
			continue
		}
		return eosByte
	}

	if !overflow {
		return -(text.ByteLen() - startByte)
	}
	cut := lastWhitespace(runes, limit)
	if cut <= 0 {
		cut = limit
	}
	return -(text.ByteOffsetOf(startChar+cut) - startByte)
}

// Split repeatedly calls GetEos to slice the whole of text into sentence
// spans, in order; the final span always reaches ByteLen(), whether or not
// it ends on a genuine terminator. Concatenating the returned spans
// reproduces the input exactly.
func Split(text *input.InputText, checker NonBreakChecker, limit int) []Span {
	var spans []Span
	pos := 0
	for pos < text.ByteLen() {
		n := GetEos(text, pos, checker, limit)
		if n < 0 {
			spans = append(spans, Span{Begin: pos, End: text.ByteLen()})
			break
		}
		spans = append(spans, Span{Begin: pos, End: pos + n})
		pos += n
	}
	return spans
}
