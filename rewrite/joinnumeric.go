package rewrite

import (
	"strings"

	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/input"
	"github.com/wakachi-nlp/wakachi/lattice"
)

// numericState drives a finite-state numeric parser: a run of
// digit/kanji-numeric nodes, optionally with internal '.' and ',' treated
// as part of the number rather than punctuation.
type numericState int

const (
	numStart numericState = iota
	numDigits
	numAfterComma
	numAfterPeriod
	numDecimal
)

// JoinNumericPlugin concatenates runs of numeric/kanji-numeric nodes,
// absorbing an internal '.' or ',' that sits between numeric nodes when the
// state machine in extendRun accepts it there.
// EnableNormalize rewrites the merged node's normalizedForm to the digits
// alone (commas stripped, kanji digits untouched — this plugin only
// merges spans, it does not transliterate kanji numerals).
type JoinNumericPlugin struct {
	EnableNormalize bool
}

func isNumericNode(text *input.InputText, n *lattice.Node) bool {
	types := charCategoryTypesOfNode(text, n)
	return types&(chardef.CategoryNumeric|chardef.CategoryKanjiNumeric) != 0
}

func nodeSurface(n *lattice.Node, resolve WordInfoResolver) (string, error) {
	wi, err := resolve(n)
	if err != nil {
		return "", err
	}
	return wi.Surface, nil
}

func (p *JoinNumericPlugin) Rewrite(text *input.InputText, path []*lattice.Node, resolve WordInfoResolver) ([]*lattice.Node, error) {
	var out []*lattice.Node
	i := 0
	for i < len(path) {
		if !isNumericNode(text, path[i]) {
			out = append(out, path[i])
			i++
			continue
		}
		end, err := p.extendRun(text, path, i, resolve)
		if err != nil {
			return nil, err
		}
		if end-i <= 1 {
			out = append(out, path[i])
			i++
			continue
		}
		normalized := ""
		if p.EnableNormalize {
			normalized, err = digitsOnly(path[i:end], resolve)
			if err != nil {
				return nil, err
			}
		}
		merged, err := Concatenate(path, i, end, normalized, resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
		i = end
	}
	return out, nil
}

// extendRun walks the numeric state machine from start, returning the
// exclusive end of the longest valid run. A trailing '.' or ',' that isn't
// followed by a qualifying digit node aborts its own inclusion, so the run
// ends just before it instead of failing the whole match.
func (p *JoinNumericPlugin) extendRun(text *input.InputText, path []*lattice.Node, start int, resolve WordInfoResolver) (int, error) {
	state := numDigits
	end := start + 1
	lastSafe := end
	for end < len(path) {
		n := path[end]
		switch {
		case isNumericNode(text, n):
			switch state {
			case numAfterComma, numAfterPeriod:
				state = numDecimal
			default:
				state = numDigits
			}
			end++
			lastSafe = end
		case isSeparatorNode(n, ',', resolve) && state == numDigits && end+1 < len(path) && isNumericNode(text, path[end+1]):
			state = numAfterComma
			end++
		case isSeparatorNode(n, '.', resolve) && state == numDigits && end+1 < len(path) && isNumericNode(text, path[end+1]):
			state = numAfterPeriod
			end++
		default:
			return lastSafe, nil
		}
	}
	return lastSafe, nil
}

func isSeparatorNode(n *lattice.Node, sep rune, resolve WordInfoResolver) bool {
	s, err := nodeSurface(n, resolve)
	if err != nil {
		return false
	}
	return s == string(sep)
}

func digitsOnly(nodes []*lattice.Node, resolve WordInfoResolver) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		s, err := nodeSurface(n, resolve)
		if err != nil {
			return "", err
		}
		if s == "," {
			continue
		}
		b.WriteString(s)
	}
	return b.String(), nil
}
