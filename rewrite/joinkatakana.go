package rewrite

import (
	"unicode/utf8"

	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/input"
	"github.com/wakachi-nlp/wakachi/lattice"
)

// JoinKatakanaOovPlugin merges consecutive out-of-vocabulary nodes whose
// span is entirely katakana into a single node, once the run reaches
// MinLength characters.
type JoinKatakanaOovPlugin struct {
	MinLength int
}

func isKatakanaOov(text *input.InputText, n *lattice.Node) bool {
	if !n.IsOOV {
		return false
	}
	return charCategoryTypesOfNode(text, n)&chardef.CategoryKatakana != 0
}

func (p *JoinKatakanaOovPlugin) Rewrite(text *input.InputText, path []*lattice.Node, resolve WordInfoResolver) ([]*lattice.Node, error) {
	var out []*lattice.Node
	i := 0
	for i < len(path) {
		if !isKatakanaOov(text, path[i]) {
			out = append(out, path[i])
			i++
			continue
		}
		end := i + 1
		for end < len(path) && isKatakanaOov(text, path[end]) {
			end++
		}
		if end-i <= 1 || runeCount(path[i:end], resolve) < p.MinLength {
			out = append(out, path[i:end]...)
			i = end
			continue
		}
		firstInfo, err := resolve(path[i])
		if err != nil {
			return nil, err
		}
		merged, err := ConcatenateOov(path, i, end, firstInfo.POSID, resolve, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
		i = end
	}
	return out, nil
}

func runeCount(nodes []*lattice.Node, resolve WordInfoResolver) int {
	n := 0
	for _, node := range nodes {
		s, err := nodeSurface(node, resolve)
		if err != nil {
			continue
		}
		n += utf8.RuneCountInString(s)
	}
	return n
}
