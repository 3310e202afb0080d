package rewrite

import (
	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/lattice"
)

// TokenChunkerPlugin merges consecutive nodes whose POS top-level category
// is Category, excluding any whose subcategory (POS[1]) is listed in
// ExcludeSubcategories. Used to merge compound nouns while excluding
// configured subcategories.
type TokenChunkerPlugin struct {
	Category             string
	ExcludeSubcategories map[string]bool
}

func (p *TokenChunkerPlugin) eligible(wi *dic.WordInfo, posOf func(int16) (string, string)) bool {
	cat, sub := posOf(wi.POSID)
	if cat != p.Category {
		return false
	}
	return !p.ExcludeSubcategories[sub]
}

// PosLookup resolves a posId to its (category, subcategory) pair; the
// tokenizer supplies this from the active Grammar.
type PosLookup func(posID int16) (category, subcategory string)

// RewriteWithPos is TokenChunkerPlugin's entry point; it needs a POS
// lookup the generic rewrite.Plugin interface doesn't carry, so the
// tokenizer calls this directly rather than through Plugin.Rewrite.
func (p *TokenChunkerPlugin) RewriteWithPos(path []*lattice.Node, resolve WordInfoResolver, posOf PosLookup) ([]*lattice.Node, error) {
	var out []*lattice.Node
	i := 0
	for i < len(path) {
		wi, err := resolve(path[i])
		if err != nil {
			return nil, err
		}
		if !p.eligible(wi, posOf) {
			out = append(out, path[i])
			i++
			continue
		}
		end := i + 1
		for end < len(path) {
			next, err := resolve(path[end])
			if err != nil {
				return nil, err
			}
			if !p.eligible(next, posOf) {
				break
			}
			end++
		}
		if end-i <= 1 {
			out = append(out, path[i])
			i++
			continue
		}
		merged, err := Concatenate(path, i, end, "", resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
		i = end
	}
	return out, nil
}
