package block

import (
	"strings"

	"github.com/studiowebux/brulang/internal/types"
)

// Rule decides how blocks sharing a tag are folded into one
type Rule int

const (
	// LastWins keeps the last text payload; for dictionaries the last value
	// of each name wins and keeps the position of its first occurrence.
	LastWins Rule = iota
	// Concat appends the entries of later blocks to the first one
	Concat
)

func (r Rule) String() string {
	if r == Concat {
		return "concat"
	}
	return "last-wins"
}

// Rules lists the tags folded by concatenation. Every other tag is LastWins.
var Rules = map[string]Rule{
	AttrsTag:               Concat,
	"headers":              Concat,
	"query":                Concat,
	"params:query":         Concat,
	"params:path":          Concat,
	"vars":                 Concat,
	"vars:secret":          Concat,
	"vars:pre-request":     Concat,
	"vars:post-response":   Concat,
	"assert":               Concat,
	"body:form-urlencoded": Concat,
	"body:multipart-form":  Concat,
	"params":               Concat,
}

// RuleFor returns the fold rule of tag
func RuleFor(tag string) Rule {
	if r, ok := Rules[tag]; ok {
		return r
	}
	if strings.HasPrefix(tag, "body(type=") {
		return Concat
	}
	return LastWins
}

// Fold merges blocks that share a tag. The folded block takes the position
// of the first occurrence, so the relative order of distinct tags is kept.
func Fold(blocks []types.Block) []types.Block {
	index := make(map[string]int, len(blocks))
	var out []types.Block
	for _, b := range blocks {
		i, seen := index[b.Tag]
		if !seen {
			index[b.Tag] = len(out)
			b.Entries = append([]types.Entry(nil), b.Entries...)
			out = append(out, b)
			continue
		}
		dst := &out[i]
		switch {
		case RuleFor(b.Tag) == Concat:
			dst.Entries = append(dst.Entries, b.Entries...)
		case b.Kind == types.RawText:
			dst.Text = b.Text
		default:
			dst.Entries = merge(dst.Entries, b.Entries)
		}
	}
	return out
}

func merge(dst, src []types.Entry) []types.Entry {
	for _, e := range src {
		replaced := false
		for j := range dst {
			if dst[j].Name == e.Name {
				dst[j] = e
				replaced = true
				break
			}
		}
		if !replaced {
			dst = append(dst, e)
		}
	}
	return dst
}
