// Package block groups a token stream into typed blocks and folds duplicate
// tags.
package block

import (
	"github.com/studiowebux/brulang/internal/token"
	"github.com/studiowebux/brulang/internal/types"
)

// AttrsTag is the tag of the synthetic block collecting legacy top-level
// attribute lines.
const AttrsTag = "@attrs"

// Assemble groups tokens into blocks in source order. Blocks with the same
// tag are all kept. Stray tokens outside a block are dropped.
func Assemble(toks []token.Token) []types.Block {
	var (
		blocks []types.Block
		cur    *types.Block
		attrs  = -1
	)
	for _, t := range toks {
		switch t.Type {
		case token.TOpen:
			cur = &types.Block{Tag: t.Tag, Kind: t.Kind, Line: t.Line}
		case token.TEntry:
			if cur != nil {
				cur.Entries = append(cur.Entries, t.Entry)
			}
		case token.TText:
			if cur != nil {
				cur.Text = t.Text
			}
		case token.TClose:
			if cur != nil {
				blocks = append(blocks, *cur)
				cur = nil
			}
		case token.TAttr:
			if attrs < 0 {
				attrs = len(blocks)
				blocks = append(blocks, types.Block{Tag: AttrsTag, Kind: types.Dictionary, Line: t.Line})
			}
			blocks[attrs].Entries = append(blocks[attrs].Entries, t.Entry)
		}
	}
	return blocks
}
