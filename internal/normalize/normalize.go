// Package normalize maps assembled blocks onto the four document variants.
//
// Everything except the identity of a request or folder defaults rather than
// fails: files are edited by hand and must load while half written.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/studiowebux/brulang/internal/block"
	"github.com/studiowebux/brulang/internal/schema"
	"github.com/studiowebux/brulang/internal/types"
)

// ErrMissingRequiredBlock is returned (wrapped) when an identity field is absent
var ErrMissingRequiredBlock = errors.New("missing required block")

// MissingRequiredBlockError names the absent identity field, e.g. "meta.name"
type MissingRequiredBlockError struct {
	Field string
}

func (e *MissingRequiredBlockError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

func (e *MissingRequiredBlockError) Unwrap() error {
	return ErrMissingRequiredBlock
}

// Normalize builds the document of variant hint from blocks. With
// VariantUnknown the variant is inferred from content.
func Normalize(blocks []types.Block, hint types.Variant) (types.Document, error) {
	if hint == types.VariantUnknown {
		hint = Infer(blocks)
	}
	switch hint {
	case types.VariantRequest:
		return Request(blocks)
	case types.VariantFolder:
		return Folder(blocks)
	case types.VariantCollection:
		return Collection(blocks)
	default:
		return Environment(blocks)
	}
}

// Infer picks a variant from block content: a meta.type value or a method
// block means a request; variables without meta mean an environment; meta
// alone means a folder; anything else is a collection.
func Infer(blocks []types.Block) types.Variant {
	var hasMeta, hasVars bool
	for _, b := range blocks {
		switch {
		case b.Tag == "meta":
			hasMeta = true
			if _, ok := b.Get("type"); ok {
				return types.VariantRequest
			}
		case b.Tag == "vars" || b.Tag == "vars:secret":
			hasVars = true
		default:
			if r, ok := schema.Request.Lookup(b.Tag); ok && r.Group == schema.GroupMethod {
				return types.VariantRequest
			}
		}
	}
	switch {
	case hasMeta:
		return types.VariantFolder
	case hasVars:
		return types.VariantEnvironment
	}
	return types.VariantCollection
}

// blockSet is the filtered and folded view of one file
type blockSet struct {
	list []types.Block
	tags map[string]int
}

func prepare(blocks []types.Block, s *schema.Schema) blockSet {
	folded := block.Fold(s.Filter(blocks))
	bs := blockSet{list: folded, tags: make(map[string]int, len(folded))}
	for i, b := range folded {
		bs.tags[b.Tag] = i
	}
	return bs
}

func (bs blockSet) get(tag string) (types.Block, bool) {
	i, ok := bs.tags[tag]
	if !ok {
		return types.Block{}, false
	}
	return bs.list[i], true
}

func (bs blockSet) entries(tag string) []types.Entry {
	b, _ := bs.get(tag)
	return copyEntries(b.Entries)
}

func (bs blockSet) text(tag string) string {
	b, _ := bs.get(tag)
	return b.Text
}

// group returns the blocks of a schema group in source order
func (bs blockSet) group(s *schema.Schema, group string) []types.Block {
	var out []types.Block
	for _, b := range bs.list {
		if r, ok := s.Lookup(b.Tag); ok && r.Group == group {
			out = append(out, b)
		}
	}
	return out
}

func copyEntries(es []types.Entry) []types.Entry {
	if len(es) == 0 {
		return nil
	}
	out := make([]types.Entry, len(es))
	for i, e := range es {
		if e.Value != nil {
			v := *e.Value
			e.Value = &v
		}
		out[i] = e
	}
	return out
}

// coerceSeq parses seq as a non-negative integer, falling back to DefaultSeq
func coerceSeq(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return types.DefaultSeq
	}
	return n
}

// requestType maps a declared meta.type to a request type
func requestType(t string) string {
	switch strings.TrimSpace(t) {
	case "graphql", types.GraphQLRequestType:
		return types.GraphQLRequestType
	default:
		return types.HTTPRequestType
	}
}

// pickMode returns the declared mode, else the mode of the last payload
// block, else the schema default.
func pickMode(declared string, payloads []types.Block, def string) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	if n := len(payloads); n > 0 {
		return payloads[n-1].Mode()
	}
	return def
}

func authOf(bs blockSet, s *schema.Schema, declared string) types.Auth {
	blocks := bs.group(s, schema.GroupAuth)
	var modes []types.Block
	auth := types.Auth{}
	for _, b := range blocks {
		if b.Mode() == "" {
			// the collection-level "auth { mode: ... }" declaration
			continue
		}
		modes = append(modes, b)
		auth.Modes = append(auth.Modes, types.AuthBlock{Mode: b.Mode(), Fields: copyEntries(b.Entries)})
	}
	auth.Mode = pickMode(declared, modes, s.GroupDefault(schema.GroupAuth))
	return auth
}

// varsOf collects request-phase variables. Entries of a bare "vars" block
// join vars:pre-request in source order.
func varsOf(bs blockSet) types.Vars {
	var v types.Vars
	for _, b := range bs.list {
		switch b.Tag {
		case "vars:pre-request", "vars":
			v.Pre = append(v.Pre, copyEntries(b.Entries)...)
		case "vars:post-response":
			v.Post = append(v.Post, copyEntries(b.Entries)...)
		}
	}
	return v
}

func scriptOf(bs blockSet) types.Script {
	return types.Script{
		Pre:  bs.text("script:pre-request"),
		Post: bs.text("script:post-response"),
	}
}
