// Package schema holds the per-variant block tables: which tags are legal in
// a request, folder, collection or environment file, how each block is
// shaped, whether it is required, what applies when it is absent and the
// canonical order blocks are written in.
package schema

import (
	"sort"

	"github.com/studiowebux/brulang/internal/types"
)

const (
	GroupMethod = "method"
	GroupAuth   = "auth"
	GroupBody   = "body"
)

// Rule describes one legal tag
type Rule struct {
	Kind     types.BlockKind
	Required bool
	// Group ties alternative tags together (one method block, one auth mode)
	Group string
	// Default is the group value used when none of its tags is present
	Default string
}

// Field is a tag with its rule. The order of fields in a Schema is the
// canonical write order.
type Field struct {
	Tag string
	Rule
}

// Schema is the declarative table of one variant
type Schema struct {
	Variant types.Variant
	Fields  []Field
	index   map[string]int
}

func newSchema(v types.Variant, fields ...[]Field) *Schema {
	s := &Schema{Variant: v, index: map[string]int{}}
	for _, group := range fields {
		for _, f := range group {
			s.index[f.Tag] = len(s.Fields)
			s.Fields = append(s.Fields, f)
		}
	}
	return s
}

// For returns the table of variant v, or nil for VariantUnknown
func For(v types.Variant) *Schema {
	switch v {
	case types.VariantRequest:
		return Request
	case types.VariantFolder:
		return Folder
	case types.VariantCollection:
		return Collection
	case types.VariantEnvironment:
		return Environment
	}
	return nil
}

// Lookup returns the rule of tag
func (s *Schema) Lookup(tag string) (Rule, bool) {
	i, ok := s.index[tag]
	if !ok {
		return Rule{}, false
	}
	return s.Fields[i].Rule, true
}

// Legal reports whether tag may appear in this variant
func (s *Schema) Legal(tag string) bool {
	_, ok := s.index[tag]
	return ok
}

// Rank is the canonical position of tag; unknown tags sort last
func (s *Schema) Rank(tag string) int {
	if i, ok := s.index[tag]; ok {
		return i
	}
	return len(s.Fields)
}

// Filter drops blocks whose tag is not legal, keeping source order
func (s *Schema) Filter(blocks []types.Block) []types.Block {
	var out []types.Block
	for _, b := range blocks {
		if s.Legal(b.Tag) {
			out = append(out, b)
		}
	}
	return out
}

// Sort orders blocks canonically. Blocks of equal rank keep their order.
func (s *Schema) Sort(blocks []types.Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return s.Rank(blocks[i].Tag) < s.Rank(blocks[j].Tag)
	})
}

// Missing returns the required tags absent from blocks
func (s *Schema) Missing(blocks []types.Block) []string {
	present := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		present[b.Tag] = true
	}
	var missing []string
	for _, f := range s.Fields {
		if f.Required && !present[f.Tag] {
			missing = append(missing, f.Tag)
		}
	}
	return missing
}

// GroupDefault returns the value used when no tag of group is present
func (s *Schema) GroupDefault(group string) string {
	for _, f := range s.Fields {
		if f.Group == group {
			return f.Default
		}
	}
	return ""
}

// Group returns the tags belonging to group in canonical order
func (s *Schema) Group(group string) []string {
	var tags []string
	for _, f := range s.Fields {
		if f.Group == group {
			tags = append(tags, f.Tag)
		}
	}
	return tags
}
