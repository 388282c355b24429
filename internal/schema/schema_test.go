package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/studiowebux/brulang/internal/token"
	"github.com/studiowebux/brulang/internal/types"
)

// The tokenizer decides between text and dictionary before any schema is
// known, so both tables must agree for every brace-delimited tag.
func TestKindsMatchTokenizer(t *testing.T) {
	for _, s := range []*Schema{Request, Folder, Collection, Environment} {
		for _, f := range s.Fields {
			if f.Kind == types.OrderedList {
				continue
			}
			if got := token.KindOf(f.Tag); got != f.Kind {
				t.Errorf("%s: %s is %s in the schema but tokenizes as %s", s.Variant, f.Tag, f.Kind, got)
			}
		}
	}
}

func TestLegal(t *testing.T) {
	tests := []struct {
		schema *Schema
		tag    string
		want   bool
	}{
		{Request, "meta", true},
		{Request, "post", true},
		{Request, "auth:oauth2", true},
		{Request, "body:graphql:vars", true},
		{Request, "vars:secret", false},
		{Request, "vars", true},
		{Folder, "vars", true},
		{Request, "auth", false},
		{Folder, "auth:bearer", false},
		{Folder, "meta", true},
		{Collection, "auth", true},
		{Collection, "meta", false},
		{Environment, "vars:secret", true},
		{Environment, "docs", false},
	}
	for _, tt := range tests {
		if got := tt.schema.Legal(tt.tag); got != tt.want {
			t.Errorf("%s.Legal(%q) = %v, want %v", tt.schema.Variant, tt.tag, got, tt.want)
		}
	}
}

func TestSort(t *testing.T) {
	blocks := []types.Block{
		{Tag: "docs"},
		{Tag: "unknown"},
		{Tag: "headers"},
		{Tag: "meta"},
		{Tag: "post"},
		{Tag: "body:json"},
		{Tag: "params:query"},
	}
	Request.Sort(blocks)
	var got []string
	for _, b := range blocks {
		got = append(got, b.Tag)
	}
	want := []string{"meta", "post", "params:query", "headers", "body:json", "docs", "unknown"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort mismatch (-want +got):\n%s", diff)
	}
}

func TestMissing(t *testing.T) {
	if got := Request.Missing([]types.Block{{Tag: "get"}}); !cmp.Equal(got, []string{"meta"}) {
		t.Errorf("Request.Missing = %v, want [meta]", got)
	}
	if got := Request.Missing([]types.Block{{Tag: "meta"}}); len(got) != 0 {
		t.Errorf("Request.Missing = %v, want none", got)
	}
	if got := Environment.Missing(nil); len(got) != 0 {
		t.Errorf("Environment.Missing = %v, want none", got)
	}
}

func TestGroups(t *testing.T) {
	if got := Request.GroupDefault(GroupMethod); got != "GET" {
		t.Errorf("method default = %q, want GET", got)
	}
	if got := Request.GroupDefault(GroupBody); got != types.ModeNone {
		t.Errorf("body default = %q, want none", got)
	}
	if got := Folder.GroupDefault(GroupAuth); got != "" {
		t.Errorf("folder auth default = %q, want empty", got)
	}
	if got := Request.Group(GroupMethod); len(got) != len(Methods) || got[0] != "get" {
		t.Errorf("method group = %v", got)
	}
}

func TestFor(t *testing.T) {
	if For(types.VariantUnknown) != nil {
		t.Error("expected no schema for an unknown variant")
	}
	if For(types.VariantEnvironment) != Environment {
		t.Error("expected the environment schema")
	}
}
