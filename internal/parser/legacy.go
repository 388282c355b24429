package parser

import (
	"strings"

	"github.com/studiowebux/brulang/internal/block"
	"github.com/studiowebux/brulang/internal/types"
)

// legacyTags maps tag-delimited block names onto brace-dialect tags
var legacyTags = map[string]string{
	"params":  "params:query",
	"headers": "headers",
	"vars":    "vars",
	"assert":  "assert",
	"script":  "script:pre-request",
	"tests":   "tests",
	"docs":    "docs",
}

// legacyBodyModes maps body(type=...) arguments onto body modes
var legacyBodyModes = map[string]string{
	"json":             "json",
	"text":             "text",
	"xml":              "xml",
	"graphql":          "graphql",
	"graphql-vars":     "graphql:vars",
	"form-url-encoded": "form-urlencoded",
	"form-urlencoded":  "form-urlencoded",
	"multipart-form":   "multipart-form",
}

// translateLegacy rewrites legacy blocks into the brace-dialect model. The
// top-level attributes become a meta block and a method block; flag lists
// become dictionaries. Unknown legacy blocks keep their tag and are dropped
// by normalization.
func translateLegacy(blocks []types.Block) []types.Block {
	var out []types.Block
	for _, b := range blocks {
		switch {
		case b.Tag == block.AttrsTag:
			out = append(out, legacyAttrs(b)...)
		case strings.HasPrefix(b.Tag, "body(type="):
			arg := strings.TrimSuffix(strings.TrimPrefix(b.Tag, "body(type="), ")")
			mode, ok := legacyBodyModes[arg]
			if !ok {
				mode = arg
			}
			b.Tag = "body:" + mode
			if b.Kind == types.OrderedList {
				b.Kind = types.Dictionary
			}
			out = append(out, b)
		default:
			if tag, ok := legacyTags[b.Tag]; ok {
				b.Tag = tag
			}
			if b.Kind == types.OrderedList {
				b.Kind = types.Dictionary
			}
			out = append(out, b)
		}
	}
	return out
}

func legacyAttrs(attrs types.Block) []types.Block {
	meta := types.Block{Tag: "meta", Kind: types.Dictionary, Line: attrs.Line}
	for _, key := range []string{"name", "type", "seq"} {
		if v, ok := attrs.Get(key); ok {
			meta.Entries = append(meta.Entries, types.NewEntry(key, v, true))
		}
	}

	method, hasMethod := attrs.Get("method")
	url, hasURL := attrs.Get("url")
	var out []types.Block
	if len(meta.Entries) > 0 {
		out = append(out, meta)
	}
	if !hasMethod && !hasURL {
		return out
	}
	if method == "" {
		method = types.DefaultMethod
	}
	mb := types.Block{Tag: strings.ToLower(method), Kind: types.Dictionary, Line: attrs.Line}
	mb.Entries = append(mb.Entries, types.NewEntry("url", url, true))
	if mode, ok := attrs.Get("body-mode"); ok {
		mb.Entries = append(mb.Entries, types.NewEntry("body", legacyBodyMode(mode), true))
	}
	return append(out, mb)
}

func legacyBodyMode(mode string) string {
	if m, ok := legacyBodyModes[mode]; ok {
		return m
	}
	return mode
}
