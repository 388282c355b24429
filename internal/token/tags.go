package token

import (
	"strings"

	"github.com/studiowebux/brulang/internal/types"
)

// textTags are the brace-delimited tags whose content is a verbatim payload
var textTags = map[string]bool{
	"docs":              true,
	"tests":             true,
	"body:json":         true,
	"body:text":         true,
	"body:xml":          true,
	"body:sparql":       true,
	"body:graphql":      true,
	"body:graphql:vars": true,
}

// KindOf returns the block kind a "tag {" header opens
func KindOf(tag string) types.BlockKind {
	if textTags[tag] || strings.HasPrefix(tag, "script:") {
		return types.RawText
	}
	return types.Dictionary
}

// IsTextTag reports whether tag holds a verbatim payload
func IsTextTag(tag string) bool {
	return KindOf(tag) == types.RawText
}

// legacyAttrs are the top-level keys of the tag-delimited dialect
var legacyAttrs = map[string]bool{
	"name":      true,
	"type":      true,
	"seq":       true,
	"method":    true,
	"url":       true,
	"body-mode": true,
	"ver":       true,
}

// IsLegacyAttr reports whether key is a top-level legacy attribute
func IsLegacyAttr(key string) bool {
	return legacyAttrs[key]
}

// legacyLists are tag-delimited blocks made of "<0|1> name value" lines
var legacyLists = map[string]bool{
	"params":                      true,
	"headers":                     true,
	"vars":                        true,
	"assert":                      true,
	"body(type=form-url-encoded)": true,
	"body(type=form-urlencoded)":  true,
	"body(type=multipart-form)":   true,
}

// LegacyKindOf returns the block kind of a tag-delimited legacy block
func LegacyKindOf(tag string) types.BlockKind {
	if legacyLists[tag] {
		return types.OrderedList
	}
	return types.RawText
}

// legacyBase strips the "(...)" arguments of a legacy tag: "body(type=json)" -> "body"
func legacyBase(tag string) string {
	if i := strings.IndexByte(tag, '('); i > 0 {
		return tag[:i]
	}
	return tag
}
