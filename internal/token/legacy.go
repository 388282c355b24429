package token

import (
	"strings"

	"github.com/studiowebux/brulang/internal/types"
)

// TokenizeLegacy splits tag-delimited (v1) text into tokens.
//
// Top-level "key value" lines become TAttr tokens. A line holding a single
// word opens a block that runs until "/<word>"; flag-list blocks yield one
// TEntry per "<0|1> name value" line, every other block yields one TText.
func TokenizeLegacy(text string) ([]Token, error) {
	lines := SplitLines(text)
	var toks []Token
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || line[0] == ' ' || line[0] == '\t' || trimmed[0] == '/' {
			continue
		}
		key, rest := cutField(trimmed)
		if rest != "" || IsLegacyAttr(key) {
			toks = append(toks, Token{Type: TAttr, Entry: types.NewEntry(key, rest, true), Line: i + 1})
			continue
		}

		start := i + 1
		closer := "/" + legacyBase(key)
		kind := LegacyKindOf(key)
		var body []string
		closed := false
		for i++; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == closer {
				closed = true
				break
			}
			body = append(body, lines[i])
		}
		if !closed {
			return nil, &UnterminatedBlockError{Tag: key, Line: start}
		}

		toks = append(toks, Token{Type: TOpen, Tag: key, Kind: kind, Line: start})
		if kind == types.OrderedList {
			for j, l := range body {
				if strings.TrimSpace(l) == "" {
					continue
				}
				toks = append(toks, Token{Type: TEntry, Entry: ParseFlagLine(l), Line: start + 1 + j})
			}
		} else {
			for j := range body {
				body[j] = outdent(body[j], blockIndent)
			}
			toks = append(toks, Token{Type: TText, Text: strings.Join(body, "\n"), Line: start + 1})
		}
		toks = append(toks, Token{Type: TClose, Line: i + 1})
	}
	return toks, nil
}

// ParseFlagLine parses a legacy "<0|1> name value" line. The value is the
// rest of the line and may be empty; a line with only the flag yields an
// empty name. When the first field is not 0 or 1 the entry is enabled and
// the first field is taken as the name.
func ParseFlagLine(line string) types.Entry {
	s := strings.TrimSpace(line)
	flag, rest := cutField(s)
	enabled := true
	switch flag {
	case "0":
		enabled = false
	case "1":
	default:
		rest = s
	}
	name, value := cutField(rest)
	return types.NewEntry(name, value, enabled)
}

func cutField(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
