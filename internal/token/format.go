package token

import (
	"strings"

	"github.com/studiowebux/brulang/internal/types"
)

const (
	disabledMark    = "~"
	multilineMark   = "'''"
	blockIndent     = 2
	multilineIndent = 4
)

var (
	indent   = strings.Repeat(" ", blockIndent)
	mlIndent = strings.Repeat(" ", multilineIndent)
)

// FormatEntry renders a dictionary line without indentation. Secret entries
// are written without their value. An empty value renders as "name:".
func FormatEntry(e types.Entry) string {
	var sb strings.Builder
	if !e.Enabled {
		sb.WriteString(disabledMark)
	}
	sb.WriteString(e.Name)
	sb.WriteByte(':')
	value := e.StringValue()
	if e.Secret {
		value = ""
	}
	switch {
	case value == "":
	case strings.Contains(value, "\n") || value == multilineMark:
		sb.WriteString(" " + multilineMark + "\n")
		for _, l := range strings.Split(value, "\n") {
			if l != "" {
				sb.WriteString(mlIndent)
				sb.WriteString(l)
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(indent + multilineMark)
	default:
		sb.WriteByte(' ')
		sb.WriteString(value)
	}
	return sb.String()
}

// FormatListItem renders an ordered-list name. Values are never written.
func FormatListItem(e types.Entry) string {
	if !e.Enabled {
		return disabledMark + e.Name
	}
	return e.Name
}

// IndentText indents every non-empty line of a RawText payload so that no
// payload line can be mistaken for the closing brace.
func IndentText(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = indent + l
		}
	}
	return strings.Join(lines, "\n")
}

// FormatBlock renders a block in brace-dialect form, without a trailing newline
func FormatBlock(b types.Block) string {
	var sb strings.Builder
	sb.WriteString(b.Tag)
	switch b.Kind {
	case types.OrderedList:
		if len(b.Entries) == 0 {
			sb.WriteString(" []")
			return sb.String()
		}
		sb.WriteString(" [\n")
		for i, e := range b.Entries {
			sb.WriteString(indent)
			sb.WriteString(FormatListItem(e))
			if i < len(b.Entries)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString("]")
	case types.RawText:
		sb.WriteString(" {\n")
		sb.WriteString(IndentText(b.Text))
		sb.WriteString("\n}")
	default:
		if len(b.Entries) == 0 {
			sb.WriteString(" {\n}")
			return sb.String()
		}
		sb.WriteString(" {\n")
		for _, e := range b.Entries {
			sb.WriteString(indent)
			sb.WriteString(FormatEntry(e))
			sb.WriteByte('\n')
		}
		sb.WriteString("}")
	}
	return sb.String()
}
