package token

import (
	"regexp"
	"strings"

	"github.com/studiowebux/brulang/internal/types"
)

var headerPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_.:-]*)\s*([{\[])(.*)$`)

type tokenOpts struct {
	kindOf func(tag string) types.BlockKind
}

type TokenOpt func(*tokenOpts)

// WithKinds overrides how a "tag {" header picks between Dictionary and RawText
func WithKinds(f func(tag string) types.BlockKind) TokenOpt {
	return func(o *tokenOpts) { o.kindOf = f }
}

// NormalizeNewlines converts CRLF to LF and drops a leading byte order mark
func NormalizeNewlines(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// SplitLines normalizes newlines and splits text into lines
func SplitLines(text string) []string {
	text = NormalizeNewlines(text)
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// header matches a column-0 block header. rest is whatever follows the
// opening delimiter on the same line.
func header(line string) (tag string, delim byte, rest string, ok bool) {
	m := headerPattern.FindStringSubmatch(strings.TrimRight(line, " \t"))
	if m == nil || strings.HasSuffix(m[1], ":") {
		return "", 0, "", false
	}
	return m[1], m[2][0], m[3], true
}

// IsHeader reports whether line opens a brace-dialect block
func IsHeader(line string) bool {
	_, delim, rest, ok := header(line)
	if !ok {
		return false
	}
	rest = strings.TrimSpace(rest)
	if delim == '{' {
		return rest == "" || rest == "}"
	}
	return !strings.Contains(rest, ":")
}

// Tokenize splits brace-dialect text into a flat token stream. Blank lines
// and unrecognized text outside blocks are skipped.
func Tokenize(text string, opts ...TokenOpt) ([]Token, error) {
	o := &tokenOpts{kindOf: KindOf}
	for _, f := range opts {
		f(o)
	}
	t := &tokenizer{lines: SplitLines(text), opts: o}
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.toks, nil
}

type tokenizer struct {
	lines []string
	i     int
	toks  []Token
	opts  *tokenOpts
}

func (t *tokenizer) emit(tok Token) {
	t.toks = append(t.toks, tok)
}

func (t *tokenizer) run() error {
	for t.i < len(t.lines) {
		line := t.lines[t.i]
		start := t.i + 1
		t.i++
		if !IsHeader(line) {
			continue
		}
		tag, delim, rest, _ := header(line)
		rest = strings.TrimSpace(rest)
		var err error
		switch {
		case delim == '[':
			err = t.list(tag, start, rest)
		case rest == "}":
			t.emit(Token{Type: TOpen, Tag: tag, Kind: t.opts.kindOf(tag), Line: start})
			t.emit(Token{Type: TClose, Line: start})
		case t.opts.kindOf(tag) == types.RawText:
			err = t.text(tag, start)
		default:
			err = t.dict(tag, start)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *tokenizer) dict(tag string, start int) error {
	t.emit(Token{Type: TOpen, Tag: tag, Kind: types.Dictionary, Line: start})
	for t.i < len(t.lines) {
		line := t.lines[t.i]
		lineNo := t.i + 1
		t.i++
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "}":
			t.emit(Token{Type: TClose, Line: lineNo})
			return nil
		case trimmed == "":
			continue
		case IsHeader(line):
			// a new block at column 0 means this one was never closed
			return &UnterminatedBlockError{Tag: tag, Line: start}
		}
		e := ParseEntry(line)
		if e.StringValue() == multilineMark {
			v, err := t.multiline(tag, start)
			if err != nil {
				return err
			}
			e.Value = &v
		}
		t.emit(Token{Type: TEntry, Entry: e, Line: lineNo})
	}
	return &UnterminatedBlockError{Tag: tag, Line: start}
}

// multiline collects a ''' delimited dictionary value. The closing mark sits
// left of the content indentation, so a content line reading ''' is content.
func (t *tokenizer) multiline(tag string, start int) (string, error) {
	var buf []string
	for t.i < len(t.lines) {
		line := t.lines[t.i]
		t.i++
		if strings.TrimSpace(line) == multilineMark && !strings.HasPrefix(line, mlIndent) {
			return strings.Join(buf, "\n"), nil
		}
		buf = append(buf, outdent(line, multilineIndent))
	}
	return "", &UnterminatedBlockError{Tag: tag, Line: start}
}

func (t *tokenizer) text(tag string, start int) error {
	var buf []string
	for t.i < len(t.lines) {
		line := t.lines[t.i]
		lineNo := t.i + 1
		t.i++
		if strings.TrimRight(line, " \t") == "}" {
			t.emit(Token{Type: TOpen, Tag: tag, Kind: types.RawText, Line: start})
			t.emit(Token{Type: TText, Text: strings.Join(buf, "\n"), Line: start + 1})
			t.emit(Token{Type: TClose, Line: lineNo})
			return nil
		}
		buf = append(buf, outdent(line, blockIndent))
	}
	return &UnterminatedBlockError{Tag: tag, Line: start}
}

// list reads a bracketed name list. Items are separated by commas or
// newlines and may share the header line.
func (t *tokenizer) list(tag string, start int, rest string) error {
	t.emit(Token{Type: TOpen, Tag: tag, Kind: types.OrderedList, Line: start})
	if items, ok := strings.CutSuffix(rest, "]"); ok {
		t.items(items, start)
		t.emit(Token{Type: TClose, Line: start})
		return nil
	}
	t.items(rest, start)
	for t.i < len(t.lines) {
		line := t.lines[t.i]
		lineNo := t.i + 1
		t.i++
		trimmed := strings.TrimSpace(line)
		if items, ok := strings.CutSuffix(trimmed, "]"); ok {
			t.items(items, lineNo)
			t.emit(Token{Type: TClose, Line: lineNo})
			return nil
		}
		if IsHeader(line) {
			return &UnterminatedBlockError{Tag: tag, Line: start}
		}
		t.items(trimmed, lineNo)
	}
	return &UnterminatedBlockError{Tag: tag, Line: start}
}

func (t *tokenizer) items(s string, lineNo int) {
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		enabled := true
		if rest, ok := strings.CutPrefix(item, disabledMark); ok {
			enabled = false
			item = strings.TrimSpace(rest)
		}
		if item == "" {
			continue
		}
		t.emit(Token{Type: TEntry, Entry: types.Entry{Name: item, Enabled: enabled}, Line: lineNo})
	}
}

// ParseEntry parses one dictionary line: ~?name:\s?value?
// A leading "~" marks the entry disabled. A line without a colon is a name
// with an empty value.
func ParseEntry(line string) types.Entry {
	s := strings.TrimLeft(line, " \t")
	enabled := true
	if rest, ok := strings.CutPrefix(s, disabledMark); ok {
		enabled = false
		s = rest
	}
	name, value, found := strings.Cut(s, ":")
	if !found {
		return types.NewEntry(strings.TrimSpace(s), "", enabled)
	}
	if len(value) > 0 && (value[0] == ' ' || value[0] == '\t') {
		value = value[1:]
	}
	return types.NewEntry(strings.TrimSpace(name), value, enabled)
}

// outdent removes up to n leading spaces
func outdent(line string, n int) string {
	i := 0
	for i < n && i < len(line) && line[i] == ' ' {
		i++
	}
	return line[i:]
}
