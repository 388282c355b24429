package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/studiowebux/brulang/internal/types"
)

func str(s string) *string { return &s }

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name string
		line string
		want types.Entry
	}{
		{"plain", "  host: https://example.com", types.Entry{Name: "host", Value: str("https://example.com"), Enabled: true}},
		{"disabled", "  ~host: https://example.com", types.Entry{Name: "host", Value: str("https://example.com"), Enabled: false}},
		{"empty value", "  token:", types.Entry{Name: "token", Value: str(""), Enabled: true}},
		{"no colon", "  token", types.Entry{Name: "token", Value: str(""), Enabled: true}},
		{"colon in value", "  url: http://a:8080/x", types.Entry{Name: "url", Value: str("http://a:8080/x"), Enabled: true}},
		{"one separator space stripped", "  pad:   x", types.Entry{Name: "pad", Value: str("  x"), Enabled: true}},
		{"no separator space", "  a:b", types.Entry{Name: "a", Value: str("b"), Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseEntry(tt.line)); diff != "" {
				t.Errorf("ParseEntry(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestIsHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"meta {", true},
		{"body:json {", true},
		{"vars:secret [", true},
		{"vars:secret [ token, ~other ]", true},
		{"headers {}", true},
		{"  meta {", false},
		{"items[0]: 1", false},
		{"x-list: [1,2]", false},
		{"name: {", false},
		{"}", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsHeader(tt.line); got != tt.want {
			t.Errorf("IsHeader(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestTokenize_ColumnZeroBracketValue(t *testing.T) {
	text := "headers {\nx-list: [1,2]\n  accept: */*\n}\n"
	toks, err := Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []Token{
		{Type: TOpen, Tag: "headers", Kind: types.Dictionary, Line: 1},
		{Type: TEntry, Entry: types.NewEntry("x-list", "[1,2]", true), Line: 2},
		{Type: TEntry, Entry: types.NewEntry("accept", "*/*", true), Line: 3},
		{Type: TClose, Line: 4},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_Dictionary(t *testing.T) {
	text := "headers {\n  ~host: https://example.com\n  accept: */*\n}\n"
	toks, err := Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []Token{
		{Type: TOpen, Tag: "headers", Kind: types.Dictionary, Line: 1},
		{Type: TEntry, Entry: types.Entry{Name: "host", Value: str("https://example.com"), Enabled: false}, Line: 2},
		{Type: TEntry, Entry: types.Entry{Name: "accept", Value: str("*/*"), Enabled: true}, Line: 3},
		{Type: TClose, Line: 4},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_InlineSecretList(t *testing.T) {
	toks, err := Tokenize("vars:secret [ token ]\n")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []Token{
		{Type: TOpen, Tag: "vars:secret", Kind: types.OrderedList, Line: 1},
		{Type: TEntry, Entry: types.Entry{Name: "token", Enabled: true}, Line: 1},
		{Type: TClose, Line: 1},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_MultilineList(t *testing.T) {
	toks, err := Tokenize("vars:secret [\n  apiKey,\n  ~password\n]\n")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	var got []types.Entry
	for _, tok := range toks {
		if tok.Type == TEntry {
			got = append(got, tok.Entry)
		}
	}
	want := []types.Entry{
		{Name: "apiKey", Enabled: true},
		{Name: "password", Enabled: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_RawTextKeepsBraces(t *testing.T) {
	text := "body:json {\n  {\n    \"a\": \"}\"\n  }\n}\n"
	toks, err := Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(toks), toks)
	}
	if toks[0].Kind != types.RawText {
		t.Errorf("expected RawText block, got %s", toks[0].Kind)
	}
	want := "{\n  \"a\": \"}\"\n}"
	if toks[1].Text != want {
		t.Errorf("text = %q, want %q", toks[1].Text, want)
	}
	if toks[2].Line != 5 {
		t.Errorf("close line = %d, want 5", toks[2].Line)
	}
}

func TestTokenize_MultilineValue(t *testing.T) {
	text := "vars:pre-request {\n  query: '''\n    line one\n\n    line two\n  '''\n  next: 1\n}\n"
	toks, err := Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []types.Entry{
		types.NewEntry("query", "line one\n\nline two", true),
		types.NewEntry("next", "1", true),
	}
	var got []types.Entry
	for _, tok := range toks {
		if tok.Type == TEntry {
			got = append(got, tok.Entry)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_CRLF(t *testing.T) {
	lf, err := Tokenize("meta {\n  name: a\n}\n\ndocs {\n  hello\n}\n")
	if err != nil {
		t.Fatalf("Tokenize LF failed: %v", err)
	}
	crlf, err := Tokenize("\ufeffmeta {\r\n  name: a\r\n}\r\n\r\ndocs {\r\n  hello\r\n}\r\n")
	if err != nil {
		t.Fatalf("Tokenize CRLF failed: %v", err)
	}
	if diff := cmp.Diff(lf, crlf); diff != "" {
		t.Errorf("CRLF input tokenized differently (-lf +crlf):\n%s", diff)
	}
}

func TestTokenize_SkipsStrayText(t *testing.T) {
	toks, err := Tokenize("some notes\n\nmeta {\n  name: a\n}\ntrailing\n")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(toks) != 3 || toks[0].Tag != "meta" {
		t.Errorf("unexpected tokens: %v", toks)
	}
}

func TestTokenize_UnterminatedBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
		tag  string
		line int
	}{
		{
			name: "eof inside dictionary",
			text: "meta {\n  name: a\n}\n\nheaders {\n  accept: */*\n",
			tag:  "headers",
			line: 5,
		},
		{
			name: "next header inside dictionary",
			text: "headers {\n  accept: */*\nbody:json {\n  {}\n}\n",
			tag:  "headers",
			line: 1,
		},
		{
			name: "eof inside text",
			text: "docs {\n  hello\n",
			tag:  "docs",
			line: 1,
		},
		{
			name: "eof inside list",
			text: "meta {\n}\nvars:secret [\n  a,\n",
			tag:  "vars:secret",
			line: 3,
		},
		{
			name: "eof inside multiline value",
			text: "vars {\n  a: '''\n    x\n",
			tag:  "vars",
			line: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.text)
			if !errors.Is(err, ErrUnterminatedBlock) {
				t.Fatalf("expected ErrUnterminatedBlock, got %v", err)
			}
			var ue *UnterminatedBlockError
			if !errors.As(err, &ue) {
				t.Fatalf("expected *UnterminatedBlockError, got %T", err)
			}
			if ue.Tag != tt.tag || ue.Line != tt.line {
				t.Errorf("got tag %q line %d, want tag %q line %d", ue.Tag, ue.Line, tt.tag, tt.line)
			}
		})
	}
}

func TestTokenize_WithKinds(t *testing.T) {
	toks, err := Tokenize("notes {\n  a: b\n}\n", WithKinds(func(string) types.BlockKind { return types.RawText }))
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if toks[0].Kind != types.RawText || toks[1].Text != "a: b" {
		t.Errorf("expected the block to be read as text, got %v", toks)
	}
}
