package parser

import (
	"regexp"
	"strings"

	"github.com/studiowebux/brulang/internal/block"
	"github.com/studiowebux/brulang/internal/token"
	"github.com/studiowebux/brulang/internal/types"
)

// Dialect is a historical grammar of the format
type Dialect int

const (
	// DialectBrace is the current "tag {" / "tag [" grammar
	DialectBrace Dialect = iota
	// DialectYAML is the YAML based grammar
	DialectYAML
	// DialectLegacy is the tag-delimited grammar with "<0|1> name value" lines
	DialectLegacy
)

func (d Dialect) String() string {
	switch d {
	case DialectYAML:
		return "yaml"
	case DialectLegacy:
		return "legacy"
	default:
		return "brace"
	}
}

// reader turns one dialect into blocks using the tags of the brace dialect,
// so normalization never depends on the dialect.
type reader interface {
	dialect() Dialect
	detect(lines []string) bool
	read(text string) ([]types.Block, error)
}

// readers are tried in order
var readers = []reader{braceReader{}, yamlReader{}, legacyReader{}}

// Detect returns the dialect ParseBlocks would use for text
func Detect(text string) Dialect {
	lines := splitLines(text)
	for _, r := range readers {
		if r.detect(lines) {
			return r.dialect()
		}
	}
	return DialectBrace
}

func splitLines(text string) []string {
	return token.SplitLines(text)
}

type braceReader struct{}

func (braceReader) dialect() Dialect { return DialectBrace }

func (braceReader) detect(lines []string) bool {
	for _, l := range lines {
		if token.IsHeader(l) {
			return true
		}
	}
	return false
}

func (braceReader) read(text string) ([]types.Block, error) {
	toks, err := token.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return block.Assemble(toks), nil
}

var legacyCloser = regexp.MustCompile(`^/[a-z][a-z-]*\s*$`)

type legacyReader struct{}

func (legacyReader) dialect() Dialect { return DialectLegacy }

func (legacyReader) detect(lines []string) bool {
	for _, l := range lines {
		if legacyCloser.MatchString(l) {
			return true
		}
		key, _, _ := strings.Cut(l, " ")
		if token.IsLegacyAttr(key) {
			return true
		}
	}
	return false
}

func (legacyReader) read(text string) ([]types.Block, error) {
	toks, err := token.TokenizeLegacy(text)
	if err != nil {
		return nil, err
	}
	return translateLegacy(block.Assemble(toks)), nil
}
