package token

import (
	"errors"
	"fmt"

	"github.com/studiowebux/brulang/internal/types"
)

type TokenType int

const (
	// TOpen starts a block; Tag, Kind and Line are set
	TOpen TokenType = iota
	// TClose ends the innermost open block
	TClose
	// TEntry is one dictionary or list entry
	TEntry
	// TText is the whole payload of a RawText block
	TText
	// TAttr is a legacy top-level "key value" line
	TAttr
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TOpen:  "TOpen",
		TClose: "TClose",
		TEntry: "TEntry",
		TText:  "TText",
		TAttr:  "TAttr",
	}[t]
}

type Token struct {
	Type  TokenType
	Line  int
	Tag   string
	Kind  types.BlockKind
	Entry types.Entry
	Text  string
}

func (t Token) String() string {
	switch t.Type {
	case TOpen:
		return fmt.Sprintf("%s %s(%s) line %d", t.Type, t.Tag, t.Kind, t.Line)
	case TEntry, TAttr:
		return fmt.Sprintf("%s %s=%q line %d", t.Type, t.Entry.Name, t.Entry.StringValue(), t.Line)
	case TText:
		return fmt.Sprintf("%s %q line %d", t.Type, t.Text, t.Line)
	default:
		return fmt.Sprintf("%s line %d", t.Type, t.Line)
	}
}

// ErrUnterminatedBlock is returned (wrapped) when input ends inside a block
var ErrUnterminatedBlock = errors.New("unterminated block")

// UnterminatedBlockError reports a block that was opened at Line and never closed
type UnterminatedBlockError struct {
	Tag  string
	Line int
}

func (e *UnterminatedBlockError) Error() string {
	return fmt.Sprintf("unterminated block %q opened at line %d", e.Tag, e.Line)
}

func (e *UnterminatedBlockError) Unwrap() error {
	return ErrUnterminatedBlock
}
