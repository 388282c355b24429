package parser

import (
	"fmt"

	"github.com/studiowebux/brulang/internal/normalize"
	"github.com/studiowebux/brulang/internal/types"
)

// Parse is the main entry point: it detects the dialect of text, reads it
// into blocks and normalizes them into the document of variant hint.
// VariantUnknown infers the variant from content.
func Parse(text string, hint types.Variant) (types.Document, error) {
	blocks, _, err := ParseBlocks(text)
	if err != nil {
		return nil, err
	}
	return normalize.Normalize(blocks, hint)
}

// ParseBlocks reads text into blocks using the first dialect whose detector
// accepts it.
func ParseBlocks(text string) ([]types.Block, Dialect, error) {
	lines := splitLines(text)
	for _, r := range readers {
		if !r.detect(lines) {
			continue
		}
		blocks, err := r.read(text)
		if err != nil {
			return nil, r.dialect(), err
		}
		return blocks, r.dialect(), nil
	}
	blocks, err := braceReader{}.read(text)
	return blocks, DialectBrace, err
}

// ParseRequest parses a request file
func ParseRequest(text string) (*types.RequestDocument, error) {
	blocks, _, err := ParseBlocks(text)
	if err != nil {
		return nil, err
	}
	return normalize.Request(blocks)
}

// ParseFolder parses a folder.bru file
func ParseFolder(text string) (*types.FolderDocument, error) {
	blocks, _, err := ParseBlocks(text)
	if err != nil {
		return nil, err
	}
	return normalize.Folder(blocks)
}

// ParseCollection parses a collection.bru file
func ParseCollection(text string) (*types.CollectionDocument, error) {
	blocks, _, err := ParseBlocks(text)
	if err != nil {
		return nil, err
	}
	return normalize.Collection(blocks)
}

// ParseEnvironment parses an environment file
func ParseEnvironment(text string) (*types.EnvironmentDocument, error) {
	blocks, _, err := ParseBlocks(text)
	if err != nil {
		return nil, err
	}
	return normalize.Environment(blocks)
}

// ParseFile parses text read from path. Errors are wrapped with the path so
// callers can report them per file.
func ParseFile(path, text string, hint types.Variant) (types.Document, error) {
	doc, err := Parse(text, hint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
