// Package cli implements the bru commands. Every command writes to an
// Output and returns an error instead of exiting, so main decides the exit
// status.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/studiowebux/brulang/internal/collection"
	"github.com/studiowebux/brulang/internal/types"
)

var (
	// ErrNotFormatted is returned by fmt --check when a file would change
	ErrNotFormatted = errors.New("some files are not formatted")
	// ErrCheckFailed is returned by check when a file has errors
	ErrCheckFailed = errors.New("check failed")
)

// Stdin is read when a command is given "-" as its file
var Stdin io.Reader = os.Stdin

// readSource reads a file, or stdin for "-"
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(data), nil
	}
	resolved, err := resolveFilePath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// resolveFilePath attempts to find the actual file path, trying the request
// file extensions if the exact path doesn't exist.
func resolveFilePath(basePath string) (string, error) {
	for _, ext := range []string{"", ".bru", ".yml", ".yaml"} {
		candidate := basePath + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("file not found: %s (tried .bru, .yml, .yaml extensions)", basePath)
}

// variantFor picks the variant of a file: an explicit --as wins, then the
// file's role by name, then inference from content.
func variantFor(path, as string) (types.Variant, error) {
	v, ok := types.ParseVariant(as)
	if !ok {
		return types.VariantUnknown, fmt.Errorf("unknown document kind %q (want request, folder, collection or environment)", as)
	}
	if v != types.VariantUnknown || path == "-" {
		return v, nil
	}
	rel := filepath.Base(path)
	if parent := filepath.Base(filepath.Dir(path)); parent == collection.EnvironmentsDir {
		rel = parent + "/" + rel
	}
	if role := collection.RoleOf(rel); role != types.VariantRequest {
		return role, nil
	}
	return types.VariantUnknown, nil
}
