// Package collection loads every file of a collection directory.
//
// A collection is a directory tree. collection.bru at the root holds the
// collection defaults, folder.bru holds a folder's defaults, files under an
// environments/ directory are environments and every other request file is a
// request. Files are parsed concurrently; a file that fails to parse is
// reported in its result and does not stop the load.
package collection

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/studiowebux/brulang/internal/normalize"
	"github.com/studiowebux/brulang/internal/parser"
	"github.com/studiowebux/brulang/internal/types"
	"golang.org/x/sync/errgroup"
)

const (
	// CollectionFile holds collection level defaults
	CollectionFile = "collection.bru"
	// FolderFile holds folder level defaults
	FolderFile = "folder.bru"
	// EnvironmentsDir holds environment files
	EnvironmentsDir = "environments"
)

// extensions of files the loader parses
var extensions = map[string]bool{".bru": true, ".yml": true, ".yaml": true}

// skipDirs are never descended into
var skipDirs = map[string]bool{"node_modules": true}

// File is the result of loading one file
type File struct {
	Path    string // absolute or root-joined path
	Rel     string // path relative to the collection root, slash separated
	Variant types.Variant
	Dialect parser.Dialect
	Doc     types.Document
	Err     error
}

// Collection is a loaded collection directory
type Collection struct {
	Root  string
	Files []File
}

// RoleOf returns the variant of the file at rel, a slash separated path
// relative to the collection root.
func RoleOf(rel string) types.Variant {
	base := baseName(rel)
	switch {
	case rel == CollectionFile:
		return types.VariantCollection
	case base == FolderFile:
		return types.VariantFolder
	case strings.HasPrefix(rel, EnvironmentsDir+"/"):
		return types.VariantEnvironment
	default:
		return types.VariantRequest
	}
}

func baseName(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

// Discover lists the request files under root, sorted
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !extensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile reads and parses one file as variant. VariantUnknown infers it.
func LoadFile(p string, variant types.Variant) File {
	f := File{Path: p, Rel: filepath.ToSlash(p), Variant: variant}
	data, err := os.ReadFile(p)
	if err != nil {
		f.Err = fmt.Errorf("failed to read file: %w", err)
		return f
	}
	blocks, dialect, err := parser.ParseBlocks(string(data))
	f.Dialect = dialect
	if err != nil {
		f.Err = err
		return f
	}
	f.Doc, f.Err = normalize.Normalize(blocks, variant)
	if f.Doc != nil {
		f.Variant = f.Doc.Variant()
	}
	return f
}

// Load parses every file under root with at most workers files in flight.
// Results are sorted by path. Only a walk failure or ctx cancellation
// returns an error.
func Load(ctx context.Context, root string, workers int) (*Collection, error) {
	paths, err := Discover(root)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	files := make([]File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				rel = p
			}
			rel = filepath.ToSlash(rel)
			f := LoadFile(p, RoleOf(rel))
			f.Rel = rel
			if f.Err != nil {
				slog.Debug("failed to parse file", "file", rel, "error", f.Err)
			} else {
				slog.Debug("parsed file", "file", rel, "variant", f.Variant, "dialect", f.Dialect)
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.Info("loaded collection", "root", root, "files", len(files))
	return &Collection{Root: root, Files: files}, nil
}

// Errors returns the files that failed to load
func (c *Collection) Errors() []File {
	var out []File
	for _, f := range c.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Requests returns the parsed requests ordered by folder, then seq, then name
func (c *Collection) Requests() []File {
	var out []File
	for _, f := range c.Files {
		if _, ok := f.Doc.(*types.RequestDocument); ok && f.Err == nil {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := Dir(out[i].Rel), Dir(out[j].Rel)
		if di != dj {
			return di < dj
		}
		ri := out[i].Doc.(*types.RequestDocument)
		rj := out[j].Doc.(*types.RequestDocument)
		if ri.Meta.Seq != rj.Meta.Seq {
			return ri.Meta.Seq < rj.Meta.Seq
		}
		return ri.Meta.Name < rj.Meta.Name
	})
	return out
}

// Environments returns the parsed environments keyed by file name without
// extension.
func (c *Collection) Environments() map[string]*types.EnvironmentDocument {
	out := make(map[string]*types.EnvironmentDocument)
	for _, f := range c.Files {
		if env, ok := f.Doc.(*types.EnvironmentDocument); ok && f.Err == nil {
			name := baseName(f.Rel)
			out[strings.TrimSuffix(name, filepath.Ext(name))] = env
		}
	}
	return out
}

// Dir returns the parent of a slash separated relative path, "" at the root
func Dir(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return ""
}
