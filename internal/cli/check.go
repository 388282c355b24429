package cli

import (
	"context"
	"fmt"

	"github.com/studiowebux/brulang/internal/collection"
	"github.com/studiowebux/brulang/internal/lint"
	"github.com/studiowebux/brulang/internal/types"
)

// CheckOptions contains options for the check command
type CheckOptions struct {
	Dir     string
	Workers int
	Strict  bool // warnings fail the check too
}

// Check loads every file of a collection and reports parse errors and lint
// findings. Placeholders are checked against every environment and the vars
// of the collection, the request's folders and the request itself.
func Check(ctx context.Context, out *Output, opts CheckOptions) error {
	col, err := collection.Load(ctx, opts.Dir, opts.Workers)
	if err != nil {
		return err
	}

	shared := []types.Document{}
	folders := make(map[string]types.Document)
	for _, f := range col.Files {
		if f.Err != nil {
			continue
		}
		switch f.Doc.(type) {
		case *types.EnvironmentDocument, *types.CollectionDocument:
			shared = append(shared, f.Doc)
		case *types.FolderDocument:
			folders[collection.Dir(f.Rel)] = f.Doc
		}
	}

	var errs, warns int
	for _, f := range col.Files {
		if f.Err != nil {
			errs++
			out.Errorf("%s: %v", f.Rel, f.Err)
			continue
		}
		findings := lint.Check(f.Doc)
		if req, ok := f.Doc.(*types.RequestDocument); ok {
			scope := append(append([]types.Document{}, shared...), req)
			for d := collection.Dir(f.Rel); ; d = collection.Dir(d) {
				if folder, ok := folders[d]; ok {
					scope = append(scope, folder)
				}
				if d == "" {
					break
				}
			}
			findings = append(findings, lint.Undefined(req, lint.Declared(scope...))...)
		}
		for _, fd := range findings {
			if fd.Severity == lint.Error {
				errs++
				out.Errorf("%s: %s", f.Rel, fd)
			} else {
				warns++
				out.Warnf("%s: %s", f.Rel, fd)
			}
		}
	}

	summary := fmt.Sprintf("%d file(s), %d error(s), %d warning(s)", len(col.Files), errs, warns)
	if errs > 0 || (opts.Strict && warns > 0) {
		out.Errorf("%s", summary)
		return ErrCheckFailed
	}
	out.Successf("%s", summary)
	return nil
}
