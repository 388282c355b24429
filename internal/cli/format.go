package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/studiowebux/brulang/internal/config"
	"github.com/studiowebux/brulang/internal/parser"
	"github.com/studiowebux/brulang/internal/serialize"
)

// FmtOptions contains options for the fmt command
type FmtOptions struct {
	Files []string
	As    string
	Write bool // rewrite files in place
	Check bool // only report files that would change
	Diff  bool // print a line diff instead of the result
}

// Format re-serializes files in canonical form. Legacy and YAML files come
// out in the current dialect.
func Format(out *Output, opts FmtOptions) error {
	var unformatted []string
	for _, file := range opts.Files {
		variant, err := variantFor(file, opts.As)
		if err != nil {
			return err
		}
		text, err := readSource(file)
		if err != nil {
			return err
		}
		doc, err := parser.ParseFile(file, text, variant)
		if err != nil {
			return err
		}
		formatted := serialize.Serialize(doc)
		changed := formatted != text

		switch {
		case opts.Check:
			if changed {
				unformatted = append(unformatted, file)
				out.Warnf("%s", file)
			}
		case opts.Diff:
			if changed {
				out.Printf("--- %s\n+++ %s (formatted)\n", file, file)
				out.diff(text, formatted)
			}
		case opts.Write && file != "-":
			if !changed {
				continue
			}
			if err := os.WriteFile(file, []byte(formatted), config.FilePermissions); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}
			slog.Info("formatted file", "file", file)
		default:
			out.Printf("%s", formatted)
		}
	}
	if len(unformatted) > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrNotFormatted, len(unformatted))
	}
	return nil
}

// diff prints a line-level diff of a against b
func (o *Output) diff(a, b string) {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				o.green.Fprintf(o.W, "+%s\n", line)
			case diffmatchpatch.DiffDelete:
				o.red.Fprintf(o.W, "-%s\n", line)
			default:
				fmt.Fprintf(o.W, " %s\n", line)
			}
		}
	}
}
