package cli

import (
	"fmt"
	"os"

	"github.com/studiowebux/brulang/internal/converter"
	"github.com/studiowebux/brulang/internal/types"
)

// Import source formats
const (
	ImportHTTP = "http"
	ImportHAR  = "har"
)

// ImportOptions contains options for the import command
type ImportOptions struct {
	Format        string // http or har
	File          string
	OutputDir     string
	ImportHeaders bool   // keep sensitive headers
	Filter        string // only URLs containing Filter
}

// Import converts a .http file or HAR archive into request files
func Import(out *Output, opts ImportOptions) error {
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.File, err)
	}
	copts := converter.Options{ImportHeaders: opts.ImportHeaders, Filter: opts.Filter}

	var docs []*types.RequestDocument
	switch opts.Format {
	case ImportHTTP:
		docs, err = converter.ParseHTTP(string(data), copts)
	case ImportHAR:
		docs, err = converter.ParseHAR(data, copts)
	default:
		return fmt.Errorf("unknown import format %q (want http or har)", opts.Format)
	}
	if err != nil {
		return err
	}

	written, err := converter.WriteRequests(opts.OutputDir, docs)
	for _, p := range written {
		out.Printf("%s\n", p)
	}
	if err != nil {
		return err
	}
	out.Successf("Converted %d request(s)", len(written))
	return nil
}
