package cli

import (
	"context"
	"fmt"

	"github.com/studiowebux/brulang/internal/filter"
	"github.com/studiowebux/brulang/internal/parser"
	"github.com/studiowebux/brulang/internal/secrets"
	"github.com/studiowebux/brulang/internal/types"
)

// SecretEnvPrefix prefixes process environment variables that supply
// secret values, e.g. BRU_SECRET_apiKey.
const SecretEnvPrefix = "BRU_SECRET_"

// ParseOptions contains options for the parse command
type ParseOptions struct {
	File    string
	As      string // request, folder, collection, environment or empty to infer
	Output  string // json or yaml
	Filter  string // JMESPath filter expression
	Query   string // JMESPath query or $(shell command)
	Secrets string // .env file supplying secret values
}

// Parse prints the document parsed from opts.File
func Parse(ctx context.Context, out *Output, opts ParseOptions) error {
	variant, err := variantFor(opts.File, opts.As)
	if err != nil {
		return err
	}
	text, err := readSource(opts.File)
	if err != nil {
		return err
	}
	doc, err := parser.ParseFile(opts.File, text, variant)
	if err != nil {
		return err
	}

	if opts.Secrets != "" {
		env, ok := doc.(*types.EnvironmentDocument)
		if !ok {
			return fmt.Errorf("--secrets applies to environments, %s is a %s", opts.File, doc.Variant())
		}
		values, err := secrets.LoadEnvFile(opts.Secrets)
		if err != nil {
			return err
		}
		env = secrets.Apply(env, secrets.Chain(secrets.FromMap(values), secrets.FromEnv(SecretEnvPrefix)))
		for _, name := range secrets.Unresolved(env) {
			out.Warnf("secret %q has no value", name)
		}
		doc = env
	}

	if opts.Filter == "" && opts.Query == "" {
		return out.Encode(doc, opts.Output)
	}
	result, err := filter.Apply(ctx, doc, opts.Filter, opts.Query)
	if err != nil {
		return err
	}
	if filter.IsShellCommand(opts.Query) {
		out.Printf("%s\n", result)
		return nil
	}
	return out.Highlight(result+"\n", "json")
}
