package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/studiowebux/brulang/internal/config"
	"gopkg.in/yaml.v3"
)

// Highlight settings for terminal output
const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// Output writes command results, colored when the destination allows it
type Output struct {
	W     io.Writer
	Color bool

	red, yellow, green, bold *color.Color
}

// NewOutput creates an Output for w. mode is one of the config color modes.
func NewOutput(w io.Writer, mode string) *Output {
	o := &Output{W: w, Color: ColorEnabled(mode, w)}
	o.red = o.color(color.FgRed)
	o.yellow = o.color(color.FgYellow)
	o.green = o.color(color.FgGreen)
	o.bold = o.color(color.Bold)
	return o
}

func (o *Output) color(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if o.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// ColorEnabled resolves a color mode against the writer. Auto enables color
// only for terminals and honors NO_COLOR.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printf writes plain text
func (o *Output) Printf(format string, args ...any) {
	fmt.Fprintf(o.W, format, args...)
}

// Errorf writes a red line
func (o *Output) Errorf(format string, args ...any) {
	o.red.Fprintf(o.W, format+"\n", args...)
}

// Warnf writes a yellow line
func (o *Output) Warnf(format string, args ...any) {
	o.yellow.Fprintf(o.W, format+"\n", args...)
}

// Successf writes a green line
func (o *Output) Successf(format string, args ...any) {
	o.green.Fprintf(o.W, format+"\n", args...)
}

// Encode marshals v as json or yaml and writes it, highlighted when colored
func (o *Output) Encode(v any, format string) error {
	var text string
	switch format {
	case config.OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		text = string(data)
	case config.OutputJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		text = string(data) + "\n"
		format = config.OutputJSON
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
	return o.Highlight(text, format)
}

// Highlight writes source with syntax highlighting for lexer when colored
func (o *Output) Highlight(source, lexer string) error {
	if !o.Color {
		_, err := io.WriteString(o.W, source)
		return err
	}
	if err := quick.Highlight(o.W, source, lexer, highlightFormatter, highlightStyle); err != nil {
		return fmt.Errorf("failed to highlight output: %w", err)
	}
	return nil
}
