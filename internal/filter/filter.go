// Package filter selects parts of a parsed document with JMESPath or pipes
// the document through a shell command.
package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"
)

const (
	// QueryShellTimeout is the maximum time allowed for query shell command execution
	QueryShellTimeout = 30 * time.Second
)

var (
	// Shell command pattern: $(command)
	shellPattern = regexp.MustCompile(`^\$\((.+)\)$`)
)

// Apply runs filter then query over doc and returns indented JSON.
// Filter narrows results (e.g., params[?type==`path`])
// Query transforms/selects fields (e.g., headers[].name)
// If query starts with $(...), it's executed as a shell command with the
// JSON document piped to stdin and its trimmed output is returned as is.
func Apply(ctx context.Context, doc any, filter string, query string) (string, error) {
	data, err := generic(doc)
	if err != nil {
		return "", err
	}

	if filter != "" {
		if data, err = search(data, filter); err != nil {
			return "", fmt.Errorf("failed to apply filter: %w", err)
		}
	}

	if matches := shellPattern.FindStringSubmatch(query); len(matches) > 1 {
		in, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal document: %w", err)
		}
		out, err := runShell(ctx, in, matches[1])
		if err != nil {
			return "", fmt.Errorf("failed to execute query shell command: %w", err)
		}
		return out, nil
	}

	if query != "" {
		if data, err = search(data, query); err != nil {
			return "", fmt.Errorf("failed to apply query: %w", err)
		}
	}
	if data == nil {
		return "null", nil
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(out), nil
}

// generic converts doc to the map/slice form JMESPath walks. Strings and byte
// slices are decoded as JSON text.
func generic(doc any) (any, error) {
	var raw []byte
	switch d := doc.(type) {
	case string:
		raw = []byte(d)
	case []byte:
		raw = d
	default:
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document: %w", err)
		}
		raw = b
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return data, nil
}

func search(data any, expression string) (any, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}
	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// runShell runs command under sh with input on stdin and returns its
// trimmed stdout. stderr becomes the error message on failure.
func runShell(ctx context.Context, input []byte, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryShellTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("command '%s' failed: %s", command, msg)
		}
		return "", fmt.Errorf("command '%s' failed: %w", command, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// IsShellCommand checks if a query is a shell command (starts with $(...))
func IsShellCommand(query string) bool {
	return shellPattern.MatchString(query)
}
