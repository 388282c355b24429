// Package secrets fills the values of secret environment variables from a
// source outside the environment file.
//
// Parsing never produces a secret value: vars:secret declarations carry a
// name only. Apply returns a copy of the environment with the values a
// Lookup can supply. Serializing that copy still writes names only.
package secrets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/studiowebux/brulang/internal/types"
)

// Lookup returns the value of a secret by name
type Lookup func(name string) (string, bool)

// Apply returns a deep copy of env whose secret variables carry the values
// found by lookup. Secrets lookup cannot resolve keep a nil value. env is not
// modified.
func Apply(env *types.EnvironmentDocument, lookup Lookup) *types.EnvironmentDocument {
	if env == nil {
		return nil
	}
	out := &types.EnvironmentDocument{
		Variables:       make([]types.Entry, len(env.Variables)),
		SecretConflicts: append([]string(nil), env.SecretConflicts...),
	}
	for i, e := range env.Variables {
		if e.Value != nil {
			v := *e.Value
			e.Value = &v
		}
		if e.Secret && lookup != nil {
			if v, ok := lookup(e.Name); ok {
				e.Value = &v
			}
		}
		out.Variables[i] = e
	}
	return out
}

// Unresolved lists the enabled secret variables of env without a value
func Unresolved(env *types.EnvironmentDocument) []string {
	if env == nil {
		return nil
	}
	var names []string
	for _, e := range env.Variables {
		if e.Secret && e.Enabled && e.Value == nil {
			names = append(names, e.Name)
		}
	}
	return names
}

// FromMap looks secrets up in m
func FromMap(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// FromEnv looks secrets up in the process environment under prefix+name
func FromEnv(prefix string) Lookup {
	return func(name string) (string, bool) {
		return os.LookupEnv(prefix + name)
	}
}

// Chain tries each lookup in order and returns the first hit
func Chain(lookups ...Lookup) Lookup {
	return func(name string) (string, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if v, ok := l(name); ok {
				return v, true
			}
		}
		return "", false
	}
}

// LoadEnvFile loads key=value pairs from a .env file
func LoadEnvFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer file.Close()

	vars, err := ParseEnv(file)
	if err != nil {
		return nil, fmt.Errorf("error reading env file %s: %w", path, err)
	}
	return vars, nil
}

// ParseEnv reads key=value lines. Blank lines, comments and malformed lines
// are skipped; matching surrounding quotes are removed from values.
func ParseEnv(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		vars[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}
