// Package lint reports problems in parsed documents that parsing itself
// tolerates: malformed JSON bodies, declared modes without a payload and
// variables declared both plainly and as secrets.
package lint

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/studiowebux/brulang/internal/types"
	"github.com/tidwall/jsonc"
)

// Severity of a finding
type Severity int

const (
	// Warning findings do not fail a check
	Warning Severity = iota
	// Error findings fail a check
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Finding is one problem found in a document
type Finding struct {
	Severity Severity
	Rule     string
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] %s", f.Severity, f.Rule, f.Message)
}

// Rule names
const (
	RuleInvalidJSON    = "invalid-json"
	RuleMissingPayload = "missing-payload"
	RuleMissingAuth    = "missing-auth"
	RuleEmptyURL       = "empty-url"
	RuleSecretConflict = "secret-conflict"
	RuleDuplicate      = "duplicate-entry"
	RuleUndefinedVar   = "undefined-variable"
)

// Variable placeholder pattern: {{varName}}
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Check lints doc. A nil document has no findings.
func Check(doc types.Document) []Finding {
	var out []Finding
	switch d := doc.(type) {
	case *types.RequestDocument:
		if d != nil {
			out = checkRequest(d)
		}
	case *types.FolderDocument:
		if d != nil {
			out = duplicates("headers", d.Headers)
		}
	case *types.CollectionDocument:
		if d != nil {
			out = append(duplicates("headers", d.Headers), checkAuth(d.Auth)...)
		}
	case *types.EnvironmentDocument:
		if d != nil {
			out = checkEnvironment(d)
		}
	}
	return out
}

// HasErrors reports whether any finding is an error
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == Error {
			return true
		}
	}
	return false
}

func checkRequest(d *types.RequestDocument) []Finding {
	var out []Finding
	if strings.TrimSpace(d.HTTP.URL) == "" {
		out = append(out, Finding{Warning, RuleEmptyURL, "request has no url"})
	}
	out = append(out, duplicates("headers", d.Headers)...)

	if m := d.Body.Mode; m != "" && m != types.ModeNone {
		if _, ok := d.Body.Payload(m); !ok {
			out = append(out, Finding{Warning, RuleMissingPayload, fmt.Sprintf("body mode %q has no body:%s block", m, m)})
		}
	}
	for _, p := range d.Body.Payloads {
		if p.Mode != "json" && p.Mode != "graphql:vars" {
			continue
		}
		if err := ValidateJSON(p.Text); err != nil {
			out = append(out, Finding{Error, RuleInvalidJSON, fmt.Sprintf("body:%s: %v", p.Mode, err)})
		}
	}
	return append(out, checkAuth(d.Auth)...)
}

func checkAuth(a types.Auth) []Finding {
	switch a.Mode {
	case "", types.ModeNone, "inherit":
		return nil
	}
	if _, ok := a.Fields(a.Mode); !ok {
		return []Finding{{Warning, RuleMissingAuth, fmt.Sprintf("auth mode %q has no auth:%s block", a.Mode, a.Mode)}}
	}
	return nil
}

func checkEnvironment(d *types.EnvironmentDocument) []Finding {
	var out []Finding
	for _, name := range d.SecretConflicts {
		out = append(out, Finding{Warning, RuleSecretConflict, fmt.Sprintf("variable %q is declared in both vars and vars:secret", name)})
	}
	var plain []types.Entry
	for _, e := range d.Variables {
		if !e.Secret {
			plain = append(plain, e)
		}
	}
	return append(out, duplicates("vars", plain)...)
}

// duplicates reports names enabled more than once in one block
func duplicates(block string, entries []types.Entry) []Finding {
	seen := make(map[string]int)
	for _, e := range entries {
		if e.Enabled {
			seen[strings.ToLower(e.Name)]++
		}
	}
	var names []string
	for n, c := range seen {
		if c > 1 {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	out := make([]Finding, 0, len(names))
	for _, n := range names {
		out = append(out, Finding{Warning, RuleDuplicate, fmt.Sprintf("%s: %q is enabled %d times", block, n, seen[n])})
	}
	return out
}

// ValidateJSON checks a JSON body. Comments and trailing commas are accepted,
// and placeholders standing in for whole values are treated as null.
func ValidateJSON(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	src := varPattern.ReplaceAllString(text, "null")
	// Placeholders inside strings were replaced by null too; the result is still a valid string.
	data := jsonc.ToJSON([]byte(src))
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return nil
}

// ExtractVariableNames returns the unique placeholder names in input, in
// order of first use.
func ExtractVariableNames(input string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range varPattern.FindAllStringSubmatch(input, -1) {
		name := strings.TrimSpace(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// RequestVariables returns the placeholders a request uses in its url,
// params, headers, auth fields and body.
func RequestVariables(d *types.RequestDocument) []string {
	var parts []string
	parts = append(parts, d.HTTP.URL)
	for _, p := range d.Params {
		parts = append(parts, p.StringValue())
	}
	for _, h := range d.Headers {
		parts = append(parts, h.StringValue())
	}
	for _, m := range d.Auth.Modes {
		for _, f := range m.Fields {
			parts = append(parts, f.StringValue())
		}
	}
	for _, p := range d.Body.Payloads {
		parts = append(parts, p.Text)
		for _, f := range p.Fields {
			parts = append(parts, f.StringValue())
		}
	}
	return ExtractVariableNames(strings.Join(parts, "\n"))
}

// Declared collects variable names from documents: environment variables,
// collection and folder vars, and request vars.
func Declared(docs ...types.Document) map[string]bool {
	names := make(map[string]bool)
	addAll := func(entries []types.Entry) {
		for _, e := range entries {
			names[e.Name] = true
		}
	}
	for _, doc := range docs {
		switch d := doc.(type) {
		case *types.EnvironmentDocument:
			addAll(d.Variables)
		case *types.CollectionDocument:
			addAll(d.Vars.Pre)
			addAll(d.Vars.Post)
		case *types.FolderDocument:
			addAll(d.Vars.Pre)
			addAll(d.Vars.Post)
		case *types.RequestDocument:
			addAll(d.Vars.Pre)
			addAll(d.Vars.Post)
		}
	}
	return names
}

// Undefined reports placeholders of d that no declared name covers.
// process.env.* and $-prefixed dynamic variables are always defined.
func Undefined(d *types.RequestDocument, declared map[string]bool) []Finding {
	var out []Finding
	for _, name := range RequestVariables(d) {
		if declared[name] || strings.HasPrefix(name, "process.env.") || strings.HasPrefix(name, "$") {
			continue
		}
		out = append(out, Finding{Warning, RuleUndefinedVar, fmt.Sprintf("variable %q is not declared", name)})
	}
	return out
}
