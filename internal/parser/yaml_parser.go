package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/studiowebux/brulang/internal/schema"
	"github.com/studiowebux/brulang/internal/types"
	"gopkg.in/yaml.v3"
)

// yamlSections are the top-level keys of a YAML file
var yamlSections = map[string]bool{
	"info":      true,
	"http":      true,
	"runtime":   true,
	"request":   true,
	"variables": true,
	"settings":  true,
	"docs":      true,
}

var yamlKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*:(\s|$)`)

type yamlFile struct {
	Info      *yamlInfo    `yaml:"info"`
	HTTP      *yamlHTTP    `yaml:"http"`
	Runtime   *yamlRuntime `yaml:"runtime"`
	Request   *yamlRuntime `yaml:"request"`
	Variables []yamlEntry  `yaml:"variables"`
	Settings  yaml.Node    `yaml:"settings"`
	Docs      string       `yaml:"docs"`
}

type yamlInfo struct {
	Name *string   `yaml:"name"`
	Type string    `yaml:"type"`
	Seq  yaml.Node `yaml:"seq"`
}

type yamlHTTP struct {
	Method  string      `yaml:"method"`
	URL     string      `yaml:"url"`
	Params  []yamlEntry `yaml:"params"`
	Headers []yamlEntry `yaml:"headers"`
	Body    *yamlBody   `yaml:"body"`
	Auth    yaml.Node   `yaml:"auth"`
}

type yamlBody struct {
	Type      string      `yaml:"type"`
	Data      string      `yaml:"data"`
	Variables string      `yaml:"variables"`
	Fields    []yamlEntry `yaml:"fields"`
}

// yamlRuntime holds the sections shared by requests, folders and collections.
// Folders and collections carry headers and auth here instead of under http.
type yamlRuntime struct {
	Headers    []yamlEntry `yaml:"headers"`
	Auth       yaml.Node   `yaml:"auth"`
	Variables  *yamlPhases `yaml:"variables"`
	Scripts    *yamlPhases `yaml:"scripts"`
	Assertions []yamlEntry `yaml:"assertions"`
	Tests      string      `yaml:"tests"`
}

type yamlPhases struct {
	PreRequest   yaml.Node `yaml:"pre-request"`
	PostResponse yaml.Node `yaml:"post-response"`
}

type yamlEntry struct {
	Name     string    `yaml:"name"`
	Value    yaml.Node `yaml:"value"`
	Disabled bool      `yaml:"disabled"`
	Secret   bool      `yaml:"secret"`
	Type     string    `yaml:"type"`
}

// entry converts e. An absent or null value reads as "", the same value the
// brace dialect gives "name:".
func (e yamlEntry) entry() types.Entry {
	v, _ := scalar(&e.Value)
	return types.NewEntry(e.Name, v, !e.Disabled)
}

// scalar returns the text of a scalar node. Absent and null nodes report false.
func scalar(n *yaml.Node) (string, bool) {
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}
	return n.Value, true
}

type yamlReader struct{}

func (yamlReader) dialect() Dialect { return DialectYAML }

// detect accepts text whose first significant line is a top-level mapping key
// and whose decoded mapping carries at least one known section.
func (yamlReader) detect(lines []string) bool {
	var first string
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" || strings.HasPrefix(t, "#") || t == "---" {
			continue
		}
		first = l
		break
	}
	if !yamlKey.MatchString(first) {
		return false
	}
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal([]byte(strings.Join(lines, "\n")), &probe); err != nil {
		return false
	}
	for k := range probe {
		if yamlSections[k] {
			return true
		}
	}
	return false
}

func (yamlReader) read(text string) ([]types.Block, error) {
	var f yamlFile
	if err := yaml.Unmarshal([]byte(text), &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var blocks []types.Block
	add := func(b types.Block) {
		b.Line = len(blocks) + 1
		blocks = append(blocks, b)
	}
	dict := func(tag string, entries []yamlEntry) {
		if len(entries) == 0 {
			return
		}
		b := types.Block{Tag: tag, Kind: types.Dictionary}
		for _, e := range entries {
			b.Entries = append(b.Entries, e.entry())
		}
		add(b)
	}
	raw := func(tag, s string) {
		if s != "" {
			add(types.Block{Tag: tag, Kind: types.RawText, Text: s})
		}
	}

	if f.Info != nil {
		meta := types.Block{Tag: "meta", Kind: types.Dictionary}
		if f.Info.Name != nil {
			meta.Entries = append(meta.Entries, types.NewEntry("name", *f.Info.Name, true))
		}
		if f.Info.Type != "" {
			meta.Entries = append(meta.Entries, types.NewEntry("type", f.Info.Type, true))
		}
		if seq, ok := scalar(&f.Info.Seq); ok {
			meta.Entries = append(meta.Entries, types.NewEntry("seq", seq, true))
		}
		add(meta)
	}

	if h := f.HTTP; h != nil {
		method := strings.ToLower(h.Method)
		if method == "" {
			method = strings.ToLower(types.DefaultMethod)
		}
		mb := types.Block{Tag: method, Kind: types.Dictionary}
		mb.Entries = append(mb.Entries, types.NewEntry("url", h.URL, true))
		if h.Body != nil && h.Body.Type != "" {
			mb.Entries = append(mb.Entries, types.NewEntry("body", h.Body.Type, true))
		}
		authMode, authFields := yamlAuth(&h.Auth)
		if authMode != "" {
			mb.Entries = append(mb.Entries, types.NewEntry("auth", authMode, true))
		}
		add(mb)

		var query, path []yamlEntry
		for _, p := range h.Params {
			if p.Type == "path" {
				path = append(path, p)
			} else {
				query = append(query, p)
			}
		}
		dict("params:query", query)
		dict("params:path", path)
		dict("headers", h.Headers)
		if authMode != "" && authMode != types.ModeNone {
			add(types.Block{Tag: "auth:" + authMode, Kind: types.Dictionary, Entries: authFields})
		}
		if b := h.Body; b != nil && b.Type != "" && b.Type != types.ModeNone {
			tag := "body:" + b.Type
			if r, ok := schema.Request.Lookup(tag); ok && r.Kind == types.RawText {
				raw(tag, b.Data)
			} else {
				dict(tag, b.Fields)
			}
			if b.Type == "graphql" {
				raw("body:graphql:vars", b.Variables)
			}
		}
	}

	for _, rt := range []*yamlRuntime{f.Request, f.Runtime} {
		if rt == nil {
			continue
		}
		dict("headers", rt.Headers)
		if mode, fields := yamlAuth(&rt.Auth); mode != "" {
			add(types.Block{Tag: "auth", Kind: types.Dictionary, Entries: []types.Entry{types.NewEntry("mode", mode, true)}})
			if mode != types.ModeNone {
				add(types.Block{Tag: "auth:" + mode, Kind: types.Dictionary, Entries: fields})
			}
		}
		if v := rt.Variables; v != nil {
			pre, err := yamlPhaseVars("vars:pre-request", &v.PreRequest)
			if err != nil {
				return nil, err
			}
			post, err := yamlPhaseVars("vars:post-response", &v.PostResponse)
			if err != nil {
				return nil, err
			}
			for _, pb := range []types.Block{pre, post} {
				if len(pb.Entries) > 0 {
					add(pb)
				}
			}
		}
		if s := rt.Scripts; s != nil {
			if pre, ok := scalar(&s.PreRequest); ok {
				raw("script:pre-request", pre)
			}
			if post, ok := scalar(&s.PostResponse); ok {
				raw("script:post-response", post)
			}
		}
		dict("assert", rt.Assertions)
		raw("tests", rt.Tests)
	}

	var plain, secret []yamlEntry
	for _, v := range f.Variables {
		if v.Secret {
			secret = append(secret, v)
		} else {
			plain = append(plain, v)
		}
	}
	dict("vars", plain)
	if len(secret) > 0 {
		b := types.Block{Tag: "vars:secret", Kind: types.OrderedList}
		for _, s := range secret {
			b.Entries = append(b.Entries, types.SecretEntry(s.Name, !s.Disabled))
		}
		add(b)
	}

	if settings := mappingEntries(&f.Settings); len(settings) > 0 {
		add(types.Block{Tag: "settings", Kind: types.Dictionary, Entries: settings})
	}
	raw("docs", f.Docs)
	return blocks, nil
}

// yamlAuth reads an auth mapping. The "type" key names the mode and the
// remaining keys, in document order, are its fields.
func yamlAuth(n *yaml.Node) (string, []types.Entry) {
	if mode, ok := scalar(n); ok {
		return mode, nil
	}
	if n.Kind != yaml.MappingNode {
		return "", nil
	}
	var mode string
	var fields []types.Entry
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val, _ := scalar(n.Content[i+1])
		if key == "type" || key == "mode" {
			mode = val
			continue
		}
		fields = append(fields, types.NewEntry(key, val, true))
	}
	return mode, fields
}

// yamlPhaseVars accepts either a list of entries or a plain mapping
func yamlPhaseVars(tag string, n *yaml.Node) (types.Block, error) {
	b := types.Block{Tag: tag, Kind: types.Dictionary}
	switch n.Kind {
	case yaml.SequenceNode:
		var entries []yamlEntry
		if err := n.Decode(&entries); err != nil {
			return b, fmt.Errorf("invalid %s variables at line %d: %w", strings.TrimPrefix(tag, "vars:"), n.Line, err)
		}
		for _, e := range entries {
			b.Entries = append(b.Entries, e.entry())
		}
	case yaml.MappingNode:
		b.Entries = mappingEntries(n)
	}
	return b, nil
}

func mappingEntries(n *yaml.Node) []types.Entry {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	var out []types.Entry
	for i := 0; i+1 < len(n.Content); i += 2 {
		val, _ := scalar(n.Content[i+1])
		out = append(out, types.NewEntry(n.Content[i].Value, val, true))
	}
	return out
}
