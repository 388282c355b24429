// Package serialize renders documents back into brace-dialect text.
//
// Blocks are always written in the canonical order of the variant's schema,
// whatever order the document was built or parsed in, so the output is
// stable under version control. The legacy and YAML dialects are read-only:
// every document is written in the current form.
package serialize

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/studiowebux/brulang/internal/schema"
	"github.com/studiowebux/brulang/internal/token"
	"github.com/studiowebux/brulang/internal/types"
)

// Serialize renders doc as text. A nil or unknown document renders as "".
func Serialize(doc types.Document) string {
	return Render(Blocks(doc))
}

// Blocks renders doc into canonically ordered blocks
func Blocks(doc types.Document) []types.Block {
	switch d := doc.(type) {
	case *types.RequestDocument:
		if d != nil {
			return requestBlocks(d)
		}
	case *types.FolderDocument:
		if d != nil {
			return folderBlocks(d)
		}
	case *types.CollectionDocument:
		if d != nil {
			return collectionBlocks(d)
		}
	case *types.EnvironmentDocument:
		if d != nil {
			return environmentBlocks(d)
		}
	}
	return nil
}

// Render joins blocks with one blank line between them and a final newline
func Render(blocks []types.Block) string {
	if len(blocks) == 0 {
		return ""
	}
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = token.FormatBlock(b)
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Request renders a request file
func Request(d *types.RequestDocument) string { return Serialize(d) }

// Folder renders a folder.bru file
func Folder(d *types.FolderDocument) string { return Serialize(d) }

// Collection renders a collection.bru file
func Collection(d *types.CollectionDocument) string { return Serialize(d) }

// Environment renders an environment file
func Environment(d *types.EnvironmentDocument) string { return Serialize(d) }

type builder struct {
	schema *schema.Schema
	blocks []types.Block
}

func (b *builder) dict(tag string, entries []types.Entry, always bool) {
	if len(entries) == 0 && !always {
		return
	}
	b.add(types.Block{Tag: tag, Kind: types.Dictionary, Entries: scrub(entries)})
}

func (b *builder) text(tag, text string, always bool) {
	if text == "" && !always {
		return
	}
	b.add(types.Block{Tag: tag, Kind: types.RawText, Text: text})
}

func (b *builder) add(blk types.Block) {
	if !b.schema.Legal(blk.Tag) {
		return
	}
	b.blocks = append(b.blocks, blk)
}

func (b *builder) done() []types.Block {
	b.schema.Sort(b.blocks)
	return b.blocks
}

// scrub copies entries, nulling the value of every secret entry
func scrub(entries []types.Entry) []types.Entry {
	out := make([]types.Entry, len(entries))
	for i, e := range entries {
		if e.Secret {
			e.Value = nil
		}
		out[i] = e
	}
	return out
}

func kv(name, value string) types.Entry {
	return types.NewEntry(name, value, true)
}

func orNone(mode string) string {
	if mode == "" {
		return types.ModeNone
	}
	return mode
}

func (b *builder) auth(a types.Auth) {
	for _, m := range a.Modes {
		b.dict("auth:"+m.Mode, m.Fields, true)
	}
}

func (b *builder) vars(v types.Vars) {
	b.dict("vars:pre-request", v.Pre, false)
	b.dict("vars:post-response", v.Post, false)
}

func (b *builder) script(s types.Script) {
	b.text("script:pre-request", s.Pre, false)
	b.text("script:post-response", s.Post, false)
}

func requestBlocks(d *types.RequestDocument) []types.Block {
	b := &builder{schema: schema.Request}

	typ := "http"
	if d.Meta.Type == types.GraphQLRequestType {
		typ = "graphql"
	}
	b.dict("meta", []types.Entry{
		kv("name", d.Meta.Name),
		kv("type", typ),
		kv("seq", strconv.Itoa(d.Meta.Seq)),
	}, true)

	// the format has no block for other methods; keep the url under the default
	method := strings.ToLower(d.HTTP.Method)
	if method == "" {
		method = strings.ToLower(types.DefaultMethod)
	} else if r, ok := schema.Request.Lookup(method); !ok || r.Group != schema.GroupMethod {
		slog.Warn("unsupported method written as default", "method", d.HTTP.Method, "default", types.DefaultMethod)
		method = strings.ToLower(types.DefaultMethod)
	}
	b.dict(method, []types.Entry{
		kv("url", d.HTTP.URL),
		kv("body", orNone(d.Body.Mode)),
		kv("auth", orNone(d.Auth.Mode)),
	}, true)

	var query, path []types.Entry
	for _, p := range d.Params {
		if p.Type == "path" {
			path = append(path, p.Entry)
		} else {
			query = append(query, p.Entry)
		}
	}
	b.dict("params:query", query, false)
	b.dict("params:path", path, false)
	b.dict("headers", d.Headers, false)
	b.auth(d.Auth)

	for _, p := range d.Body.Payloads {
		tag := "body:" + p.Mode
		if r, ok := schema.Request.Lookup(tag); ok && r.Kind == types.RawText {
			b.text(tag, p.Text, true)
		} else {
			b.dict(tag, p.Fields, true)
		}
	}

	b.vars(d.Vars)
	b.dict("assert", d.Assertions, false)
	b.script(d.Script)
	b.text("tests", d.Tests, false)
	b.dict("settings", d.Settings, false)
	b.text("docs", d.Docs, false)
	return b.done()
}

func folderBlocks(d *types.FolderDocument) []types.Block {
	b := &builder{schema: schema.Folder}
	meta := []types.Entry{kv("name", d.Meta.Name)}
	if d.Meta.Seq != nil {
		meta = append(meta, kv("seq", strconv.Itoa(*d.Meta.Seq)))
	}
	b.dict("meta", meta, true)
	b.dict("headers", d.Headers, false)
	b.vars(d.Vars)
	b.script(d.Script)
	b.text("tests", d.Tests, false)
	b.text("docs", d.Docs, false)
	return b.done()
}

func collectionBlocks(d *types.CollectionDocument) []types.Block {
	b := &builder{schema: schema.Collection}
	b.dict("headers", d.Headers, false)
	b.dict("auth", []types.Entry{kv("mode", orNone(d.Auth.Mode))}, true)
	b.auth(d.Auth)
	b.vars(d.Vars)
	b.script(d.Script)
	b.text("tests", d.Tests, false)
	b.text("docs", d.Docs, false)
	return b.done()
}

// environmentBlocks writes plain variables to "vars" and secret names to
// "vars:secret". Secret values are never written.
func environmentBlocks(d *types.EnvironmentDocument) []types.Block {
	b := &builder{schema: schema.Environment}
	var plain, secret []types.Entry
	for _, e := range d.Variables {
		if e.Secret {
			secret = append(secret, types.SecretEntry(e.Name, e.Enabled))
		} else {
			plain = append(plain, e)
		}
	}
	b.dict("vars", plain, false)
	if len(secret) > 0 {
		b.add(types.Block{Tag: "vars:secret", Kind: types.OrderedList, Entries: secret})
	}
	return b.done()
}
