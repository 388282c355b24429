package normalize

import (
	"strings"

	"github.com/studiowebux/brulang/internal/schema"
	"github.com/studiowebux/brulang/internal/types"
)

// Request builds a RequestDocument. meta.name is the only required field.
func Request(blocks []types.Block) (*types.RequestDocument, error) {
	s := schema.Request
	bs := prepare(blocks, s)
	meta, _ := bs.get("meta")
	name, ok := meta.Get("name")
	if !ok {
		return nil, &MissingRequiredBlockError{Field: "meta.name"}
	}
	typ, _ := meta.Get("type")
	seq, _ := meta.Get("seq")

	doc := &types.RequestDocument{
		Meta: types.RequestMeta{
			Name: name,
			Type: requestType(typ),
			Seq:  coerceSeq(seq),
		},
		HTTP: types.HTTP{Method: s.GroupDefault(schema.GroupMethod)},
	}

	var bodyMode, authMode string
	if methods := bs.group(s, schema.GroupMethod); len(methods) > 0 {
		mb := methods[len(methods)-1]
		doc.HTTP.Method = strings.ToUpper(mb.Tag)
		doc.HTTP.URL, _ = mb.Get("url")
		bodyMode, _ = mb.Get("body")
		authMode, _ = mb.Get("auth")
	}

	for _, b := range bs.list {
		var ptype string
		switch b.Tag {
		case "params:query", "query":
			ptype = "query"
		case "params:path":
			ptype = "path"
		default:
			continue
		}
		for _, e := range copyEntries(b.Entries) {
			doc.Params = append(doc.Params, types.Param{Entry: e, Type: ptype})
		}
	}

	doc.Headers = bs.entries("headers")
	doc.Auth = authOf(bs, s, authMode)

	bodies := bs.group(s, schema.GroupBody)
	for _, b := range bodies {
		p := types.BodyPayload{Mode: b.Mode()}
		if r, _ := s.Lookup(b.Tag); r.Kind == types.RawText {
			p.Text = b.Text
		} else {
			p.Fields = copyEntries(b.Entries)
		}
		doc.Body.Payloads = append(doc.Body.Payloads, p)
	}
	doc.Body.Mode = pickMode(bodyMode, bodies, s.GroupDefault(schema.GroupBody))
	if doc.Body.Mode == "graphql:vars" {
		doc.Body.Mode = "graphql"
	}

	doc.Vars = varsOf(bs)
	doc.Assertions = bs.entries("assert")
	doc.Script = scriptOf(bs)
	doc.Tests = bs.text("tests")
	doc.Docs = bs.text("docs")
	doc.Settings = bs.entries("settings")
	return doc, nil
}

// Folder builds a FolderDocument. meta.name is required; seq is optional.
func Folder(blocks []types.Block) (*types.FolderDocument, error) {
	bs := prepare(blocks, schema.Folder)
	meta, _ := bs.get("meta")
	name, ok := meta.Get("name")
	if !ok {
		return nil, &MissingRequiredBlockError{Field: "meta.name"}
	}
	doc := &types.FolderDocument{
		Meta:    types.FolderMeta{Name: name},
		Headers: bs.entries("headers"),
		Script:  scriptOf(bs),
		Vars:    varsOf(bs),
		Tests:   bs.text("tests"),
		Docs:    bs.text("docs"),
	}
	if seq, ok := meta.Get("seq"); ok {
		n := coerceSeq(seq)
		doc.Meta.Seq = &n
	}
	return doc, nil
}

// Collection builds a CollectionDocument. The auth mode is declared by the
// "auth { mode: ... }" block.
func Collection(blocks []types.Block) (*types.CollectionDocument, error) {
	s := schema.Collection
	bs := prepare(blocks, s)
	decl, _ := bs.get("auth")
	mode, _ := decl.Get("mode")
	return &types.CollectionDocument{
		Headers: bs.entries("headers"),
		Auth:    authOf(bs, s, mode),
		Script:  scriptOf(bs),
		Vars:    varsOf(bs),
		Tests:   bs.text("tests"),
		Docs:    bs.text("docs"),
	}, nil
}

// Environment builds an EnvironmentDocument. Plain variables come first,
// followed by secret declarations with a null value. A name declared both
// ways keeps both entries and is reported in SecretConflicts.
func Environment(blocks []types.Block) (*types.EnvironmentDocument, error) {
	bs := prepare(blocks, schema.Environment)
	doc := &types.EnvironmentDocument{}
	plain := make(map[string]bool)
	for _, e := range bs.entries("vars") {
		e.Secret = false
		if e.Value == nil {
			v := ""
			e.Value = &v
		}
		plain[e.Name] = true
		doc.Variables = append(doc.Variables, e)
	}
	secrets, _ := bs.get("vars:secret")
	for _, e := range secrets.Entries {
		doc.Variables = append(doc.Variables, types.SecretEntry(e.Name, e.Enabled))
		if plain[e.Name] {
			doc.SecretConflicts = append(doc.SecretConflicts, e.Name)
		}
	}
	return doc, nil
}
