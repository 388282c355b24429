package schema

import (
	"github.com/studiowebux/brulang/internal/types"
)

// Methods lists the method block tags of a request, lower-case
var Methods = []string{"get", "post", "put", "delete", "patch", "options", "head", "connect", "trace"}

// AuthModes lists the auth:<mode> blocks understood by the format
var AuthModes = []string{"awsv4", "basic", "bearer", "digest", "ntlm", "oauth2", "wsse", "apikey"}

// TextBodyModes are body modes whose payload is verbatim text
var TextBodyModes = []string{"json", "text", "xml", "sparql", "graphql", "graphql:vars"}

// FormBodyModes are body modes whose payload is a list of fields
var FormBodyModes = []string{"form-urlencoded", "multipart-form"}

func dict(tag string) Field { return Field{Tag: tag, Rule: Rule{Kind: types.Dictionary}} }
func text(tag string) Field { return Field{Tag: tag, Rule: Rule{Kind: types.RawText}} }

func methodFields() []Field {
	var fs []Field
	for _, m := range Methods {
		fs = append(fs, Field{Tag: m, Rule: Rule{Kind: types.Dictionary, Group: GroupMethod, Default: types.DefaultMethod}})
	}
	return fs
}

func authFields() []Field {
	var fs []Field
	for _, m := range AuthModes {
		fs = append(fs, Field{Tag: "auth:" + m, Rule: Rule{Kind: types.Dictionary, Group: GroupAuth, Default: types.ModeNone}})
	}
	return fs
}

func bodyFields() []Field {
	var fs []Field
	for _, m := range TextBodyModes {
		fs = append(fs, Field{Tag: "body:" + m, Rule: Rule{Kind: types.RawText, Group: GroupBody, Default: types.ModeNone}})
	}
	for _, m := range FormBodyModes {
		fs = append(fs, Field{Tag: "body:" + m, Rule: Rule{Kind: types.Dictionary, Group: GroupBody, Default: types.ModeNone}})
	}
	return fs
}

// varsFields are the request-phase variables. A bare "vars" block, as legacy
// request files write it, is read as vars:pre-request.
func varsFields() []Field {
	return []Field{
		dict("vars:pre-request"),
		dict("vars"),
		dict("vars:post-response"),
	}
}

var (
	// Request is the table of request files
	Request = newSchema(types.VariantRequest,
		[]Field{{Tag: "meta", Rule: Rule{Kind: types.Dictionary, Required: true}}},
		methodFields(),
		[]Field{dict("params:query"), dict("query"), dict("params:path"), dict("headers")},
		authFields(),
		bodyFields(),
		varsFields(),
		[]Field{
			dict("assert"),
			text("script:pre-request"),
			text("script:post-response"),
			text("tests"),
			dict("settings"),
			text("docs"),
		},
	)

	// Folder is the table of folder.bru files. Folders inherit auth.
	Folder = newSchema(types.VariantFolder,
		[]Field{{Tag: "meta", Rule: Rule{Kind: types.Dictionary, Required: true}}},
		[]Field{dict("headers")},
		varsFields(),
		[]Field{
			text("script:pre-request"),
			text("script:post-response"),
			text("tests"),
			text("docs"),
		},
	)

	// Collection is the table of collection.bru files
	Collection = newSchema(types.VariantCollection,
		[]Field{
			dict("headers"),
			{Tag: "auth", Rule: Rule{Kind: types.Dictionary, Group: GroupAuth, Default: types.ModeNone}},
		},
		authFields(),
		varsFields(),
		[]Field{
			text("script:pre-request"),
			text("script:post-response"),
			text("tests"),
			text("docs"),
		},
	)

	// Environment is the table of environment files
	Environment = newSchema(types.VariantEnvironment,
		[]Field{
			dict("vars"),
			{Tag: "vars:secret", Rule: Rule{Kind: types.OrderedList}},
		},
	)
)
