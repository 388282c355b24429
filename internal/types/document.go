package types

const (
	// HTTPRequestType is the request type for plain HTTP requests
	HTTPRequestType = "http-request"
	// GraphQLRequestType is the request type for GraphQL requests
	GraphQLRequestType = "graphql-request"

	// ModeNone is the fallback for body and auth modes
	ModeNone = "none"
	// DefaultMethod is used when a request has no method block
	DefaultMethod = "GET"
	// DefaultSeq replaces a missing or unparseable seq
	DefaultSeq = 1
)

// Document is one of RequestDocument, FolderDocument, CollectionDocument or
// EnvironmentDocument.
type Document interface {
	Variant() Variant
}

// RequestMeta holds the identity of a request
type RequestMeta struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Seq  int    `json:"seq" yaml:"seq"`
}

// HTTP holds the method block of a request
type HTTP struct {
	Method string `json:"method" yaml:"method"`
	URL    string `json:"url" yaml:"url"`
}

// Param is a query or path parameter
type Param struct {
	Entry `yaml:",inline"`
	Type  string `json:"type" yaml:"type"` // query or path
}

// AuthBlock holds the fields of one auth:<mode> block
type AuthBlock struct {
	Mode   string  `json:"mode" yaml:"mode"`
	Fields []Entry `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Auth holds the active auth mode and the fields declared for each mode
type Auth struct {
	Mode  string      `json:"mode" yaml:"mode"`
	Modes []AuthBlock `json:"modes,omitempty" yaml:"modes,omitempty"`
}

// Fields returns the fields declared for mode
func (a Auth) Fields(mode string) ([]Entry, bool) {
	for _, m := range a.Modes {
		if m.Mode == mode {
			return m.Fields, true
		}
	}
	return nil, false
}

// BodyPayload holds the content of one body:<mode> block. Text modes use
// Text, form modes use Fields.
type BodyPayload struct {
	Mode   string  `json:"mode" yaml:"mode"`
	Text   string  `json:"text,omitempty" yaml:"text,omitempty"`
	Fields []Entry `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Body holds the active body mode and every declared payload
type Body struct {
	Mode     string        `json:"mode" yaml:"mode"`
	Payloads []BodyPayload `json:"payloads,omitempty" yaml:"payloads,omitempty"`
}

// Payload returns the payload declared for mode
func (b Body) Payload(mode string) (BodyPayload, bool) {
	for _, p := range b.Payloads {
		if p.Mode == mode {
			return p, true
		}
	}
	return BodyPayload{}, false
}

// Vars holds request-scoped variables
type Vars struct {
	Pre  []Entry `json:"pre,omitempty" yaml:"pre,omitempty"`
	Post []Entry `json:"post,omitempty" yaml:"post,omitempty"`
}

// Script holds pre-request and post-response scripts
type Script struct {
	Pre  string `json:"pre,omitempty" yaml:"pre,omitempty"`
	Post string `json:"post,omitempty" yaml:"post,omitempty"`
}

// RequestDocument is a single request file
type RequestDocument struct {
	Meta       RequestMeta `json:"meta" yaml:"meta"`
	HTTP       HTTP        `json:"http" yaml:"http"`
	Params     []Param     `json:"params,omitempty" yaml:"params,omitempty"`
	Headers    []Entry     `json:"headers,omitempty" yaml:"headers,omitempty"`
	Auth       Auth        `json:"auth" yaml:"auth"`
	Body       Body        `json:"body" yaml:"body"`
	Vars       Vars        `json:"vars" yaml:"vars"`
	Assertions []Entry     `json:"assertions,omitempty" yaml:"assertions,omitempty"`
	Script     Script      `json:"script" yaml:"script"`
	Tests      string      `json:"tests,omitempty" yaml:"tests,omitempty"`
	Docs       string      `json:"docs,omitempty" yaml:"docs,omitempty"`
	Settings   []Entry     `json:"settings,omitempty" yaml:"settings,omitempty"`
}

func (*RequestDocument) Variant() Variant { return VariantRequest }

// FolderMeta holds the identity of a folder. Seq is optional.
type FolderMeta struct {
	Name string `json:"name" yaml:"name"`
	Seq  *int   `json:"seq,omitempty" yaml:"seq,omitempty"`
}

// FolderDocument holds folder-level settings. Folders inherit auth from the
// collection.
type FolderDocument struct {
	Meta    FolderMeta `json:"meta" yaml:"meta"`
	Headers []Entry    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Script  Script     `json:"script" yaml:"script"`
	Vars    Vars       `json:"vars" yaml:"vars"`
	Tests   string     `json:"tests,omitempty" yaml:"tests,omitempty"`
	Docs    string     `json:"docs,omitempty" yaml:"docs,omitempty"`
}

func (*FolderDocument) Variant() Variant { return VariantFolder }

// CollectionDocument holds collection-root settings
type CollectionDocument struct {
	Headers []Entry `json:"headers,omitempty" yaml:"headers,omitempty"`
	Auth    Auth    `json:"auth" yaml:"auth"`
	Script  Script  `json:"script" yaml:"script"`
	Vars    Vars    `json:"vars" yaml:"vars"`
	Tests   string  `json:"tests,omitempty" yaml:"tests,omitempty"`
	Docs    string  `json:"docs,omitempty" yaml:"docs,omitempty"`
}

func (*CollectionDocument) Variant() Variant { return VariantCollection }

// EnvironmentDocument is a named set of variables. Secret variables carry a
// null value until a secret store fills them.
type EnvironmentDocument struct {
	Variables []Entry `json:"variables,omitempty" yaml:"variables,omitempty"`
	// SecretConflicts lists names declared both as a plain variable and as a
	// secret. Both declarations are kept; callers decide which one wins.
	SecretConflicts []string `json:"secretConflicts,omitempty" yaml:"secretConflicts,omitempty"`
}

func (*EnvironmentDocument) Variant() Variant { return VariantEnvironment }
