package types

import "strings"

// BlockKind identifies how the content of a block is shaped
type BlockKind int

const (
	// Dictionary blocks hold one "name: value" entry per line
	Dictionary BlockKind = iota
	// OrderedList blocks hold comma separated names or legacy flag lines
	OrderedList
	// RawText blocks hold a verbatim payload (scripts, bodies, docs)
	RawText
)

func (k BlockKind) String() string {
	switch k {
	case Dictionary:
		return "dictionary"
	case OrderedList:
		return "list"
	case RawText:
		return "text"
	default:
		return "unknown"
	}
}

// Entry is one line of a Dictionary or OrderedList block
type Entry struct {
	Name    string  `json:"name" yaml:"name"`
	Value   *string `json:"value" yaml:"value"`
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Secret  bool    `json:"secret,omitempty" yaml:"secret,omitempty"`
}

// NewEntry returns an entry carrying a string value
func NewEntry(name, value string, enabled bool) Entry {
	return Entry{Name: name, Value: &value, Enabled: enabled}
}

// SecretEntry returns an entry declared in a vars:secret list. Its value is
// always null in text form.
func SecretEntry(name string, enabled bool) Entry {
	return Entry{Name: name, Enabled: enabled, Secret: true}
}

// StringValue returns the value or "" when it is null
func (e Entry) StringValue() string {
	if e.Value == nil {
		return ""
	}
	return *e.Value
}

// Block is a named section of a document
type Block struct {
	Tag     string    `json:"tag"`
	Kind    BlockKind `json:"kind"`
	Entries []Entry   `json:"entries,omitempty"`
	Text    string    `json:"text,omitempty"`
	Line    int       `json:"line,omitempty"` // 1-based header line, 0 when synthesized
}

// Mode returns the part of the tag after the first colon ("body:json" -> "json")
func (b Block) Mode() string {
	_, mode, _ := strings.Cut(b.Tag, ":")
	return mode
}

// Get returns the value of the last entry named name
func (b Block) Get(name string) (string, bool) {
	for i := len(b.Entries) - 1; i >= 0; i-- {
		if b.Entries[i].Name == name {
			return b.Entries[i].StringValue(), true
		}
	}
	return "", false
}

// Variant says which of the four document shapes a file represents
type Variant int

const (
	// VariantUnknown means no hint; the normalizer infers the variant from content
	VariantUnknown Variant = iota
	VariantRequest
	VariantFolder
	VariantCollection
	VariantEnvironment
)

func (v Variant) String() string {
	switch v {
	case VariantRequest:
		return "request"
	case VariantFolder:
		return "folder"
	case VariantCollection:
		return "collection"
	case VariantEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// ParseVariant maps a name such as "request" or "env" to a Variant
func ParseVariant(s string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return VariantUnknown, true
	case "request", "req":
		return VariantRequest, true
	case "folder":
		return VariantFolder, true
	case "collection":
		return VariantCollection, true
	case "environment", "env":
		return VariantEnvironment, true
	}
	return VariantUnknown, false
}
