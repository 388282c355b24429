// Package converter imports requests from other formats into request
// documents and writes them out as request files.
package converter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/studiowebux/brulang/internal/config"
	"github.com/studiowebux/brulang/internal/serialize"
	"github.com/studiowebux/brulang/internal/types"
)

// Options control how imported requests are built
type Options struct {
	ImportHeaders bool   // If true, keep sensitive headers
	Filter        string // Only keep requests whose URL contains Filter
}

var sensitiveHeaders = map[string]bool{
	"cookie":        true,
	"authorization": true,
	"x-auth-token":  true,
	"x-api-key":     true,
}

// requestBuilder accumulates one imported request
type requestBuilder struct {
	doc *types.RequestDocument
}

func newRequest(name, method, rawURL string, seq int) *requestBuilder {
	if method == "" {
		method = types.DefaultMethod
	}
	if name == "" {
		name = fmt.Sprintf("%s %s", strings.ToUpper(method), extractPath(rawURL))
	}
	b := &requestBuilder{doc: &types.RequestDocument{
		Meta: types.RequestMeta{Name: name, Type: types.HTTPRequestType, Seq: seq},
		HTTP: types.HTTP{Method: strings.ToUpper(method), URL: rawURL},
		Body: types.Body{Mode: types.ModeNone},
		Auth: types.Auth{Mode: types.ModeNone},
	}}
	for _, q := range queryOf(rawURL) {
		b.doc.Params = append(b.doc.Params, types.Param{Entry: q, Type: "query"})
	}
	return b
}

// header adds a header. A bearer Authorization header becomes bearer auth
// instead; other sensitive headers are dropped unless opts keeps them.
func (b *requestBuilder) header(name, value string, opts Options) {
	if strings.HasPrefix(name, ":") {
		return
	}
	lower := strings.ToLower(name)
	if lower == "authorization" && strings.HasPrefix(value, "Bearer ") {
		token := strings.TrimPrefix(value, "Bearer ")
		if !opts.ImportHeaders {
			token = "{{token}}"
		}
		b.doc.Auth = types.Auth{Mode: "bearer", Modes: []types.AuthBlock{{
			Mode:   "bearer",
			Fields: []types.Entry{types.NewEntry("token", token, true)},
		}}}
		return
	}
	if sensitiveHeaders[lower] && !opts.ImportHeaders {
		return
	}
	b.doc.Headers = append(b.doc.Headers, types.NewEntry(name, value, true))
}

func (b *requestBuilder) contentType() string {
	for _, h := range b.doc.Headers {
		if strings.EqualFold(h.Name, "content-type") {
			return strings.ToLower(h.StringValue())
		}
	}
	return ""
}

// body sets a raw body, choosing the mode from the mime type and falling
// back to sniffing JSON.
func (b *requestBuilder) body(mime, text string) {
	if text == "" {
		return
	}
	mode := bodyMode(mime, text)
	p := types.BodyPayload{Mode: mode}
	if mode == "form-urlencoded" {
		p.Fields = formFields(text)
	} else {
		p.Text = text
	}
	b.doc.Body = types.Body{Mode: mode, Payloads: []types.BodyPayload{p}}
}

func (b *requestBuilder) form(fields []types.Entry) {
	if len(fields) == 0 {
		return
	}
	b.doc.Body = types.Body{Mode: "form-urlencoded", Payloads: []types.BodyPayload{{
		Mode:   "form-urlencoded",
		Fields: fields,
	}}}
}

func bodyMode(mime, text string) string {
	mime = strings.ToLower(mime)
	switch {
	case strings.Contains(mime, "json"):
		return "json"
	case strings.Contains(mime, "graphql"):
		return "graphql"
	case strings.Contains(mime, "xml"):
		return "xml"
	case strings.Contains(mime, "x-www-form-urlencoded"):
		return "form-urlencoded"
	case mime == "" && json.Valid([]byte(text)):
		return "json"
	default:
		return "text"
	}
}

// formFields splits an urlencoded body keeping field order and the raw
// (still encoded) values so template variables survive.
func formFields(text string) []types.Entry {
	var out []types.Entry
	for _, pair := range strings.Split(strings.TrimSpace(text), "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		out = append(out, types.NewEntry(name, value, true))
	}
	return out
}

// queryOf returns the query parameters of rawURL in order
func queryOf(rawURL string) []types.Entry {
	_, query, ok := strings.Cut(rawURL, "?")
	if !ok {
		return nil
	}
	query, _, _ = strings.Cut(query, "#")
	return formFields(query)
}

// extractPath extracts the path from a URL
func extractPath(urlStr string) string {
	parts := strings.SplitN(urlStr, "://", 2)
	if len(parts) != 2 {
		return "/"
	}

	pathStart := strings.Index(parts[1], "/")
	if pathStart == -1 {
		return "/"
	}

	path := parts[1][pathStart:]
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	if idx := strings.Index(path, "#"); idx != -1 {
		path = path[:idx]
	}
	return path
}

var invalidFilename = regexp.MustCompile(`[^a-z0-9_]+`)

// SuggestFilename generates a file name from a request's method and path
func SuggestFilename(doc *types.RequestDocument, index int) string {
	method := strings.ToLower(doc.HTTP.Method)
	name := invalidFilename.ReplaceAllString(strings.ToLower(extractPath(doc.HTTP.URL)), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return fmt.Sprintf("%s-request-%d.bru", method, index)
	}
	return method + "-" + name + ".bru"
}

// WriteRequests serializes docs into dir, one file each. Clashing names get
// a numeric suffix. It returns the written paths.
func WriteRequests(dir string, docs []*types.RequestDocument) ([]string, error) {
	if dir == "" {
		dir = "requests"
	}
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	used := make(map[string]int)
	var written []string
	for i, doc := range docs {
		name := SuggestFilename(doc, i)
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = fmt.Sprintf("%s-%d.bru", strings.TrimSuffix(name, ".bru"), n+1)
		} else {
			used[name] = 1
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(serialize.Request(doc)), config.FilePermissions); err != nil {
			return written, fmt.Errorf("failed to write file: %w", err)
		}
		slog.Debug("wrote request", "path", path, "name", doc.Meta.Name)
		written = append(written, path)
	}
	return written, nil
}
