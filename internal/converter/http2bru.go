package converter

import (
	"fmt"
	"strings"

	"github.com/studiowebux/brulang/internal/token"
	"github.com/studiowebux/brulang/internal/types"
)

var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true, "PATCH": true,
	"HEAD": true, "OPTIONS": true, "CONNECT": true, "TRACE": true,
}

// ParseHTTP converts a .http file with ### separators into request documents.
// Comment lines that are not annotations become the request docs.
func ParseHTTP(text string, opts Options) ([]*types.RequestDocument, error) {
	var docs []*types.RequestDocument

	var (
		current   *requestBuilder
		name      string
		inBody    bool
		bodyLines []string
		docLines  []string
	)

	flush := func() {
		if current == nil {
			return
		}
		if len(bodyLines) > 0 {
			current.body(current.contentType(), strings.TrimRight(strings.Join(bodyLines, "\n"), "\n"))
		}
		if len(docLines) > 0 {
			current.doc.Docs = strings.Join(docLines, "\n")
		}
		if opts.Filter == "" || strings.Contains(current.doc.HTTP.URL, opts.Filter) {
			current.doc.Meta.Seq = len(docs) + 1
			docs = append(docs, current.doc)
		}
		current = nil
	}

	for _, line := range token.SplitLines(text) {
		if strings.HasPrefix(line, "###") {
			flush()
			name = strings.TrimSpace(strings.TrimPrefix(line, "###"))
			inBody = false
			bodyLines, docLines = nil, nil
			continue
		}

		if !inBody && strings.HasPrefix(line, "#") {
			trimmed := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			if strings.HasPrefix(trimmed, "@") {
				continue
			}
			docLines = append(docLines, trimmed)
			continue
		}

		// Method and URL (e.g., GET http://example.com)
		if current == nil {
			parts := strings.Fields(line)
			if len(parts) >= 2 && httpMethods[strings.ToUpper(parts[0])] {
				current = newRequest(name, parts[0], parts[1], 0)
			}
			continue
		}

		// Empty line after headers starts body
		if !inBody && strings.TrimSpace(line) == "" {
			inBody = true
			continue
		}

		if !inBody {
			key, value, ok := strings.Cut(line, ":")
			key = strings.TrimSpace(key)
			if ok && key != "" && !strings.HasPrefix(line, " ") && !strings.ContainsAny(key, " \t{[\"'") {
				current.header(key, strings.TrimSpace(value), opts)
				continue
			}
			inBody = true
		}
		bodyLines = append(bodyLines, line)
	}
	flush()

	if len(docs) == 0 {
		return nil, fmt.Errorf("no requests found")
	}
	return docs, nil
}
