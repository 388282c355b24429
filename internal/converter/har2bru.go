package converter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studiowebux/brulang/internal/types"
)

// HARFile represents the HAR file structure
type HARFile struct {
	Log HARLog `json:"log"`
}

// HARLog represents the log section of HAR
type HARLog struct {
	Version string     `json:"version"`
	Creator HARCreator `json:"creator"`
	Entries []HAREntry `json:"entries"`
}

// HARCreator represents the tool that created the HAR
type HARCreator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HAREntry represents a single HTTP exchange. Responses are ignored.
type HAREntry struct {
	Request HARRequest `json:"request"`
}

// HARRequest represents the request part of an entry
type HARRequest struct {
	Method      string       `json:"method"`
	URL         string       `json:"url"`
	HTTPVersion string       `json:"httpVersion"`
	Headers     []HARPair    `json:"headers"`
	QueryString []HARPair    `json:"queryString"`
	PostData    *HARPostData `json:"postData,omitempty"`
}

// HARPair is a name/value pair used by headers, query strings and form params
type HARPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HARPostData represents POST data
type HARPostData struct {
	MimeType string    `json:"mimeType"`
	Text     string    `json:"text"`
	Params   []HARPair `json:"params,omitempty"`
}

// ParseHAR converts the entries of a HAR archive into request documents.
// Non-HTTP(S) entries and those excluded by opts.Filter are skipped.
func ParseHAR(data []byte, opts Options) ([]*types.RequestDocument, error) {
	var har HARFile
	if err := json.Unmarshal(data, &har); err != nil {
		return nil, fmt.Errorf("failed to parse HAR file: %w", err)
	}
	if len(har.Log.Entries) == 0 {
		return nil, fmt.Errorf("no entries found in HAR file")
	}

	var docs []*types.RequestDocument
	for i, entry := range har.Log.Entries {
		req := entry.Request
		if opts.Filter != "" && !strings.Contains(req.URL, opts.Filter) {
			continue
		}
		if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
			slog.Debug("skipping non-http entry", "index", i, "url", req.URL)
			continue
		}
		docs = append(docs, harRequest(req, len(docs)+1, opts))
	}
	slog.Info("converted HAR entries", "converted", len(docs), "total", len(har.Log.Entries))
	return docs, nil
}

func harRequest(req HARRequest, seq int, opts Options) *types.RequestDocument {
	b := newRequest("", req.Method, req.URL, seq)
	// queryString is authoritative when the URL carried none
	if len(b.doc.Params) == 0 {
		for _, q := range req.QueryString {
			b.doc.Params = append(b.doc.Params, types.Param{Entry: types.NewEntry(q.Name, q.Value, true), Type: "query"})
		}
	}
	for _, h := range req.Headers {
		b.header(h.Name, h.Value, opts)
	}
	if pd := req.PostData; pd != nil {
		if len(pd.Params) > 0 {
			fields := make([]types.Entry, len(pd.Params))
			for i, p := range pd.Params {
				fields[i] = types.NewEntry(p.Name, p.Value, true)
			}
			b.form(fields)
		} else {
			b.body(pd.MimeType, pd.Text)
		}
	}
	return b.doc
}
