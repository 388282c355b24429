package filter

import (
	"context"
	"testing"
)

type doc struct {
	Name    string   `json:"name"`
	Headers []header `json:"headers"`
}

type header struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

func sample() doc {
	return doc{
		Name: "Get users",
		Headers: []header{
			{Name: "accept", Enabled: true},
			{Name: "x-debug", Enabled: false},
		},
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		doc     any
		filter  string
		query   string
		want    string
		wantErr bool
	}{
		{
			name:  "query",
			doc:   sample(),
			query: "headers[].name",
			want:  "[\n  \"accept\",\n  \"x-debug\"\n]",
		},
		{
			name:   "filter then query",
			doc:    sample(),
			filter: "headers[?enabled]",
			query:  "[].name",
			want:   "[\n  \"accept\"\n]",
		},
		{
			name:  "json string input",
			doc:   `{"a": {"b": 1}}`,
			query: "a.b",
			want:  "1",
		},
		{
			name:  "no match",
			doc:   sample(),
			query: "missing",
			want:  "null",
		},
		{
			name:    "invalid expression",
			doc:     sample(),
			query:   "headers[",
			wantErr: true,
		},
		{
			name:    "invalid json",
			doc:     []byte("{"),
			query:   "a",
			wantErr: true,
		},
		{
			name:  "shell command",
			doc:   sample(),
			query: "$(cat)",
			want:  "{\n  \"headers\": [\n    {\n      \"enabled\": true,\n      \"name\": \"accept\"\n    },\n    {\n      \"enabled\": false,\n      \"name\": \"x-debug\"\n    }\n  ],\n  \"name\": \"Get users\"\n}",
		},
		{
			name:    "failing shell command",
			doc:     sample(),
			query:   "$(exit 3)",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(context.Background(), tt.doc, tt.filter, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Apply() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestIsValidJMESPath(t *testing.T) {
	if !IsValidJMESPath("headers[?enabled].name") {
		t.Error("expected a valid expression")
	}
	if IsValidJMESPath("headers[") {
		t.Error("expected an invalid expression")
	}
}

func TestIsShellCommand(t *testing.T) {
	tests := map[string]bool{
		"$(jq .)":    true,
		"$(cat)":     true,
		"headers":    false,
		"$(unclosed": false,
		"x $(cat)":   false,
	}
	for q, want := range tests {
		if got := IsShellCommand(q); got != want {
			t.Errorf("IsShellCommand(%q) = %v, want %v", q, got, want)
		}
	}
}
