package serialize

import (
	"strings"
	"testing"

	"github.com/studiowebux/brulang/internal/types"
)

func entry(name, value string) types.Entry { return types.NewEntry(name, value, true) }

func TestRequest(t *testing.T) {
	doc := &types.RequestDocument{
		Meta: types.RequestMeta{Name: "Create", Type: types.HTTPRequestType, Seq: 2},
		HTTP: types.HTTP{Method: "POST", URL: "https://x/users/:id"},
		Params: []types.Param{
			{Entry: entry("id", "1"), Type: "path"},
			{Entry: entry("q", "a"), Type: "query"},
		},
		Headers: []types.Entry{
			entry("content-type", "application/json"),
			types.NewEntry("x-debug", "1", false),
			entry("accept", "*/*"),
		},
		Auth: types.Auth{Mode: "bearer", Modes: []types.AuthBlock{
			{Mode: "bearer", Fields: []types.Entry{entry("token", "{{t}}")}},
		}},
		Body: types.Body{Mode: "json", Payloads: []types.BodyPayload{
			{Mode: "json", Text: "{\n  \"a\": \"}\"\n}"},
		}},
		Docs: "hi",
	}
	want := `meta {
  name: Create
  type: http
  seq: 2
}

post {
  url: https://x/users/:id
  body: json
  auth: bearer
}

params:query {
  q: a
}

params:path {
  id: 1
}

headers {
  content-type: application/json
  ~x-debug: 1
  accept: */*
}

auth:bearer {
  token: {{t}}
}

body:json {
  {
    "a": "}"
  }
}

docs {
  hi
}
`
	if got := Request(doc); got != want {
		t.Errorf("Request() =\n%s\nwant\n%s", got, want)
	}
}

func TestRequest_Minimal(t *testing.T) {
	got := Serialize(&types.RequestDocument{Meta: types.RequestMeta{Name: "r", Type: types.GraphQLRequestType}})
	want := "meta {\n  name: r\n  type: graphql\n  seq: 0\n}\n\nget {\n  url:\n  body: none\n  auth: none\n}\n"
	if got != want {
		t.Errorf("Serialize() =\n%q\nwant\n%q", got, want)
	}
}

func TestRequest_UnsupportedMethodKeepsURL(t *testing.T) {
	for _, method := range []string{"PROPFIND", "meta", "headers"} {
		doc := &types.RequestDocument{
			Meta: types.RequestMeta{Name: "r", Type: types.HTTPRequestType, Seq: 1},
			HTTP: types.HTTP{Method: method, URL: "http://x"},
			Body: types.Body{Mode: "json"},
		}
		got := Serialize(doc)
		want := "meta {\n  name: r\n  type: http\n  seq: 1\n}\n\nget {\n  url: http://x\n  body: json\n  auth: none\n}\n"
		if got != want {
			t.Errorf("%s: Serialize() =\n%q\nwant\n%q", method, got, want)
		}
	}
}

func TestEnvironment_NeverWritesSecrets(t *testing.T) {
	secret := types.SecretEntry("token", true)
	value := "hunter2"
	secret.Value = &value
	doc := &types.EnvironmentDocument{Variables: []types.Entry{
		entry("host", "https://x"),
		secret,
		types.NewEntry("debug", "true", false),
		types.SecretEntry("apiKey", false),
	}}
	want := "vars {\n  host: https://x\n  ~debug: true\n}\n\nvars:secret [\n  token,\n  ~apiKey\n]\n"
	got := Environment(doc)
	if got != want {
		t.Errorf("Environment() =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(got, value) {
		t.Error("secret value leaked into output")
	}
}

func TestSecretEntriesScrubbedEverywhere(t *testing.T) {
	h := types.NewEntry("authorization", "Bearer hunter2", true)
	h.Secret = true
	got := Serialize(&types.CollectionDocument{Headers: []types.Entry{h}})
	if strings.Contains(got, "hunter2") {
		t.Errorf("secret value leaked into output:\n%s", got)
	}
	if !strings.Contains(got, "  authorization:\n") {
		t.Errorf("expected the header name without a value:\n%s", got)
	}
}

func TestFolder(t *testing.T) {
	seq := 3
	tests := []struct {
		name string
		doc  *types.FolderDocument
		want string
	}{
		{
			name: "without seq",
			doc:  &types.FolderDocument{Meta: types.FolderMeta{Name: "users"}},
			want: "meta {\n  name: users\n}\n",
		},
		{
			name: "with seq and docs",
			doc:  &types.FolderDocument{Meta: types.FolderMeta{Name: "users", Seq: &seq}, Docs: "All user endpoints."},
			want: "meta {\n  name: users\n  seq: 3\n}\n\ndocs {\n  All user endpoints.\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Folder(tt.doc); got != tt.want {
				t.Errorf("Folder() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestCollection(t *testing.T) {
	doc := &types.CollectionDocument{
		Auth: types.Auth{Mode: "basic", Modes: []types.AuthBlock{
			{Mode: "basic", Fields: []types.Entry{entry("username", "u")}},
		}},
		Vars: types.Vars{Pre: []types.Entry{entry("base", "https://x")}},
	}
	want := "auth {\n  mode: basic\n}\n\nauth:basic {\n  username: u\n}\n\nvars:pre-request {\n  base: https://x\n}\n"
	if got := Collection(doc); got != want {
		t.Errorf("Collection() =\n%q\nwant\n%q", got, want)
	}
}

func TestSerialize_Nil(t *testing.T) {
	var doc *types.RequestDocument
	if got := Serialize(doc); got != "" {
		t.Errorf("Serialize(nil) = %q, want empty", got)
	}
	if got := Serialize(nil); got != "" {
		t.Errorf("Serialize(nil) = %q, want empty", got)
	}
}
