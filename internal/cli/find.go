package cli

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/brulang/internal/collection"
	"github.com/studiowebux/brulang/internal/types"
)

// requestSource exposes request names to fuzzy matching as "folder/name"
type requestSource []collection.File

func (s requestSource) String(i int) string {
	name := s[i].Doc.(*types.RequestDocument).Meta.Name
	if d := collection.Dir(s[i].Rel); d != "" {
		return d + "/" + name
	}
	return name
}

func (s requestSource) Len() int { return len(s) }

// Find prints the requests of the collection at root whose folder and name
// fuzzily match pattern, best match first.
func Find(ctx context.Context, out *Output, root, pattern string, workers int) (int, error) {
	col, err := collection.Load(ctx, root, workers)
	if err != nil {
		return 0, err
	}
	src := requestSource(col.Requests())
	matches := fuzzy.FindFrom(pattern, src)
	for _, m := range matches {
		out.Printf("%s  %s\n", out.emphasize(m.Str, m.MatchedIndexes), src[m.Index].Rel)
	}
	return len(matches), nil
}

// emphasize bolds the matched byte positions of s
func (o *Output) emphasize(s string, idx []int) string {
	if !o.Color || len(idx) == 0 {
		return s
	}
	hit := make(map[int]bool, len(idx))
	for _, i := range idx {
		hit[i] = true
	}
	var sb strings.Builder
	for i, r := range s {
		if hit[i] {
			sb.WriteString(o.bold.Sprint(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
