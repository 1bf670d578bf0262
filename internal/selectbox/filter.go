package selectbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/sahilm/fuzzy"
)

// SearchMode selects how a search term is matched against option text.
type SearchMode string

const (
	// SearchPattern treats the term as a case-insensitive regular expression,
	// falling back to a literal match when it does not compile.
	SearchPattern SearchMode = "pattern"
	// SearchFuzzy matches the term's characters in order, allowing gaps.
	SearchFuzzy SearchMode = "fuzzy"
)

const matchTimeout = 50 * time.Millisecond

// Filter returns the options whose text matches term, in their original
// order. An empty term returns options itself.
func Filter(options []Option, term string, mode SearchMode) []Option {
	if term == "" {
		return options
	}
	if mode == SearchFuzzy {
		return fuzzyFilter(options, term)
	}

	re, err := regexp2.Compile(term, regexp2.IgnoreCase|regexp2.ECMAScript)
	if err != nil {
		re = regexp2.MustCompile(regexp2.Escape(term), regexp2.IgnoreCase)
	}
	re.MatchTimeout = matchTimeout

	out := make([]Option, 0, len(options))
	for _, o := range options {
		if ok, err := re.MatchString(TextContent(o.Text)); err == nil && ok {
			out = append(out, o)
		}
	}
	return out
}

func fuzzyFilter(options []Option, term string) []Option {
	texts := make([]string, len(options))
	for i, o := range options {
		texts[i] = TextContent(o.Text)
	}
	matched := make(map[int]bool)
	for _, m := range fuzzy.Find(term, texts) {
		matched[m.Index] = true
	}
	out := make([]Option, 0, len(matched))
	for i, o := range options {
		if matched[i] {
			out = append(out, o)
		}
	}
	return out
}

// TextContent extracts the plain text of display content, descending into
// the first child of structured content until it reaches a leaf.
func TextContent(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *Node:
		if t == nil || len(t.Children) == 0 {
			return ""
		}
		return TextContent(t.Children[0])
	case Node:
		return TextContent(&t)
	case []any:
		if len(t) == 0 {
			return ""
		}
		return TextContent(t[0])
	case map[string]any:
		// structured text decoded from JSON or YAML
		if c, ok := t["children"]; ok {
			return TextContent(c)
		}
		if s, ok := t["text"]; ok {
			return TextContent(s)
		}
		return ""
	case fmt.Stringer:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
