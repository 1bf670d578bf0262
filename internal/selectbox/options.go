package selectbox

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Option is one selectable entry. Text is opaque display content: a string,
// a *Node tree, or any value the presentation layer knows how to render.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Text any    `json:"text" yaml:"text"`
}

// Node is structured display content, typically produced from markup.
type Node struct {
	Tag      string            `json:"tag" yaml:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []any             `json:"children,omitempty" yaml:"children,omitempty"`
}

// RawOption is an option as supplied by configuration or a remote source,
// before its id is coerced.
type RawOption = map[string]any

// Element is one declarative child. Only elements of type "option" become
// options; Value defaults to the element's text content.
type Element struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
	Text  any    `json:"text" yaml:"text"`
}

// Normalize produces the option list from explicit raw options, or failing
// that from declarative children. With neither it returns prev unchanged.
func Normalize(prev []Option, raw []RawOption, children []Element) ([]Option, error) {
	if len(raw) > 0 {
		out := make([]Option, 0, len(raw))
		for i, entry := range raw {
			id, hasID := entry["id"]
			text, hasText := entry["text"]
			if !hasID || id == nil || !hasText || text == nil {
				return nil, NewMalformedOptionError(i, `option object must have "id" and "text"`)
			}
			sid, err := cast.ToStringE(id)
			if err != nil {
				e := NewMalformedOptionError(i, fmt.Sprintf("option id of type %T cannot be used as a string", id))
				e.Err = err
				return nil, e
			}
			out = append(out, Option{ID: sid, Text: text})
		}
		return out, nil
	}

	if len(children) > 0 {
		out := make([]Option, 0, len(children))
		for i, el := range children {
			if !strings.EqualFold(el.Type, "option") {
				continue
			}
			value := el.Value
			if value == nil {
				value = TextContent(el.Text)
			}
			sid, err := cast.ToStringE(value)
			if err != nil {
				e := NewMalformedOptionError(i, fmt.Sprintf("option value of type %T cannot be used as a string", value))
				e.Err = err
				return nil, e
			}
			out = append(out, Option{ID: sid, Text: el.Text})
		}
		return out, nil
	}

	return prev, nil
}

// ParseMarkup reads <option> elements out of an HTML fragment. Other
// elements are walked through but do not produce children.
func ParseMarkup(fragment string) ([]Element, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, nil
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse option markup: %w", err)
	}

	var out []Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			el := Element{Type: "option", Text: markupContent(n)}
			for _, a := range n.Attr {
				if a.Key == "value" {
					el.Value = a.Val
				}
			}
			out = append(out, el)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out, nil
}

// markupContent collapses an element's children into a string when they are
// plain text and into a Node tree otherwise.
func markupContent(n *html.Node) any {
	children := convertChildren(n)
	if len(children) == 1 {
		if s, ok := children[0].(string); ok {
			return s
		}
	}
	if len(children) == 0 {
		return ""
	}
	return &Node{Tag: "span", Children: children}
}

func convertChildren(n *html.Node) []any {
	var out []any
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if s := strings.TrimSpace(c.Data); s != "" {
				out = append(out, s)
			}
		case html.ElementNode:
			node := &Node{Tag: c.Data, Children: convertChildren(c)}
			if len(c.Attr) > 0 {
				node.Attrs = make(map[string]string, len(c.Attr))
				for _, a := range c.Attr {
					node.Attrs[a.Key] = a.Val
				}
			}
			out = append(out, node)
		}
	}
	return out
}

// OptionAt returns the option at index i of list.
func OptionAt(list []Option, i int) (Option, error) {
	if i < 0 || i >= len(list) {
		return Option{}, NewIndexError(i, fmt.Sprintf("invalid index %d for %d options", i, len(list)))
	}
	return list[i], nil
}

// OptionByID finds an option by exact id.
func OptionByID(list []Option, id string) (Option, bool) {
	for _, o := range list {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
