package fetch

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingTermQuery is returned when a search term has no query key to travel under.
	ErrMissingTermQuery = errors.New("search term given but no term query key configured")
	// ErrEmptyEndpoint is returned when no endpoint is configured.
	ErrEmptyEndpoint = errors.New("endpoint is empty")
)

// Params are static query parameters. Keys keep the order they were
// configured in, so request URLs are stable.
type Params struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewParams builds Params from alternating keys and values.
func NewParams(kv ...string) *Params {
	p := &Params{m: orderedmap.New[string, string]()}
	for i := 0; i+1 < len(kv); i += 2 {
		p.m.Set(kv[i], kv[i+1])
	}
	return p
}

// Set adds or replaces a parameter. Replacing keeps the original position.
func (p *Params) Set(key, value string) *Params {
	if p.m == nil {
		p.m = orderedmap.New[string, string]()
	}
	p.m.Set(key, value)
	return p
}

// Get returns the value for key.
func (p *Params) Get(key string) (string, bool) {
	if p == nil || p.m == nil {
		return "", false
	}
	return p.m.Get(key)
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns the parameter names in order.
func (p *Params) Keys() []string {
	if p.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	c := NewParams()
	if p.Len() == 0 {
		return c
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		c.m.Set(pair.Key, pair.Value)
	}
	return c
}

// Encode renders the parameters as a query string in order. Spaces are
// encoded as %20.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(queryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(queryEscape(pair.Value))
	}
	return b.String()
}

func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// UnmarshalYAML reads a mapping of scalars, keeping document order.
func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: params must be a mapping", node.Line)
	}
	p.m = orderedmap.New[string, string]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: param %q must be a scalar", v.Line, k.Value)
		}
		if v.ShortTag() == "!!null" {
			p.m.Set(k.Value, "")
			continue
		}
		p.m.Set(k.Value, v.Value)
	}
	return nil
}

// MarshalYAML writes the parameters as an ordered mapping.
func (p *Params) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if p.Len() == 0 {
		return node, nil
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Value},
		)
	}
	return node, nil
}

// BuildURL composes the request target: endpoint, then the static params in
// order, then termQuery=term when term is non-empty. An empty query leaves
// the endpoint untouched.
func BuildURL(endpoint string, params *Params, termQuery, term string) (string, error) {
	if endpoint == "" {
		return "", ErrEmptyEndpoint
	}
	q := params.Clone()
	if term != "" {
		if termQuery == "" {
			return "", ErrMissingTermQuery
		}
		q.Set(termQuery, term)
	}

	query := q.Encode()
	if query == "" {
		return endpoint, nil
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + query, nil
}
