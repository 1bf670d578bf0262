package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/muurk/selectbox/internal/selectbox"
)

// Source is an in-memory option list answering searches.
type Source struct {
	options []selectbox.Option
}

// sourceFile is the data file layout. A bare list is accepted too.
type sourceFile struct {
	Options []selectbox.RawOption `yaml:"options"`
}

// LoadSource reads a YAML option list from path.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read option data: %w", err)
	}
	return ParseSource(data)
}

// ParseSource builds a Source from YAML, either `options: [...]` or a bare
// list of {id, text} maps.
func ParseSource(data []byte) (*Source, error) {
	var file sourceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		var list []selectbox.RawOption
		if listErr := yaml.Unmarshal(data, &list); listErr != nil {
			return nil, fmt.Errorf("failed to parse option data: %w", err)
		}
		file.Options = list
	}
	return NewSource(file.Options)
}

// NewSource normalizes raw into a Source.
func NewSource(raw []selectbox.RawOption) (*Source, error) {
	options, err := selectbox.Normalize(nil, raw, nil)
	if err != nil {
		return nil, err
	}
	return &Source{options: options}, nil
}

// Len returns the number of options.
func (s *Source) Len() int { return len(s.options) }

// Search returns the options matching term as {id, text} items, at most
// limit of them when limit is positive.
func (s *Source) Search(term string, mode selectbox.SearchMode, limit int) []map[string]any {
	matches := selectbox.Filter(s.options, term, mode)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	items := make([]map[string]any, len(matches))
	for i, o := range matches {
		items[i] = map[string]any{"id": o.ID, "text": selectbox.TextContent(o.Text)}
	}
	return items
}
