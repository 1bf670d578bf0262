package selectbox

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muurk/selectbox/internal/fetch"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDelay          = 500 * time.Millisecond
	DefaultMinimumResults = 20
	DefaultMinLength      = 3
)

// Config is the widget definition. It is read-only for the core's lifetime;
// value, options, error and disabled change through PropsChanged.
type Config struct {
	Name         string            `yaml:"name"`
	Placeholder  string            `yaml:"placeholder"`
	AllowClear   bool              `yaml:"allowClear"`
	AutoFocus    bool              `yaml:"autoFocus"`
	Disabled     bool              `yaml:"disabled"`
	Error        any               `yaml:"error"`
	Value        Controlled        `yaml:"-"`
	DefaultValue any               `yaml:"defaultValue"`
	Options      []RawOption       `yaml:"options"`
	Children     []Element         `yaml:"children"`
	Markup       string            `yaml:"markup"`
	Request      *Request          `yaml:"request"`
	Search       Search            `yaml:"search"`
	Layout       Layout            `yaml:"layout"`
	Lang         map[string]string `yaml:"lang"`

	OnSelect           func(SelectionEvent) `yaml:"-"`
	OnSearchTermChange func(SearchInput)    `yaml:"-"`
}

// Request configures remote option loading.
type Request struct {
	Endpoint  string        `yaml:"endpoint"`
	Delay     int           `yaml:"delay"` // milliseconds
	Once      bool          `yaml:"once"`
	Params    *fetch.Params `yaml:"params"`
	TermQuery string        `yaml:"termQuery"`

	Client                fetch.Client    `yaml:"-"`
	ResponseDataFormatter fetch.Formatter `yaml:"-"`
}

// Search configures local filtering and search-triggered requests.
type Search struct {
	MinimumResults int        `yaml:"minimumResults"`
	MinLength      int        `yaml:"minLength"`
	Mode           SearchMode `yaml:"mode"`
}

// Layout is passed through to the presentation layer untouched.
type Layout struct {
	Width                      string `yaml:"width" json:"width"`
	DropdownVerticalPosition   string `yaml:"dropdownVerticalPosition" json:"dropdownVerticalPosition"`
	DropdownHorizontalPosition string `yaml:"dropdownHorizontalPosition" json:"dropdownHorizontalPosition"`
}

// Controlled is an externally owned value. Defined distinguishes "no opinion"
// from an explicit null (ID == nil), which clears the selection.
type Controlled struct {
	Defined bool
	ID      *string
}

// ControlledValue coerces v to a controlled id. A nil v is an explicit null.
func ControlledValue(v any) Controlled {
	if v == nil {
		return Controlled{Defined: true}
	}
	s := cast.ToString(v)
	return Controlled{Defined: true, ID: &s}
}

// UnmarshalYAML decodes the config and keeps an explicit `value: null`
// apart from an absent value key.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "value" {
			continue
		}
		v := node.Content[i+1]
		switch {
		case v.Kind == yaml.ScalarNode && v.ShortTag() == "!!null":
			c.Value = Controlled{Defined: true}
		case v.Kind == yaml.ScalarNode:
			id := v.Value
			c.Value = Controlled{Defined: true, ID: &id}
		default:
			return fmt.Errorf("line %d: value must be a scalar", v.Line)
		}
	}
	return nil
}

// ApplyDefaults fills in unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "selectbox_" + uuid.NewString()[:8]
	}
	if c.Search.Mode == "" {
		c.Search.Mode = SearchPattern
	}
	if c.Layout.Width == "" {
		c.Layout.Width = "245px"
	}
	if c.Layout.DropdownVerticalPosition == "" {
		c.Layout.DropdownVerticalPosition = "below"
	}
	if c.Layout.DropdownHorizontalPosition == "" {
		c.Layout.DropdownHorizontalPosition = "left"
	}
}

// RequestSearch reports whether search input triggers remote requests.
func (c *Config) RequestSearch() bool {
	return c.Request != nil && !c.Request.Once
}

// DebounceDelay returns the configured delay, or DefaultDelay when unset.
func (r *Request) DebounceDelay() time.Duration {
	if r == nil || r.Delay <= 0 {
		return DefaultDelay
	}
	return time.Duration(r.Delay) * time.Millisecond
}

func (s Search) minLength() int {
	if s.MinLength <= 0 {
		return DefaultMinLength
	}
	return s.MinLength
}

func (s Search) minimumResults() int {
	if s.MinimumResults <= 0 {
		return DefaultMinimumResults
	}
	return s.MinimumResults
}

// initialValue resolves value, then defaultValue.
func (c *Config) initialValue() *string {
	if c.Value.Defined && c.Value.ID != nil {
		v := *c.Value.ID
		return &v
	}
	if c.DefaultValue != nil {
		if s, err := cast.ToStringE(c.DefaultValue); err == nil {
			return &s
		}
	}
	return nil
}

// errorFromValue maps an error prop onto state: false, nil and "" mean no
// error, true is a marker without a message.
func errorFromValue(v any) *ErrorState {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		if !t {
			return nil
		}
		return &ErrorState{}
	case string:
		if t == "" {
			return nil
		}
		return &ErrorState{Message: t}
	case error:
		return &ErrorState{Message: t.Error()}
	default:
		return &ErrorState{Message: fmt.Sprint(t)}
	}
}
