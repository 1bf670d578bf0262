package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/muurk/selectbox/internal/selectbox"
)

// LoadWidget reads a widget definition from a YAML file.
func LoadWidget(path string) (*selectbox.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read widget file: %w", err)
	}
	cfg, err := ParseWidget(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseWidget decodes a widget definition. An explicit `value: null`
// becomes a controlled empty value; an absent key leaves the widget
// uncontrolled.
func ParseWidget(data []byte) (*selectbox.Config, error) {
	var cfg selectbox.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse widget definition: %w", err)
	}
	return &cfg, nil
}

// Apply fills the settings a widget leaves unset from the preferences.
func (p *Preferences) Apply(cfg *selectbox.Config) {
	if p == nil {
		return
	}
	if cfg.Request != nil && cfg.Request.Delay == 0 && p.DefaultDelay > 0 {
		cfg.Request.Delay = p.DefaultDelay
	}
	if cfg.Search.Mode == "" && p.SearchMode != "" {
		cfg.Search.Mode = selectbox.SearchMode(p.SearchMode)
	}
}

// RestoreInto preselects the remembered value of cfg's widget when the
// widget has neither a value nor a default of its own.
func (r *Registry) RestoreInto(cfg *selectbox.Config) bool {
	if r.Preferences != nil && !r.Preferences.RestoreLast {
		return false
	}
	if cfg.Name == "" || cfg.Value.Defined || cfg.DefaultValue != nil {
		return false
	}
	last := r.LastValue(cfg.Name)
	if last == nil {
		return false
	}
	cfg.DefaultValue = *last
	return true
}
