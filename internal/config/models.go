package config

import "time"

// Registry represents the entire user configuration file.
// It remembers the last selection of every widget and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Widgets     map[string]*Widget `yaml:"widgets,omitempty"` // Keyed by widget name
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Widget represents what is remembered about one named widget.
type Widget struct {
	LastValue  *string   `yaml:"last_value,omitempty"`  // Id of the last selected option, nil when cleared
	LastText   string    `yaml:"last_text,omitempty"`   // Text of the last selected option
	LastUsed   time.Time `yaml:"last_used,omitempty"`   // Time of the last selection
	Uses       int       `yaml:"uses,omitempty"`        // Number of selections made
	ConfigPath string    `yaml:"config_path,omitempty"` // Widget definition file last used
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultDelay int    `yaml:"default_delay"`         // Debounce delay in milliseconds for remote search
	SearchMode   string `yaml:"search_mode,omitempty"` // "pattern" or "fuzzy"
	RestoreLast  bool   `yaml:"restore_last"`          // Preselect the last value when a widget has none
	Mouse        bool   `yaml:"mouse"`                 // Enable mouse support in the terminal widget
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Widgets:     make(map[string]*Widget),
		Preferences: defaultPreferences(),
	}
}

func defaultPreferences() *Preferences {
	return &Preferences{
		DefaultDelay: 500,
		SearchMode:   "pattern",
		RestoreLast:  true,
		Mouse:        true,
	}
}

// GetWidget retrieves widget metadata by name.
// Returns nil if the widget doesn't exist in the registry.
func (r *Registry) GetWidget(name string) *Widget {
	return r.Widgets[name]
}

// EnsureWidget ensures a widget entry exists in the registry.
// Returns the widget entry (existing or newly created).
func (r *Registry) EnsureWidget(name string) *Widget {
	if r.Widgets == nil {
		r.Widgets = make(map[string]*Widget)
	}

	if widget, exists := r.Widgets[name]; exists {
		return widget
	}

	widget := &Widget{}
	r.Widgets[name] = widget
	return widget
}

// RecordSelection remembers a committed selection. A nil value records a
// cleared selection.
func (r *Registry) RecordSelection(name string, value *string, text string) {
	widget := r.EnsureWidget(name)
	widget.LastUsed = time.Now()
	widget.Uses++
	if value == nil {
		widget.LastValue = nil
		widget.LastText = ""
		return
	}
	v := *value
	widget.LastValue = &v
	widget.LastText = text
}

// LastValue returns the remembered value for a widget, or nil.
func (r *Registry) LastValue(name string) *string {
	if widget := r.GetWidget(name); widget != nil {
		return widget.LastValue
	}
	return nil
}
