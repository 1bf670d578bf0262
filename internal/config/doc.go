// Package config provides widget definitions and user configuration
// management.
//
// Widget definitions are YAML files decoded into selectbox.Config by
// LoadWidget:
//
//	name: country
//	placeholder: Pick a country
//	allowClear: true
//	request:
//	  endpoint: http://localhost:8089/options
//	  termQuery: q
//	  delay: 300
//	  params:
//	    limit: "20"
//
// The registry is a YAML file remembering the last selection of each named
// widget, plus application preferences. It follows OS-specific conventions
// for its location:
//   - Linux: $XDG_CONFIG_HOME/selectbox/config.yaml or $HOME/.config/selectbox/config.yaml
//   - macOS: $HOME/.config/selectbox/config.yaml
//   - Windows: %LOCALAPPDATA%\selectbox\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registry.RecordSelection("country", &value, "France")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
