package selectbox

import "fmt"

// ValidateConfig checks cfg before a widget is built. Errors are fatal;
// warnings describe configurations that work but are likely mistakes.
func ValidateConfig(cfg *Config) ([]UsageWarning, error) {
	if cfg == nil {
		return nil, NewConfigurationError("", "config is required")
	}

	if r := cfg.Request; r != nil {
		if r.Endpoint == "" {
			return nil, NewConfigurationError("request.endpoint", "endpoint is required when request is set")
		}
		if r.Delay < 0 {
			return nil, NewConfigurationError("request.delay", fmt.Sprintf("must not be negative, got %d", r.Delay))
		}
	}
	if cfg.Search.MinLength < 0 {
		return nil, NewConfigurationError("search.minLength", fmt.Sprintf("must not be negative, got %d", cfg.Search.MinLength))
	}
	if cfg.Search.MinimumResults < 0 {
		return nil, NewConfigurationError("search.minimumResults", fmt.Sprintf("must not be negative, got %d", cfg.Search.MinimumResults))
	}
	switch cfg.Search.Mode {
	case "", SearchPattern, SearchFuzzy:
	default:
		return nil, NewConfigurationError("search.mode", fmt.Sprintf("unknown mode %q", cfg.Search.Mode))
	}

	var warnings []UsageWarning
	if cfg.Value.Defined && cfg.OnSelect == nil {
		warnings = append(warnings, UsageWarning{
			Code: WarnUncontrolledValue,
			Message: "value is set from outside without an OnSelect callback; " +
				"the selection can drift with no way to react, use DefaultValue instead",
		})
	}
	if cfg.RequestSearch() && cfg.Request.TermQuery == "" {
		warnings = append(warnings, UsageWarning{
			Code:    WarnMissingTermQuery,
			Message: "request.termQuery is not set; search input will fail once it reaches search.minLength",
		})
	}
	if len(cfg.Options) > 0 && (len(cfg.Children) > 0 || cfg.Markup != "") {
		warnings = append(warnings, UsageWarning{
			Code:    WarnOptionsAndMarkup,
			Message: "both options and children are set; children are ignored",
		})
	}
	return warnings, nil
}
