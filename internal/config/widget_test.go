package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/muurk/selectbox/internal/selectbox"
)

const countryWidget = `
name: country
placeholder: Pick a country
allowClear: true
request:
  endpoint: http://localhost:8089/options
  termQuery: q
  params:
    limit: "20"
search:
  minLength: 2
`

func TestLoadWidget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "country.yaml")
	if err := os.WriteFile(path, []byte(countryWidget), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWidget(path)
	if err != nil {
		t.Fatalf("LoadWidget() error = %v", err)
	}
	if cfg.Name != "country" || !cfg.AllowClear || cfg.Search.MinLength != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Request == nil || cfg.Request.TermQuery != "q" {
		t.Fatalf("request = %+v", cfg.Request)
	}
	if v, ok := cfg.Request.Params.Get("limit"); !ok || v != "20" {
		t.Errorf("params limit = %q, %v", v, ok)
	}
	if cfg.Value.Defined {
		t.Error("absent value should leave the widget uncontrolled")
	}

	if _, err := LoadWidget(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadWidget() of a missing file should fail")
	}
}

func TestParseWidgetExplicitNull(t *testing.T) {
	cfg, err := ParseWidget([]byte("name: x\nvalue: null\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Value.Defined || cfg.Value.ID != nil {
		t.Errorf("Value = %+v, want defined null", cfg.Value)
	}

	if _, err := ParseWidget([]byte("name: [")); err == nil {
		t.Error("ParseWidget() of invalid YAML should fail")
	}
}

func TestPreferencesApply(t *testing.T) {
	prefs := &Preferences{DefaultDelay: 250, SearchMode: "fuzzy"}

	cfg := &selectbox.Config{Request: &selectbox.Request{Endpoint: "http://x"}}
	prefs.Apply(cfg)
	if cfg.Request.Delay != 250 || cfg.Search.Mode != selectbox.SearchFuzzy {
		t.Errorf("cfg = %+v / %+v", cfg.Search, cfg.Request)
	}

	cfg = &selectbox.Config{
		Request: &selectbox.Request{Endpoint: "http://x", Delay: 10},
		Search:  selectbox.Search{Mode: selectbox.SearchPattern},
	}
	prefs.Apply(cfg)
	if cfg.Request.Delay != 10 || cfg.Search.Mode != selectbox.SearchPattern {
		t.Error("Apply() should not override widget settings")
	}

	var none *Preferences
	none.Apply(cfg)
}
