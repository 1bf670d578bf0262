package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/muurk/selectbox/internal/selectbox"
)

func parseWidget(t *testing.T, args ...string) (*selectbox.Config, error) {
	t.Helper()
	var f widgetFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return f.build(cmd)
}

func TestWidgetFlagsInlineOptions(t *testing.T) {
	cfg, err := parseWidget(t, "-o", "fr=France", "-o", "Germany", "--value", "fr", "--name", "country")
	if err != nil {
		t.Fatal(err)
	}

	want := []selectbox.RawOption{
		{"id": "fr", "text": "France"},
		{"id": "Germany", "text": "Germany"},
	}
	if diff := cmp.Diff(want, cfg.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	if cfg.DefaultValue != "fr" || cfg.Name != "country" || cfg.Request != nil {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestWidgetFlagsRemote(t *testing.T) {
	cfg, err := parseWidget(t, "--endpoint", "http://localhost:8089/options", "--term-query", "q",
		"--param", "limit=5", "--delay", "100")
	if err != nil {
		t.Fatal(err)
	}
	r := cfg.Request
	if r == nil || r.Endpoint != "http://localhost:8089/options" || r.TermQuery != "q" || r.Delay != 100 {
		t.Fatalf("request = %+v", r)
	}
	if v, _ := r.Params.Get("limit"); v != "5" {
		t.Errorf("limit param = %q", v)
	}
}

func TestWidgetFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"nothing to choose", nil},
		{"request without endpoint", []string{"--term-query", "q"}},
		{"missing config file", []string{"--config", filepath.Join(os.TempDir(), "does-not-exist.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseWidget(t, tt.args...); err == nil {
				t.Error("build() should fail")
			}
		})
	}
}

func TestWidgetFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "country.yaml")
	data := "placeholder: Pick one\noptions:\n  - {id: fr, text: France}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parseWidget(t, "--config", path, "--placeholder", "Country")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "country" {
		t.Errorf("Name = %q, want file base name", cfg.Name)
	}
	if cfg.Placeholder != "Country" || len(cfg.Options) != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":8089":          ":8089",
		"127.0.0.1:9000": ":9000",
		"bad":            "",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, want %q", addr, got, want)
		}
	}
}
