package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/muurk/selectbox/internal/selectbox"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "selectbox") {
		t.Errorf("GetConfigDir() = %v, should contain 'selectbox'", configDir)
	}

	if runtime.GOOS == "linux" {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		configDir, err = GetConfigDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(xdg, "selectbox"); configDir != want {
			t.Errorf("GetConfigDir() = %v, want %v", configDir, want)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Widgets == nil {
		t.Error("NewRegistry().Widgets should not be nil")
	}
	if reg.Preferences == nil || reg.Preferences.DefaultDelay != 500 {
		t.Errorf("NewRegistry().Preferences = %+v", reg.Preferences)
	}
}

func TestRegistryEnsureWidget(t *testing.T) {
	reg := NewRegistry()

	w1 := reg.EnsureWidget("country")
	if w1 == nil {
		t.Fatal("EnsureWidget() returned nil")
	}
	if w2 := reg.EnsureWidget("country"); w1 != w2 {
		t.Error("EnsureWidget() should return same instance for same name")
	}
	if w3 := reg.EnsureWidget("city"); w1 == w3 {
		t.Error("EnsureWidget() should create new instance for different name")
	}
}

func TestRegistryRecordSelection(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	value := "fr"
	reg.RecordSelection("country", &value, "France")
	value = "changed"

	widget := reg.GetWidget("country")
	if widget == nil {
		t.Fatal("Widget should exist after RecordSelection()")
	}
	if widget.LastValue == nil || *widget.LastValue != "fr" || widget.LastText != "France" {
		t.Errorf("widget = %+v, want fr/France", widget)
	}
	if widget.LastUsed.Before(before) || widget.Uses != 1 {
		t.Errorf("LastUsed = %v, Uses = %d", widget.LastUsed, widget.Uses)
	}

	reg.RecordSelection("country", nil, "")
	if reg.LastValue("country") != nil || widget.Uses != 2 {
		t.Errorf("clearing should forget the value: %+v", widget)
	}
	if reg.LastValue("unknown") != nil {
		t.Error("LastValue() of an unknown widget should be nil")
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	reg := NewRegistry()
	value := "44"
	reg.RecordSelection("country", &value, "United Kingdom")
	reg.Preferences.SearchMode = "fuzzy"

	if err := reg.saveTo(path); err != nil {
		t.Fatalf("saveTo() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	loaded, err := loadRegistryFile(path)
	if err != nil {
		t.Fatalf("loadRegistryFile() error = %v", err)
	}
	if got := loaded.LastValue("country"); got == nil || *got != "44" {
		t.Errorf("loaded value = %v, want 44", got)
	}
	if loaded.Preferences.SearchMode != "fuzzy" {
		t.Errorf("loaded preferences = %+v", loaded.Preferences)
	}
}

func TestLoadRegistryFile(t *testing.T) {
	dir := t.TempDir()

	reg, err := loadRegistryFile(filepath.Join(dir, "missing.yaml"))
	if err != nil || reg.Version != 1 {
		t.Errorf("missing file: reg = %+v, err = %v", reg, err)
	}

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"wrong version", "version: 2\n", true},
		{"invalid yaml", "version: [\n", true},
		{"minimal", "version: 1\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0600); err != nil {
				t.Fatal(err)
			}
			reg, err := loadRegistryFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadRegistryFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (reg.Widgets == nil || reg.Preferences == nil) {
				t.Error("maps and preferences should be initialized")
			}
		})
	}
}

func TestRestoreInto(t *testing.T) {
	reg := NewRegistry()
	value := "fr"
	reg.RecordSelection("country", &value, "France")

	tests := []struct {
		name string
		cfg  *selectbox.Config
		want bool
	}{
		{"uncontrolled without default", &selectbox.Config{Name: "country"}, true},
		{"has default", &selectbox.Config{Name: "country", DefaultValue: "de"}, false},
		{"controlled", &selectbox.Config{Name: "country", Value: selectbox.ControlledValue(nil)}, false},
		{"unknown widget", &selectbox.Config{Name: "city"}, false},
		{"unnamed", &selectbox.Config{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.RestoreInto(tt.cfg); got != tt.want {
				t.Errorf("RestoreInto() = %v, want %v", got, tt.want)
			}
			if tt.want && tt.cfg.DefaultValue != "fr" {
				t.Errorf("DefaultValue = %v, want fr", tt.cfg.DefaultValue)
			}
		})
	}

	reg.Preferences.RestoreLast = false
	if reg.RestoreInto(&selectbox.Config{Name: "country"}) {
		t.Error("RestoreInto() should honour RestoreLast")
	}
}

func BenchmarkEnsureWidget(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureWidget("country")
	}
}
