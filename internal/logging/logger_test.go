package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected nop logger when no level is configured")
	}
}

func TestInitializeFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	defer SetLogger(zap.NewNop())()

	core := GetLogger().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestDomainHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer SetLogger(zap.New(core))()

	value := "fr"
	LogSelection("country", &value)
	LogSelection("country", nil)
	LogUsageWarning("country", "uncontrolled-value", "value without callback")
	LogFetchResult("country", 3, 0, errors.New("boom"))
	LogFetchResult("country", 4, 12, nil)

	if got := logs.FilterMessage("Selection changed").Len(); got != 2 {
		t.Errorf("selection entries = %d, want 2", got)
	}
	entries := logs.FilterField(zap.String("value", "<none>")).All()
	if len(entries) != 1 {
		t.Errorf("cleared selection entries = %d, want 1", len(entries))
	}
	if got := logs.FilterLevelExact(zapcore.WarnLevel).Len(); got != 2 {
		t.Errorf("warn entries = %d, want 2", got)
	}
	if got := logs.FilterField(zap.Int("options", 12)).Len(); got != 1 {
		t.Errorf("completed fetch entries = %d, want 1", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate long = %q", got)
	}
}
