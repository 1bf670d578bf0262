package selectbox

import (
	"errors"
	"testing"

	"github.com/muurk/selectbox/internal/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logging.SetLogger(zap.New(core)))
	return logs
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *Config
		check func(error) bool
	}{
		{name: "missing endpoint", cfg: &Config{Request: &Request{}}, check: IsConfigurationError},
		{name: "malformed option", cfg: &Config{Options: []RawOption{{"text": "x"}}}, check: IsMalformedOptionError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			if c != nil || !tt.check(err) {
				t.Errorf("New() = %v, %v", c, err)
			}
		})
	}
}

func TestNewInitialState(t *testing.T) {
	cfg := &Config{
		Options:      []RawOption{{"id": 1, "text": "a"}, {"id": 2, "text": "b"}},
		DefaultValue: 2,
		Error:        "boom",
		Disabled:     true,
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s := c.State()
	if s.Value == nil || *s.Value != "2" {
		t.Errorf("Value = %v, want 2", s.Value)
	}
	if s.Error == nil || s.Error.Message != "boom" || !s.Disabled {
		t.Errorf("state = %+v", s)
	}
	if cfg.Name == "" {
		t.Error("defaults should be applied")
	}
}

func TestNewValueWinsOverDefault(t *testing.T) {
	c, err := New(&Config{
		Value:        ControlledValue(1),
		DefaultValue: 2,
		OnSelect:     func(SelectionEvent) {},
	})
	if err != nil {
		t.Fatal(err)
	}
	if v := c.Value(); v == nil || *v != "1" {
		t.Errorf("Value() = %v, want 1", v)
	}
}

func TestNewMarkupChildren(t *testing.T) {
	c, err := New(&Config{Markup: `<option value="x">Ex</option><option value="y">Why</option>`})
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(c.Options()); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("Options() = %v", got)
	}
}

func TestNewLogsUsageWarnings(t *testing.T) {
	logs := observeLogs(t)

	if _, err := New(&Config{Name: "w", Value: ControlledValue("a")}); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterLevelExact(zapcore.WarnLevel).FilterField(zap.String("code", WarnUncontrolledValue)).All()
	if len(entries) != 1 {
		t.Fatalf("warnings = %d, want 1", len(entries))
	}
	if entries[0].ContextMap()["widget"] != "w" {
		t.Errorf("widget field = %v", entries[0].ContextMap()["widget"])
	}
}

func TestDispatchRunsCallbacksAfterCommit(t *testing.T) {
	var c *Core
	var seenValue *string
	var searches []string
	cfg := &Config{
		Options: []RawOption{{"id": "a", "text": "A"}},
		OnSelect: func(ev SelectionEvent) {
			seenValue = c.Value()
		},
		OnSearchTermChange: func(in SearchInput) {
			searches = append(searches, in.Term)
		},
	}
	var err error
	c, err = New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	effects, err := c.Dispatch(OptionClick{ID: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if seenValue == nil || *seenValue != "a" {
		t.Errorf("OnSelect saw value %v, want committed a", seenValue)
	}
	if len(effects) != 1 {
		t.Errorf("effects = %v, want only focus", effectTypes(effects))
	} else if _, ok := effects[0].(FocusRoot); !ok {
		t.Errorf("effects[0] = %T, want FocusRoot", effects[0])
	}

	if _, err := c.Dispatch(SearchInput{Term: "x", Raw: "raw"}); err != nil {
		t.Fatal(err)
	}
	if len(searches) != 1 || searches[0] != "x" {
		t.Errorf("searches = %v", searches)
	}
}

func TestDispatchErrorLeavesStateUntouched(t *testing.T) {
	c, err := New(&Config{Options: []RawOption{{"id": "a", "text": "A"}}})
	if err != nil {
		t.Fatal(err)
	}
	before := c.State()
	if _, err := c.Dispatch(OptionClick{ID: "zzz"}); err == nil {
		t.Fatal("expected error")
	}
	if !c.Changed(before).None() {
		t.Error("state changed after failed dispatch")
	}
}

func TestDispatchLogsFetchLifecycle(t *testing.T) {
	logs := observeLogs(t)
	c, err := New(&Config{Name: "remote", Request: &Request{Endpoint: "http://x", Once: true}})
	if err != nil {
		t.Fatal(err)
	}

	effects, err := c.Dispatch(Mount{})
	if err != nil {
		t.Fatal(err)
	}
	var start StartFetch
	for _, e := range effects {
		if s, ok := e.(StartFetch); ok {
			start = s
		}
	}
	if start.Gen == 0 {
		t.Fatal("mount should return StartFetch to the caller")
	}

	_, _ = c.Dispatch(FetchFailed{Gen: start.Gen + 5, Err: errors.New("late")})
	_, _ = c.Dispatch(FetchFailed{Gen: start.Gen, Err: errors.New("down")})

	if logs.FilterMessage("Fetching options").Len() != 1 {
		t.Error("expected fetch log")
	}
	if logs.FilterMessage("Discarding stale fetch result").Len() != 1 {
		t.Error("expected stale result log")
	}
	if logs.FilterMessage("Option fetch failed").Len() != 1 {
		t.Error("expected failure log")
	}
	if e := c.State().Error; e == nil || e.Message != "down" {
		t.Errorf("Error = %v", e)
	}
}

func TestView(t *testing.T) {
	many := make([]RawOption, 0, 25)
	for i := 0; i < 25; i++ {
		many = append(many, RawOption{"id": i, "text": "item"})
	}

	tests := []struct {
		name          string
		cfg           *Config
		events        []Event
		wantSearch    bool
		wantClearable bool
		wantSelected  string
		wantVisible   int
	}{
		{
			name:        "short static list hides search",
			cfg:         &Config{Options: []RawOption{{"id": 1, "text": "a"}}},
			wantVisible: 1,
		},
		{
			name:        "long list shows search",
			cfg:         &Config{Options: many},
			wantSearch:  true,
			wantVisible: 25,
		},
		{
			name:        "remote search shows search",
			cfg:         &Config{Request: &Request{Endpoint: "http://x", TermQuery: "q"}},
			wantSearch:  true,
			wantVisible: 0,
		},
		{
			name:          "clearable selection",
			cfg:           &Config{AllowClear: true, Options: []RawOption{{"id": 1, "text": "a"}, {"id": 2, "text": "b"}}},
			events:        []Event{OptionClick{ID: "2"}, SearchInput{Term: "a"}},
			wantClearable: true,
			wantSelected:  "2",
			wantVisible:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			for _, ev := range tt.events {
				if _, err := c.Dispatch(ev); err != nil {
					t.Fatal(err)
				}
			}
			v := c.View()
			if v.ShowSearch != tt.wantSearch {
				t.Errorf("ShowSearch = %v, want %v", v.ShowSearch, tt.wantSearch)
			}
			if v.Clearable != tt.wantClearable {
				t.Errorf("Clearable = %v, want %v", v.Clearable, tt.wantClearable)
			}
			if len(v.Options) != tt.wantVisible {
				t.Errorf("len(Options) = %d, want %d", len(v.Options), tt.wantVisible)
			}
			gotSelected := ""
			if v.Selected != nil {
				gotSelected = v.Selected.ID
			}
			if gotSelected != tt.wantSelected {
				t.Errorf("Selected = %q, want %q", gotSelected, tt.wantSelected)
			}
			if v.Layout.Width != "245px" {
				t.Errorf("Layout.Width = %q", v.Layout.Width)
			}
		})
	}
}

func TestClear(t *testing.T) {
	var events []SelectionEvent
	c, err := New(&Config{
		DefaultValue: "a",
		Options:      []RawOption{{"id": "a", "text": "A"}},
		OnSelect:     func(ev SelectionEvent) { events = append(events, ev) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if c.Value() != nil || len(events) != 1 || events[0].Target.Value != nil {
		t.Errorf("value = %v, events = %+v", c.Value(), events)
	}
}
