package selectbox

import (
	"errors"

	"github.com/muurk/selectbox/internal/logging"
)

// OutsideClickObserver notifies the widget of pointer events outside its
// region. Observe returns the function that stops the notifications.
type OutsideClickObserver interface {
	Observe(onOutside func()) (release func())
}

// Core owns one widget's state. It is not safe for concurrent use: events
// must be dispatched from a single goroutine.
type Core struct {
	cfg  *Config
	snap Snapshot
}

// NewSnapshot validates cfg, applies defaults and builds the initial
// snapshot. Warnings are returned, not logged.
func NewSnapshot(cfg *Config) (Snapshot, []UsageWarning, error) {
	warnings, err := ValidateConfig(cfg)
	if err != nil {
		return Snapshot{}, nil, err
	}
	cfg.ApplyDefaults()

	children := cfg.Children
	if cfg.Markup != "" {
		parsed, err := ParseMarkup(cfg.Markup)
		if err != nil {
			e := NewConfigurationError("markup", "option markup is not valid HTML")
			e.Err = err
			return Snapshot{}, nil, e
		}
		children = append(append([]Element(nil), children...), parsed...)
	}
	options, err := Normalize(nil, cfg.Options, children)
	if err != nil {
		return Snapshot{}, nil, err
	}

	propsErr := errorFromValue(cfg.Error)
	snap := Snapshot{
		State: State{
			Options:       options,
			Value:         cfg.initialValue(),
			Error:         propsErr,
			RequestSearch: cfg.RequestSearch(),
			Disabled:      cfg.Disabled,
		},
		Debounce:   Debouncer{Delay: cfg.Request.DebounceDelay()},
		PropsError: propsErr,
	}
	return snap, warnings, nil
}

// New creates the core for cfg. Configuration and option shape errors are
// returned; usage warnings are logged.
func New(cfg *Config) (*Core, error) {
	snap, warnings, err := NewSnapshot(cfg)
	if err != nil {
		return nil, err
	}
	c := &Core{cfg: cfg, snap: snap}
	for _, w := range warnings {
		c.warn(w)
	}
	return c, nil
}

// Dispatch applies ev. Selection and search callbacks run here, after the
// new state is committed, and warnings are logged. The remaining effects
// are returned for the caller to execute.
func (c *Core) Dispatch(ev Event) ([]Effect, error) {
	prev := c.snap
	next, effects, err := Transition(c.snap, c.cfg, ev)
	if err != nil {
		return nil, err
	}
	c.snap = next
	c.logSettle(prev, ev)

	var rest []Effect
	for _, eff := range effects {
		switch e := eff.(type) {
		case EmitSelect:
			logging.LogSelection(c.cfg.Name, e.Event.Target.Value)
			if c.cfg.OnSelect != nil {
				c.cfg.OnSelect(e.Event)
			}
		case EmitSearchInput:
			if c.cfg.OnSearchTermChange != nil {
				c.cfg.OnSearchTermChange(e.Input)
			}
		case Warn:
			c.warn(e.Warning)
		case StartFetch:
			logging.LogFetch(c.cfg.Name, e.Gen, e.URL)
			rest = append(rest, eff)
		default:
			rest = append(rest, eff)
		}
	}
	return rest, nil
}

func (c *Core) logSettle(prev Snapshot, ev Event) {
	var gen uint64
	var count int
	var err error
	switch e := ev.(type) {
	case FetchSucceeded:
		gen, count = e.Gen, len(e.Items)
	case FetchFailed:
		gen, err = e.Gen, e.Err
		if err == nil {
			err = errors.New("request failed")
		}
	default:
		return
	}
	if prev.TornDown || gen != prev.FetchGen {
		logging.LogStaleResult(c.cfg.Name, gen, prev.FetchGen)
		return
	}
	logging.LogFetchResult(c.cfg.Name, gen, count, err)
}

func (c *Core) warn(w UsageWarning) {
	logging.LogUsageWarning(c.cfg.Name, w.Code, w.Message)
}

// Clear removes the current selection.
func (c *Core) Clear() ([]Effect, error) {
	return c.Dispatch(ClearClick{})
}

// Config returns the configuration the core was built with.
func (c *Core) Config() *Config { return c.cfg }

// Snapshot returns the current snapshot.
func (c *Core) Snapshot() Snapshot { return c.snap }

// State returns the current state.
func (c *Core) State() State { return c.snap.State }

// Value returns the selected id, or nil.
func (c *Core) Value() *string { return c.snap.State.Value }

// Options returns the full normalized option list.
func (c *Core) Options() []Option { return c.snap.State.Options }

// Changed reports which fields differ from an earlier state.
func (c *Core) Changed(since State) Change { return Diff(since, c.snap.State) }

// View is what the presentation layer renders.
type View struct {
	Name           string
	Placeholder    string
	DropdownOpened bool
	Highlighted    *int
	IsPending      bool
	Error          *ErrorState
	Options        []Option // visible
	SearchTerm     string
	Value          *string
	Selected       *Option
	Clearable      bool
	ShowSearch     bool
	Disabled       bool
	Layout         Layout
	Lang           map[string]string
}

// View derives the presentation contract from the current state.
func (c *Core) View() View {
	s := c.snap.State
	v := View{
		Name:           c.cfg.Name,
		Placeholder:    c.cfg.Placeholder,
		DropdownOpened: s.DropdownOpened,
		Highlighted:    s.Highlighted,
		IsPending:      s.IsPending,
		Error:          s.Error,
		Options:        Visible(s, c.cfg),
		SearchTerm:     s.Term(),
		Value:          s.Value,
		Disabled:       s.Disabled,
		Layout:         c.cfg.Layout,
		Lang:           c.cfg.Lang,
		ShowSearch:     s.RequestSearch || len(s.Options) >= c.cfg.Search.minimumResults(),
	}
	if s.Value != nil {
		if opt, ok := OptionByID(s.Options, *s.Value); ok {
			v.Selected = &opt
		}
	}
	v.Clearable = c.cfg.AllowClear && s.Value != nil && !s.Disabled
	return v
}
