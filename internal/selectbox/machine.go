package selectbox

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/muurk/selectbox/internal/fetch"
)

// Event is an input to Transition.
type Event interface{ isEvent() }

type (
	Mount          struct{}
	Unmount        struct{}
	KeyDown        struct{ Key Key }
	ContainerClick struct{}
	OptionClick    struct{ ID string }
	ClearClick     struct{}
	ClickOutside   struct{}
	// SearchInput is a change of the search box. Raw is the presentation
	// layer's own event, handed back untouched to OnSearchTermChange.
	SearchInput struct {
		Term string
		Raw  any
	}
	DebounceElapsed struct{ Gen uint64 }
	FetchSucceeded  struct {
		Gen   uint64
		Items []RawOption
	}
	FetchFailed struct {
		Gen uint64
		Err error
	}
	PropsChanged struct{ Update PropsUpdate }
)

func (Mount) isEvent()           {}
func (Unmount) isEvent()         {}
func (KeyDown) isEvent()         {}
func (ContainerClick) isEvent()  {}
func (OptionClick) isEvent()     {}
func (ClearClick) isEvent()      {}
func (ClickOutside) isEvent()    {}
func (SearchInput) isEvent()     {}
func (DebounceElapsed) isEvent() {}
func (FetchSucceeded) isEvent()  {}
func (FetchFailed) isEvent()     {}
func (PropsChanged) isEvent()    {}

// Effect is work Transition asks its owner to carry out.
type Effect interface{ isEffect() }

type (
	ArmDebounce struct {
		Gen   uint64
		Delay time.Duration
	}
	CancelDebounce struct{}
	StartFetch     struct {
		Gen uint64
		URL string
	}
	EmitSelect      struct{ Event SelectionEvent }
	EmitSearchInput struct{ Input SearchInput }
	FocusRoot       struct{}
	Warn            struct{ Warning UsageWarning }
	WatchOutside    struct{}
	UnwatchOutside  struct{}
)

func (ArmDebounce) isEffect()     {}
func (CancelDebounce) isEffect()  {}
func (StartFetch) isEffect()      {}
func (EmitSelect) isEffect()      {}
func (EmitSearchInput) isEffect() {}
func (FocusRoot) isEffect()       {}
func (Warn) isEffect()            {}
func (WatchOutside) isEffect()    {}
func (UnwatchOutside) isEffect()  {}

// Snapshot is everything Transition reads and writes: the visible state and
// the resources owned alongside it.
type Snapshot struct {
	State    State
	Debounce Debouncer
	// FetchGen is the generation of the latest dispatched request.
	FetchGen   uint64
	PropsError *ErrorState
	// Mounted is set by the first Mount; later Mounts are ignored.
	Mounted  bool
	TornDown bool
}

// Visible returns the filtered option list for s under cfg.
func Visible(s State, cfg *Config) []Option {
	return Filter(s.Options, s.Term(), cfg.Search.Mode)
}

// Transition applies ev to snap. On error snap is returned unchanged and no
// effects are produced. After Unmount every event is ignored.
func Transition(snap Snapshot, cfg *Config, ev Event) (Snapshot, []Effect, error) {
	if snap.TornDown {
		return snap, nil, nil
	}

	s := snap.State
	switch e := ev.(type) {
	case Mount:
		if snap.Mounted {
			return snap, nil, nil
		}
		snap.Mounted = true
		effects := []Effect{WatchOutside{}}
		if cfg.AutoFocus {
			effects = append(effects, FocusRoot{})
		}
		if cfg.Request != nil && cfg.Request.Once {
			url, err := fetch.BuildURL(cfg.Request.Endpoint, cfg.Request.Params, cfg.Request.TermQuery, "")
			if err != nil {
				return snap, nil, configErrorFrom(err)
			}
			var start Effect
			snap, start = startFetch(snap, url)
			effects = append(effects, start)
		}
		return snap, effects, nil

	case Unmount:
		snap.TornDown = true
		snap.Debounce = snap.Debounce.Cancel()
		snap.State.IsPending = false
		return snap, []Effect{CancelDebounce{}, UnwatchOutside{}}, nil

	case KeyDown:
		res, err := HandleKey(s, Visible(s, cfg), e.Key)
		if err != nil {
			return snap, nil, err
		}
		if res.Selected == nil {
			snap.State = res.State
			return snap, nil, nil
		}
		return commitSelection(snap, res.State, res.Selected, cfg)

	case ContainerClick:
		if s.Disabled {
			return snap, nil, nil
		}
		if s.DropdownOpened {
			s = s.closed()
		} else {
			s.DropdownOpened = true
		}
		snap.State = s
		return snap, nil, nil

	case OptionClick:
		opt, ok := OptionByID(s.Options, e.ID)
		if !ok {
			_, _, err := SelectByID(s, e.ID, cfg.Name)
			return snap, nil, err
		}
		return commitSelection(snap, s, &opt, cfg)

	case ClearClick:
		return commitSelection(snap, s, nil, cfg)

	case ClickOutside:
		snap.State = s.closed()
		return snap, nil, nil

	case SearchInput:
		if s.Disabled {
			return snap, nil, nil
		}
		var effects []Effect
		if cfg.RequestSearch() && utf8.RuneCountInString(e.Term) >= cfg.Search.minLength() {
			url, err := fetch.BuildURL(cfg.Request.Endpoint, cfg.Request.Params, cfg.Request.TermQuery, e.Term)
			if err != nil {
				return snap, nil, configErrorFrom(err)
			}
			var gen uint64
			snap.Debounce, gen = snap.Debounce.Trigger(url)
			effects = append(effects, ArmDebounce{Gen: gen, Delay: snap.Debounce.Delay})
		}
		if e.Term == "" {
			s.SearchTerm = nil
		} else {
			s.SearchTerm = strPtr(e.Term)
		}
		snap.State = s.normalizeHighlight(len(Visible(s, cfg)))
		effects = append([]Effect{EmitSearchInput{Input: e}}, effects...)
		return snap, effects, nil

	case DebounceElapsed:
		d, url, ok := snap.Debounce.Fire(e.Gen)
		if !ok {
			return snap, nil, nil
		}
		snap.Debounce = d
		var start Effect
		snap, start = startFetch(snap, url)
		return snap, []Effect{start}, nil

	case FetchSucceeded:
		if e.Gen != snap.FetchGen {
			return snap, nil, nil
		}
		s.IsPending = false
		options, err := Normalize(s.Options, e.Items, nil)
		if err != nil {
			s.Error = &ErrorState{Message: err.Error()}
		} else {
			s.Options = options
		}
		snap.State = s.normalizeHighlight(len(Visible(s, cfg)))
		return snap, nil, nil

	case FetchFailed:
		if e.Gen != snap.FetchGen {
			return snap, nil, nil
		}
		s.IsPending = false
		s.Error = &ErrorState{}
		if e.Err != nil {
			s.Error.Message = fetch.ShortMessage(e.Err)
		}
		snap.State = s
		return snap, nil, nil

	case PropsChanged:
		next, warnings, err := Reconcile(s, e.Update, cfg.OnSelect != nil)
		if err != nil {
			return snap, nil, err
		}
		if e.Update.Error != nil {
			snap.PropsError = errorFromValue(e.Update.Error)
		}
		snap.State = next.normalizeHighlight(len(Visible(next, cfg)))
		var effects []Effect
		for _, w := range warnings {
			effects = append(effects, Warn{Warning: w})
		}
		return snap, effects, nil
	}

	return snap, nil, nil
}

func startFetch(snap Snapshot, url string) (Snapshot, Effect) {
	snap.FetchGen++
	snap.State.Error = snap.PropsError
	snap.State.IsPending = true
	return snap, StartFetch{Gen: snap.FetchGen, URL: url}
}

func commitSelection(snap Snapshot, s State, opt *Option, cfg *Config) (Snapshot, []Effect, error) {
	next, ev := Select(s, opt, cfg.Name)
	snap.State = next
	if ev == nil {
		return snap, nil, nil
	}
	return snap, []Effect{EmitSelect{Event: *ev}, FocusRoot{}}, nil
}

func configErrorFrom(err error) error {
	if errors.Is(err, fetch.ErrMissingTermQuery) {
		e := NewConfigurationError("request.termQuery", "provide request.termQuery to search remotely")
		e.Err = err
		return e
	}
	return NewConfigurationError("request.endpoint", err.Error())
}
