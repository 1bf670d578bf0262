// Package selectbox implements the state machine behind a single-select
// dropdown: option normalization, search filtering, debounced remote
// loading, keyboard navigation and controlled-value reconciliation.
//
// The package does no I/O and starts no goroutines. Transition is a pure
// function from a Snapshot and an Event to the next Snapshot plus a list of
// Effects; Core owns one Snapshot, runs the callbacks and logging effects,
// and hands the rest (timers, fetches, focus, outside-click watching) back
// to its caller.
//
// # Building a widget
//
//	cfg := &selectbox.Config{
//	    Options: []selectbox.RawOption{
//	        {"id": 1, "text": "Apple"},
//	        {"id": 2, "text": "Banana"},
//	    },
//	    OnSelect: func(ev selectbox.SelectionEvent) { ... },
//	}
//	core, err := selectbox.New(cfg)
//	if err != nil {
//	    return err // *selectbox.Error: configuration or malformed option
//	}
//	effects, err := core.Dispatch(selectbox.KeyDown{Key: selectbox.KeyArrowDown})
//
// # Remote options
//
// With Config.Request set, options come from a remote source. In fetch-once
// mode (Request.Once) a single request is issued on Mount. Otherwise search
// input of at least Search.MinLength characters arms the debounce handle and
// produces ArmDebounce; the owner reports DebounceElapsed when the delay
// passes, and only the latest ticket results in a StartFetch.
//
// Every StartFetch carries a generation. FetchSucceeded and FetchFailed
// are applied only for the latest generation and never after Unmount, so
// out-of-order or late responses cannot overwrite newer state.
//
// # Errors
//
// *Error values with ErrTypeConfiguration, ErrTypeMalformedOption or
// ErrTypeIndex are returned synchronously and leave the state untouched.
// Remote failures are never returned; they become State.Error. Usage
// warnings are logged through the logging package.
//
// # Value identity
//
// Option ids are coerced to strings when options are normalized, and every
// comparison afterwards (validity checks, lookups, selection) is an exact
// string comparison.
package selectbox
