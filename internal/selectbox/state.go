package selectbox

import "reflect"

// ErrorState is the error shown by the widget. An empty Message is a marker
// for "something failed" without a description.
type ErrorState struct {
	Message string `json:"message,omitempty"`
}

// Text returns the message, or fallback for a marker.
func (e *ErrorState) Text(fallback string) string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fallback
	}
	return e.Message
}

// State is the widget state owned by the core.
//
// Highlighted indexes the visible (filtered) list. A closed dropdown never
// has a highlight.
type State struct {
	Options        []Option
	SearchTerm     *string
	Highlighted    *int
	DropdownOpened bool
	Value          *string
	IsPending      bool
	Error          *ErrorState
	RequestSearch  bool
	Disabled       bool
}

// Term returns the search term or "".
func (s State) Term() string {
	if s.SearchTerm == nil {
		return ""
	}
	return *s.SearchTerm
}

func (s State) closed() State {
	s.DropdownOpened = false
	s.Highlighted = nil
	return s
}

// normalizeHighlight resets a highlight that no longer fits the visible list.
func (s State) normalizeHighlight(visible int) State {
	if s.Highlighted == nil || *s.Highlighted < visible {
		return s
	}
	if visible == 0 || !s.DropdownOpened {
		s.Highlighted = nil
	} else {
		s.Highlighted = intPtr(0)
	}
	return s
}

// Change is a set of State fields that differ between two snapshots.
type Change uint16

const (
	ChangeOptions Change = 1 << iota
	ChangeSearchTerm
	ChangeHighlighted
	ChangeDropdown
	ChangeValue
	ChangePending
	ChangeError
	ChangeDisabled
)

// None reports whether nothing changed.
func (c Change) None() bool { return c == 0 }

// Has reports whether any of the given fields changed.
func (c Change) Has(f Change) bool { return c&f != 0 }

// Diff compares two snapshots field by field.
func Diff(prev, next State) Change {
	var c Change
	if !optionsEqual(prev.Options, next.Options) {
		c |= ChangeOptions
	}
	if !strPtrEqual(prev.SearchTerm, next.SearchTerm) {
		c |= ChangeSearchTerm
	}
	if !intPtrEqual(prev.Highlighted, next.Highlighted) {
		c |= ChangeHighlighted
	}
	if prev.DropdownOpened != next.DropdownOpened {
		c |= ChangeDropdown
	}
	if !strPtrEqual(prev.Value, next.Value) {
		c |= ChangeValue
	}
	if prev.IsPending != next.IsPending {
		c |= ChangePending
	}
	if !errorEqual(prev.Error, next.Error) {
		c |= ChangeError
	}
	if prev.Disabled != next.Disabled {
		c |= ChangeDisabled
	}
	return c
}

func optionsEqual(a, b []Option) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || !reflect.DeepEqual(a[i].Text, b[i].Text) {
			return false
		}
	}
	return true
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func errorEqual(a, b *ErrorState) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Message == b.Message
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }
