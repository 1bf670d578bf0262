package selectbox

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// SelectionEvent is delivered to OnSelect after a selection commits.
type SelectionEvent struct {
	Type   string          `json:"type"`
	Target SelectionTarget `json:"target"`
}

// SelectionTarget identifies the widget and the committed option.
type SelectionTarget struct {
	Name   string  `json:"name"`
	Option *Option `json:"option"`
	Value  *string `json:"value"`
}

// Select sets the value to opt's id, or clears it when opt is nil. It is a
// no-op while disabled and when clearing an empty value; otherwise it closes
// the dropdown and returns the event to deliver.
func Select(s State, opt *Option, name string) (State, *SelectionEvent) {
	if s.Disabled {
		return s, nil
	}
	if opt == nil && s.Value == nil {
		return s, nil
	}

	ev := &SelectionEvent{Type: "select", Target: SelectionTarget{Name: name}}
	if opt == nil {
		s.Value = nil
	} else {
		o := *opt
		s.Value = strPtr(o.ID)
		ev.Target.Option = &o
		ev.Target.Value = strPtr(o.ID)
	}
	return s.closed(), ev
}

// SelectByID selects the option with the given id.
func SelectByID(s State, id, name string) (State, *SelectionEvent, error) {
	opt, ok := OptionByID(s.Options, id)
	if !ok {
		return s, nil, NewIndexError(-1, fmt.Sprintf("no option with id %q", id))
	}
	next, ev := Select(s, &opt, name)
	return next, ev, nil
}

// PropsUpdate carries the externally owned inputs pushed on each update.
// A nil Error leaves the current error in place.
type PropsUpdate struct {
	Value    Controlled
	Disabled bool
	Options  []RawOption
	Children []Element
	Error    any
}

// IsValidValue reports whether value names an option. Nil is always valid.
// Ids are compared as strings.
func IsValidValue(options []Option, value *string) bool {
	if value == nil {
		return true
	}
	_, ok := OptionByID(options, *value)
	return ok
}

// Reconcile folds an external update into s. An invalid controlled value is
// still accepted; when nothing observes selections it produces a warning.
func Reconcile(s State, u PropsUpdate, hasOnSelect bool) (State, []UsageWarning, error) {
	options, err := Normalize(s.Options, u.Options, u.Children)
	if err != nil {
		return s, nil, err
	}

	var warnings []UsageWarning
	if u.Value.Defined && !strPtrEqual(u.Value.ID, s.Value) {
		if !IsValidValue(options, u.Value.ID) && !hasOnSelect {
			warnings = append(warnings, uncontrolledWarning(options, *u.Value.ID))
		}
		s.Value = u.Value.ID
	}

	s.Options = options
	s.Disabled = u.Disabled
	if s.Disabled {
		s = s.closed()
	}
	if u.Error != nil {
		s.Error = errorFromValue(u.Error)
	}
	return s, warnings, nil
}

func uncontrolledWarning(options []Option, value string) UsageWarning {
	msg := fmt.Sprintf("value %q is set from outside without an OnSelect callback and matches no option; "+
		"use OnSelect or DefaultValue instead", value)
	if near, ok := nearestID(options, value); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", near)
	}
	return UsageWarning{Code: WarnUncontrolledValue, Message: msg}
}

// nearestID finds an id within edit distance 2 of value.
func nearestID(options []Option, value string) (string, bool) {
	best, bestDist := "", 3
	for _, o := range options {
		if d := levenshtein.ComputeDistance(value, o.ID); d < bestDist {
			best, bestDist = o.ID, d
		}
	}
	return best, best != ""
}
