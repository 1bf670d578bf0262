package selectbox

// Key is a keyboard key the widget responds to, named after DOM key values.
type Key string

const (
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
	KeyEnter     Key = "Enter"
	KeySpace     Key = " "
	KeyEscape    Key = "Escape"
)

// KeyResult is the outcome of a key press. Selected is set when the press
// commits the highlighted option.
type KeyResult struct {
	State    State
	Consumed bool
	Selected *Option
}

// HandleKey applies a key press to s over the visible option list.
// Unknown keys, and every key while disabled, are not consumed.
func HandleKey(s State, visible []Option, key Key) (KeyResult, error) {
	if s.Disabled {
		return KeyResult{State: s}, nil
	}

	switch key {
	case KeyArrowUp:
		return KeyResult{State: moveHighlight(s, len(visible), -1), Consumed: true}, nil
	case KeyArrowDown:
		return KeyResult{State: moveHighlight(s, len(visible), 1), Consumed: true}, nil
	case KeyEnter, KeySpace:
		return commitHighlight(s, visible)
	case KeyEscape:
		return KeyResult{State: s.closed(), Consumed: true}, nil
	default:
		return KeyResult{State: s}, nil
	}
}

func moveHighlight(s State, count, direction int) State {
	if count == 0 {
		return s
	}
	if !s.DropdownOpened || s.Highlighted == nil {
		s.DropdownOpened = true
		s.Highlighted = intPtr(0)
		return s
	}

	next := *s.Highlighted + direction
	switch {
	case next > count-1:
		next = 0
	case next < 0:
		next = count - 1
	}
	s.Highlighted = intPtr(next)
	return s
}

// commitHighlight primes the first option on the first press and selects the
// highlighted option on the next.
func commitHighlight(s State, visible []Option) (KeyResult, error) {
	if !s.DropdownOpened || s.Highlighted == nil {
		s.DropdownOpened = true
		if len(visible) > 0 {
			s.Highlighted = intPtr(0)
		} else {
			s.Highlighted = nil
		}
		return KeyResult{State: s, Consumed: true}, nil
	}

	opt, err := OptionAt(visible, *s.Highlighted)
	if err != nil {
		return KeyResult{State: s}, err
	}
	return KeyResult{State: s, Consumed: true, Selected: &opt}, nil
}
