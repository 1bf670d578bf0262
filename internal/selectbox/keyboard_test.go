package selectbox

import "testing"

var abc = []Option{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}, {ID: "c", Text: "C"}}

func highlighted(i int) *int { return &i }

func TestHandleKeyMovement(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		key      Key
		wantOpen bool
		wantHigh *int
	}{
		{
			name:     "down from closed opens at 0",
			state:    State{},
			key:      KeyArrowDown,
			wantOpen: true,
			wantHigh: highlighted(0),
		},
		{
			name:     "up from closed opens at 0",
			state:    State{},
			key:      KeyArrowUp,
			wantOpen: true,
			wantHigh: highlighted(0),
		},
		{
			name:     "open without highlight starts at 0",
			state:    State{DropdownOpened: true},
			key:      KeyArrowUp,
			wantOpen: true,
			wantHigh: highlighted(0),
		},
		{
			name:     "down moves forward",
			state:    State{DropdownOpened: true, Highlighted: highlighted(0)},
			key:      KeyArrowDown,
			wantOpen: true,
			wantHigh: highlighted(1),
		},
		{
			name:     "down wraps to first",
			state:    State{DropdownOpened: true, Highlighted: highlighted(2)},
			key:      KeyArrowDown,
			wantOpen: true,
			wantHigh: highlighted(0),
		},
		{
			name:     "up wraps to last",
			state:    State{DropdownOpened: true, Highlighted: highlighted(0)},
			key:      KeyArrowUp,
			wantOpen: true,
			wantHigh: highlighted(2),
		},
		{
			name:     "escape closes",
			state:    State{DropdownOpened: true, Highlighted: highlighted(1)},
			key:      KeyEscape,
			wantOpen: false,
		},
		{
			name:     "escape while closed stays closed",
			state:    State{},
			key:      KeyEscape,
			wantOpen: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := HandleKey(tt.state, abc, tt.key)
			if err != nil {
				t.Fatalf("HandleKey() error = %v", err)
			}
			if !res.Consumed {
				t.Error("key should be consumed")
			}
			if res.State.DropdownOpened != tt.wantOpen {
				t.Errorf("DropdownOpened = %v, want %v", res.State.DropdownOpened, tt.wantOpen)
			}
			if !intPtrEqual(res.State.Highlighted, tt.wantHigh) {
				t.Errorf("Highlighted = %v, want %v", deref(res.State.Highlighted), deref(tt.wantHigh))
			}
		})
	}
}

func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestHandleKeyCommit(t *testing.T) {
	for _, key := range []Key{KeyEnter, KeySpace} {
		t.Run(string(key), func(t *testing.T) {
			res, err := HandleKey(State{}, abc, key)
			if err != nil {
				t.Fatalf("HandleKey() error = %v", err)
			}
			if res.Selected != nil {
				t.Fatal("first press should only prime")
			}
			if !res.State.DropdownOpened || !intPtrEqual(res.State.Highlighted, highlighted(0)) {
				t.Fatalf("first press state = %+v, want open at 0", res.State)
			}

			res, err = HandleKey(State{DropdownOpened: true, Highlighted: highlighted(1)}, abc, key)
			if err != nil {
				t.Fatalf("HandleKey() error = %v", err)
			}
			if res.Selected == nil || res.Selected.ID != "b" {
				t.Errorf("Selected = %v, want b", res.Selected)
			}
		})
	}
}

func TestHandleKeyCommitOutOfRange(t *testing.T) {
	_, err := HandleKey(State{DropdownOpened: true, Highlighted: highlighted(5)}, abc, KeyEnter)
	if !IsIndexError(err) {
		t.Errorf("HandleKey() error = %v, want index error", err)
	}
}

func TestHandleKeyEmptyList(t *testing.T) {
	res, _ := HandleKey(State{}, nil, KeyArrowDown)
	if !res.Consumed || res.State.DropdownOpened {
		t.Errorf("movement on empty list = %+v, want consumed no-op", res)
	}

	res, _ = HandleKey(State{}, nil, KeyEnter)
	if !res.State.DropdownOpened || res.State.Highlighted != nil {
		t.Errorf("commit on empty list = %+v, want open without highlight", res.State)
	}
}

func TestHandleKeyIgnored(t *testing.T) {
	res, _ := HandleKey(State{}, abc, Key("Tab"))
	if res.Consumed {
		t.Error("unknown key should not be consumed")
	}

	disabled := State{Disabled: true}
	for _, key := range []Key{KeyArrowDown, KeyEnter, KeyEscape} {
		res, _ := HandleKey(disabled, abc, key)
		if res.Consumed || res.State.DropdownOpened {
			t.Errorf("disabled %q = %+v, want ignored", key, res)
		}
	}
}
