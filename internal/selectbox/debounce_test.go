package selectbox

import "testing"

func TestDebouncerLatestTicketWins(t *testing.T) {
	var d Debouncer
	var g1, g2, g3 uint64
	d, g1 = d.Trigger("u?q=abc")
	d, g2 = d.Trigger("u?q=abcd")
	d, g3 = d.Trigger("u?q=abcde")

	for _, stale := range []uint64{g1, g2} {
		if _, _, ok := d.Fire(stale); ok {
			t.Errorf("Fire(%d) fired a superseded ticket", stale)
		}
	}

	d, url, ok := d.Fire(g3)
	if !ok || url != "u?q=abcde" {
		t.Fatalf("Fire(latest) = %q, %v", url, ok)
	}
	if _, _, ok := d.Fire(g3); ok {
		t.Error("a ticket fires at most once")
	}
}

func TestDebouncerCancel(t *testing.T) {
	var d Debouncer
	d, gen := d.Trigger("u")
	d = d.Cancel()
	if d.Armed() {
		t.Error("Armed() after Cancel")
	}
	if _, _, ok := d.Fire(gen); ok {
		t.Error("cancelled ticket fired")
	}
}
