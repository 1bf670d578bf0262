package tui

import (
	"sync"

	"github.com/muurk/selectbox/internal/selectbox"
)

var _ selectbox.OutsideClickObserver = (*MouseRegion)(nil)

// MouseRegion is the screen rectangle occupied by a widget. Presses outside
// it are reported to every observer.
type MouseRegion struct {
	mu        sync.Mutex
	x, y      int
	w, h      int
	observers map[int]func()
	next      int
}

// NewMouseRegion creates an empty region. Every press is outside it until
// SetBounds is called.
func NewMouseRegion() *MouseRegion {
	return &MouseRegion{observers: make(map[int]func())}
}

// SetBounds moves the region.
func (r *MouseRegion) SetBounds(x, y, w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.x, r.y, r.w, r.h = x, y, w, h
}

// Contains reports whether the cell at (x, y) is inside the region.
func (r *MouseRegion) Contains(x, y int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.contains(x, y)
}

func (r *MouseRegion) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// Observe registers onOutside until the returned release is called.
func (r *MouseRegion) Observe(onOutside func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.next
	r.next++
	r.observers[id] = onOutside
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.observers, id)
	}
}

// Press reports a pointer press at (x, y). Observers run, outside the lock,
// when the press misses the region. It returns whether the press was inside.
func (r *MouseRegion) Press(x, y int) bool {
	r.mu.Lock()
	if r.contains(x, y) {
		r.mu.Unlock()
		return true
	}
	callbacks := make([]func(), 0, len(r.observers))
	for _, cb := range r.observers {
		callbacks = append(callbacks, cb)
	}
	r.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
	return false
}
