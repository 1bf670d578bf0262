package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/muurk/selectbox/internal/fetch"
	"github.com/muurk/selectbox/internal/logging"
	"github.com/muurk/selectbox/internal/selectbox"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStopped is returned when the driver is no longer running.
var ErrStopped = errors.New("runner: stopped")

// Options configures a Driver. Every field is optional.
type Options struct {
	// Fetcher loads remote options. Built from the widget's request config when nil.
	Fetcher *fetch.Fetcher
	// Observer reports clicks outside the widget.
	Observer selectbox.OutsideClickObserver
	// Focus is called for FocusRoot effects.
	Focus func()
	// OnChange is called on the event goroutine whenever the state changes.
	OnChange func(selectbox.View, selectbox.Change)
	// OnError receives errors from events the driver delivers itself
	// (timer and fetch results).
	OnError func(error)
}

type request struct {
	ev    selectbox.Event
	fn    func(*selectbox.Core)
	reply chan error
}

// Driver runs a Core on a single goroutine. Timers and fetches run
// elsewhere and report back as events, so the core never sees concurrent
// calls.
type Driver struct {
	core *selectbox.Core
	opts Options

	requests chan request
	events   chan selectbox.Event
	done     chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	// owned by the event goroutine
	timer   *time.Timer
	release func()
	waiters []chan struct{}

	stopOnce sync.Once
}

// New creates a driver for core. Call Start to begin processing.
func New(core *selectbox.Core, opts Options) *Driver {
	if opts.Fetcher == nil {
		if r := core.Config().Request; r != nil {
			opts.Fetcher = fetch.NewFetcher(r.Endpoint, r.Client, r.ResponseDataFormatter)
		}
	}
	return &Driver{
		core:     core,
		opts:     opts,
		requests: make(chan request),
		events:   make(chan selectbox.Event, 16),
		done:     make(chan struct{}),
	}
}

// Start launches the event goroutine and mounts the widget.
func (d *Driver) Start(ctx context.Context) error {
	d.ctx, d.cancel = context.WithCancel(ctx)
	d.group, d.ctx = errgroup.WithContext(d.ctx)
	d.group.Go(func() error {
		defer close(d.done)
		d.loop()
		return nil
	})
	return d.Send(selectbox.Mount{})
}

// Send dispatches ev and waits for it to be applied.
func (d *Driver) Send(ev selectbox.Event) error {
	return d.do(request{ev: ev})
}

// View returns the current presentation state.
func (d *Driver) View() (selectbox.View, error) {
	var v selectbox.View
	err := d.do(request{fn: func(c *selectbox.Core) { v = c.View() }})
	return v, err
}

// Value returns the selected id.
func (d *Driver) Value() (*string, error) {
	var v *string
	err := d.do(request{fn: func(c *selectbox.Core) { v = c.Value() }})
	return v, err
}

// WaitIdle blocks until no debounce is armed and no fetch is pending.
func (d *Driver) WaitIdle(ctx context.Context) error {
	ch := make(chan struct{})
	err := d.do(request{fn: func(c *selectbox.Core) {
		d.waiters = append(d.waiters, ch)
		d.notifyIdle()
	}})
	if err != nil {
		return err
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		return ErrStopped
	}
}

// Stop unmounts the widget, abandons in-flight fetches and waits for every
// goroutine the driver started.
func (d *Driver) Stop() error {
	var err error
	d.stopOnce.Do(func() {
		if sendErr := d.Send(selectbox.Unmount{}); sendErr != nil && !errors.Is(sendErr, ErrStopped) {
			err = sendErr
		}
		d.cancel()
		if waitErr := d.group.Wait(); waitErr != nil && err == nil {
			err = waitErr
		}
	})
	return err
}

func (d *Driver) do(r request) error {
	r.reply = make(chan error, 1)
	select {
	case d.requests <- r:
	case <-d.done:
		return ErrStopped
	}
	select {
	case err := <-r.reply:
		return err
	case <-d.done:
		return ErrStopped
	}
}

func (d *Driver) loop() {
	for {
		select {
		case <-d.ctx.Done():
			d.shutdown()
			return
		case r := <-d.requests:
			if r.fn != nil {
				r.fn(d.core)
				r.reply <- nil
				continue
			}
			r.reply <- d.apply(r.ev)
		case ev := <-d.events:
			if err := d.apply(ev); err != nil && d.opts.OnError != nil {
				d.opts.OnError(err)
			}
		}
	}
}

func (d *Driver) apply(ev selectbox.Event) error {
	before := d.core.State()
	effects, err := d.core.Dispatch(ev)
	if err != nil {
		return err
	}
	for _, eff := range effects {
		d.execute(eff)
	}
	if change := d.core.Changed(before); !change.None() && d.opts.OnChange != nil {
		d.opts.OnChange(d.core.View(), change)
	}
	d.notifyIdle()
	return nil
}

func (d *Driver) execute(eff selectbox.Effect) {
	switch e := eff.(type) {
	case selectbox.ArmDebounce:
		d.stopTimer()
		gen := e.Gen
		d.timer = time.AfterFunc(e.Delay, func() { d.post(selectbox.DebounceElapsed{Gen: gen}) })
	case selectbox.CancelDebounce:
		d.stopTimer()
	case selectbox.StartFetch:
		d.startFetch(e)
	case selectbox.FocusRoot:
		if d.opts.Focus != nil {
			d.opts.Focus()
		}
	case selectbox.WatchOutside:
		if d.opts.Observer != nil && d.release == nil {
			d.release = d.opts.Observer.Observe(func() { d.post(selectbox.ClickOutside{}) })
		}
	case selectbox.UnwatchOutside:
		if d.release != nil {
			d.release()
			d.release = nil
		}
	default:
		logging.Debug("Unhandled effect", zap.String("type", fmt.Sprintf("%T", eff)))
	}
}

func (d *Driver) startFetch(e selectbox.StartFetch) {
	if d.opts.Fetcher == nil {
		d.post(selectbox.FetchFailed{Gen: e.Gen, Err: errors.New("no option source configured")})
		return
	}
	fetcher, ctx := d.opts.Fetcher, d.ctx
	d.group.Go(func() error {
		items, err := fetcher.Fetch(ctx, e.URL)
		if err != nil {
			d.post(selectbox.FetchFailed{Gen: e.Gen, Err: err})
			return nil
		}
		d.post(selectbox.FetchSucceeded{Gen: e.Gen, Items: items})
		return nil
	})
}

// post delivers an event from another goroutine. It is dropped once the
// driver has stopped.
func (d *Driver) post(ev selectbox.Event) {
	select {
	case d.events <- ev:
	case <-d.done:
	}
}

func (d *Driver) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Driver) notifyIdle() {
	if len(d.waiters) == 0 {
		return
	}
	snap := d.core.Snapshot()
	if snap.Debounce.Armed() || snap.State.IsPending {
		return
	}
	for _, ch := range d.waiters {
		close(ch)
	}
	d.waiters = nil
}

func (d *Driver) shutdown() {
	d.stopTimer()
	if d.release != nil {
		d.release()
		d.release = nil
	}
}
