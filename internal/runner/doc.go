// Package runner drives a selectbox.Core without a terminal.
//
// A Driver owns the core on one goroutine and carries out the effects it
// returns: debounce timers become time.AfterFunc callbacks, fetches run on
// their own goroutines, and both report back by posting events to the
// driver. Results arriving after Stop are dropped; the core itself also
// ignores anything delivered after Unmount.
//
//	d := runner.New(core, runner.Options{})
//	if err := d.Start(ctx); err != nil {
//	    return err
//	}
//	defer d.Stop()
//	_ = d.Send(selectbox.SearchInput{Term: "fra"})
//	_ = d.WaitIdle(ctx)
//	view, _ := d.View()
package runner
