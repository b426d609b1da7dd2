package proofreader

import (
	"context"
	"errors"
)

// ErrLoopStopped is returned by Do once Run has returned
var ErrLoopStopped = errors.New("event loop stopped")

// Loop runs events one at a time on a single goroutine. Every operation on a
// Proofreader served from several goroutines goes through its Loop, so the
// widget state only ever has one writer.
type Loop struct {
	events  chan func()
	stopped chan struct{}
}

// NewLoop creates a loop. Nothing runs until Run is called.
func NewLoop() *Loop {
	return &Loop{
		events:  make(chan func()),
		stopped: make(chan struct{}),
	}
}

// Run processes events until ctx is done. An event that has been picked up
// always completes before the next one starts.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		}
	}
}

// Do runs fn on the loop and waits for it to finish
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	event := func() {
		defer close(done)
		fn()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrLoopStopped
	case l.events <- event:
	}

	// Accepted events always run to completion
	<-done
	return nil
}
