// Package memory provides an in-process notification publisher that records
// events. Used by tests and by local runs that want to inspect the outbound
// stream.
package memory

import (
	"context"
	"sync"

	"trustgate/internal/notification"
)

type Recorder struct {
	mu     sync.Mutex
	events []notification.Event
	err    error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Name() string { return "memory" }

func (r *Recorder) Publish(_ context.Context, event notification.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

// FailWith makes every subsequent Publish return err (nil to recover).
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []notification.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification.Event{}, r.events...)
}

// OfType filters recorded events by type.
func (r *Recorder) OfType(t notification.EventType) []notification.Event {
	var out []notification.Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
