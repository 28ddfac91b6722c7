package testutil

import (
	"context"
	"sync"

	"github.com/vk/loki/internal/action"
)

// Recorder collects the order in which fake actions execute.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *Recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

// Events returns the names of executed actions, in execution order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Count returns how many times name executed.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, e := range r.Events() {
		if e == name {
			n++
		}
	}
	return n
}

// FakeAction satisfies action.Action and records each execution.
type FakeAction struct {
	Name string
	As   action.Kind
	Code int
	Err  error
	Rec  *Recorder
}

// Execute records the call and returns the configured outcome.
func (a *FakeAction) Execute(context.Context) (int, error) {
	if a.Rec != nil {
		a.Rec.add(a.Name)
	}
	return a.Code, a.Err
}

// Describe returns the action's name.
func (a *FakeAction) Describe() string {
	return a.Name
}

// Kind returns As.
func (a *FakeAction) Kind() action.Kind {
	return a.As
}
