package tour

import (
	"time"

	"github.com/pixil98/go-hotelvisit/internal/storage"
)

type EventKind string

const (
	EventTransitionStarted   EventKind = "transition_started"
	EventTransitionCommitted EventKind = "transition_committed"
)

// Event describes a change in a navigator's state.
type Event struct {
	Kind EventKind          `json:"kind"`
	From storage.Identifier `json:"from"`
	To   storage.Identifier `json:"to"`
	At   time.Time          `json:"at"`
}

// Publisher receives navigator events. PublishEvent is called with the
// navigator's lock held, so it must not block or call back into it.
type Publisher interface {
	PublishEvent(Event) error
}

// Timer is a pending deferred call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d without blocking the caller. f must not
// run before the Scheduler returns.
type Scheduler func(d time.Duration, f func()) Timer

// AfterFunc is the wall-clock Scheduler.
func AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
