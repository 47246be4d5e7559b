package tour

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-hotelvisit/internal/storage"
	"github.com/pixil98/go-hotelvisit/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultCommitDelay is the time between accepting a navigation and
// applying it.
const DefaultCommitDelay = 1000 * time.Millisecond

// NavigationState is a visitor's position in the graph.
type NavigationState struct {
	CurrentRoom   storage.Identifier
	Transitioning bool
}

// Navigator owns one visitor's NavigationState. At most one navigation is
// in flight at a time: requests made while transitioning are dropped.
type Navigator struct {
	graph    *Graph
	delay    time.Duration
	schedule Scheduler
	pub      Publisher
	tracer   trace.Tracer

	mu      sync.Mutex
	state   NavigationState
	pending Timer
	closed  bool
}

// NewNavigator returns a navigator positioned in the graph's start room.
func NewNavigator(g *Graph, opts ...NavigatorOpt) *Navigator {
	n := &Navigator{
		graph:    g,
		delay:    DefaultCommitDelay,
		schedule: AfterFunc,
		tracer:   telemetry.Tracer("tour"),
		state: NavigationState{
			CurrentRoom: g.Start(),
		},
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// State returns a snapshot of the navigation state.
func (n *Navigator) State() NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Graph returns the graph being navigated.
func (n *Navigator) Graph() *Graph {
	return n.graph
}

// CommitDelay returns the configured commit delay.
func (n *Navigator) CommitDelay() time.Duration {
	return n.delay
}

// RequestNavigation asks to move to target and reports whether the request
// was accepted. A request made while a transition is in flight, or after
// Close, is dropped. Navigating to the current room is accepted and runs
// the full cycle. target must be a room in the graph.
func (n *Navigator) RequestNavigation(ctx context.Context, target storage.Identifier) bool {
	n.graph.Room(target)

	ctx, span := n.tracer.Start(ctx, "navigation.request",
		trace.WithAttributes(attribute.String("room.target", target.String())),
	)
	defer span.End()

	n.mu.Lock()
	if n.closed || n.state.Transitioning {
		n.mu.Unlock()
		span.SetAttributes(attribute.Bool("navigation.accepted", false))
		return false
	}

	n.state.Transitioning = true
	from := n.state.CurrentRoom
	n.publish(ctx, Event{Kind: EventTransitionStarted, From: from, To: target, At: time.Now()})

	link := trace.LinkFromContext(ctx)
	n.pending = n.schedule(n.delay, func() {
		n.commit(link, from, target)
	})
	n.mu.Unlock()

	span.SetAttributes(
		attribute.Bool("navigation.accepted", true),
		attribute.String("room.from", from.String()),
	)
	return true
}

func (n *Navigator) commit(link trace.Link, from, target storage.Identifier) {
	ctx, span := n.tracer.Start(context.Background(), "navigation.commit",
		trace.WithLinks(link),
		trace.WithAttributes(attribute.String("room.target", target.String())),
	)
	defer span.End()

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.state.CurrentRoom = target
	n.state.Transitioning = false
	n.pending = nil
	n.publish(ctx, Event{Kind: EventTransitionCommitted, From: from, To: target, At: time.Now()})
	n.mu.Unlock()
}

// Close stops any pending commit and drops all later requests. The state
// is left as it was when Close was called.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
}

func (n *Navigator) publish(ctx context.Context, ev Event) {
	if n.pub == nil {
		return
	}
	if err := n.pub.PublishEvent(ev); err != nil {
		slog.WarnContext(ctx, "publishing navigation event", "kind", ev.Kind, "room", ev.To, "error", err)
	}
}
