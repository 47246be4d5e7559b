package tour

import (
	"time"

	"go.opentelemetry.io/otel/trace"
)

type NavigatorOpt func(*Navigator)

// WithCommitDelay sets how long after acceptance a navigation commits.
func WithCommitDelay(d time.Duration) NavigatorOpt {
	return func(n *Navigator) {
		n.delay = d
	}
}

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) NavigatorOpt {
	return func(n *Navigator) {
		n.schedule = s
	}
}

// WithPublisher sets where navigation events are sent.
func WithPublisher(p Publisher) NavigatorOpt {
	return func(n *Navigator) {
		n.pub = p
	}
}

// WithTracer sets the tracer used for navigation spans.
func WithTracer(t trace.Tracer) NavigatorOpt {
	return func(n *Navigator) {
		n.tracer = t
	}
}
