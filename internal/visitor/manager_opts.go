package visitor

import (
	"time"

	"github.com/pixil98/go-hotelvisit/internal/display"
	"github.com/pixil98/go-hotelvisit/internal/media"
	"go.opentelemetry.io/otel/trace"
)

type ManagerOpt func(*Manager)

func WithCommitDelay(d time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.commitDelay = d
	}
}

func WithFadeTimings(f display.FadeTimings) ManagerOpt {
	return func(m *Manager) {
		m.fade = f
	}
}

// WithSound sets the ambient media for new sessions. newController is
// called once per session; source names the track shown to the visitor.
func WithSound(newController func() media.Controller, source string) ManagerOpt {
	return func(m *Manager) {
		m.sound = newController
		m.soundSource = source
	}
}

func WithWelcome(tmpl string) ManagerOpt {
	return func(m *Manager) {
		m.welcome = tmpl
	}
}

func WithTracer(t trace.Tracer) ManagerOpt {
	return func(m *Manager) {
		m.tracer = t
	}
}
