package visitor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-hotelvisit/internal/commands"
	"github.com/pixil98/go-hotelvisit/internal/display"
	"github.com/pixil98/go-hotelvisit/internal/media"
	"github.com/pixil98/go-hotelvisit/internal/messaging"
	"github.com/pixil98/go-hotelvisit/internal/telemetry"
	"github.com/pixil98/go-hotelvisit/internal/tour"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultWelcome is shown when a visitor connects.
const DefaultWelcome = `Welcome to the hotel! Your visit starts at the {{ .Start }}.
The hotel has {{ len .Rooms }} rooms: {{ .Rooms | join ", " }}.
Type 'help' to see what you can do.`

// Bus carries navigation events from a visitor's navigator back to their
// session.
type Bus interface {
	messaging.Publisher
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Manager creates a session for each connection and tracks the visitors
// currently in the hotel.
type Manager struct {
	graph      *tour.Graph
	cmdHandler *commands.Handler
	bus        Bus

	commitDelay time.Duration
	fade        display.FadeTimings
	sound       func() media.Controller
	soundSource string
	welcome     string
	tracer      trace.Tracer

	mu       sync.Mutex
	visitors map[string]*Visitor
}

func NewManager(g *tour.Graph, cmd *commands.Handler, bus Bus, opts ...ManagerOpt) *Manager {
	m := &Manager{
		graph:       g,
		cmdHandler:  cmd,
		bus:         bus,
		commitDelay: tour.DefaultCommitDelay,
		fade:        display.DefaultFadeTimings,
		sound:       func() media.Controller { return media.None{} },
		welcome:     DefaultWelcome,
		tracer:      telemetry.Tracer("visitor"),
		visitors:    map[string]*Visitor{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start waits for shutdown. Sessions end on their own when their listener
// cancels the connection context.
func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()
	slog.InfoContext(ctx, "visitor manager stopping", "visitors", m.Count())
	return nil
}

// Count returns the number of visitors currently connected.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.visitors)
}

// RunSession runs a visit over conn until the visitor quits, the
// connection drops or ctx is canceled.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	id := uuid.NewString()

	ctx, span := m.tracer.Start(ctx, "visitor.session",
		trace.WithAttributes(attribute.String("visitor.id", id)))
	defer span.End()

	v := &Visitor{
		id:          id,
		conn:        conn,
		cmdHandler:  m.cmdHandler,
		sound:       m.sound(),
		soundSource: m.soundSource,
		fade:        m.fade,
		msgs:        make(chan []byte, 16),
		done:        make(chan struct{}),
	}
	v.nav = tour.NewNavigator(m.graph,
		tour.WithCommitDelay(m.commitDelay),
		tour.WithPublisher(messaging.NewEventPublisher(m.bus, id)),
		tour.WithTracer(m.tracer),
	)

	unsub, err := m.bus.Subscribe(messaging.VisitorSubject(id), v.deliver)
	if err != nil {
		return fmt.Errorf("subscribing to visitor events: %w", err)
	}
	defer unsub()
	defer close(v.done)
	// No event is published once the session is over.
	defer v.nav.Close()

	m.mu.Lock()
	m.visitors[id] = v
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.visitors, id)
		m.mu.Unlock()
	}()

	slog.InfoContext(ctx, "visitor arrived", "visitor", id)
	defer slog.InfoContext(ctx, "visitor left", "visitor", id)

	welcome, err := m.welcomeText()
	if err != nil {
		return fmt.Errorf("rendering welcome: %w", err)
	}
	if err := v.WriteLine(welcome); err != nil {
		return err
	}

	return v.Play(ctx)
}

type welcomeData struct {
	Start string
	Rooms []string
}

func (m *Manager) welcomeText() (string, error) {
	data := welcomeData{
		Start: display.RoomLabel(m.graph.Start(), m.graph.Room(m.graph.Start())),
	}
	for _, id := range m.graph.Ids() {
		data.Rooms = append(data.Rooms, display.RoomLabel(id, m.graph.Room(id)))
	}
	return display.ExpandTemplate(m.welcome, data)
}
