package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-hotelvisit/internal/display"
	"github.com/pixil98/go-hotelvisit/internal/media"
	"github.com/pixil98/go-hotelvisit/internal/storage"
	"github.com/pixil98/go-hotelvisit/internal/telemetry"
	"github.com/pixil98/go-hotelvisit/internal/tour"
	"github.com/pixil98/go-testutil"
)

type roomStore map[storage.Identifier]*tour.Room

func (m roomStore) Get(id string) *tour.Room {
	return m[storage.Identifier(id)]
}

func (m roomStore) GetAll() map[storage.Identifier]*tour.Room {
	return m
}

type commandStore map[storage.Identifier]*Command

func (m commandStore) Get(id string) *Command {
	return m[storage.Identifier(id)]
}

func (m commandStore) GetAll() map[storage.Identifier]*Command {
	return m
}

func hotspot(target string, dir tour.Direction) tour.Hotspot {
	return tour.Hotspot{Target: storage.NewSmartIdentifier[*tour.Room](target), Direction: dir}
}

func newTestGraph(t *testing.T) *tour.Graph {
	t.Helper()
	g, err := tour.NewGraph(roomStore{
		"reception": {
			Image: "/images/reception.jpg",
			Hotspots: []tour.Hotspot{
				hotspot("chambre", tour.DirectionRight),
				hotspot("restaurant", tour.DirectionLeft),
			},
		},
		"chambre": {
			Image:    "/images/chambre.jpg",
			Order:    1,
			Hotspots: []tour.Hotspot{hotspot("reception", tour.DirectionLeft)},
		},
		"restaurant": {
			Image:    "/images/restaurant.jpg",
			Order:    2,
			Hotspots: []tour.Hotspot{hotspot("reception", tour.DirectionRight)},
		},
	}, tour.DefaultStartRoom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func testCommands() commandStore {
	return commandStore{
		"look":  {Handler: "look", Category: "looking"},
		"go":    {Handler: "move", Category: "moving", Usage: "go <number|direction>", Description: "Follow an arrow."},
		"left":  {Handler: "move", Category: "moving", Config: map[string]any{"direction": "left"}},
		"right": {Handler: "move", Category: "moving", Config: map[string]any{"direction": "right"}},
		"map":   {Handler: "map", Category: "moving", Config: map[string]any{"open": true}},
		"close": {Handler: "map", Category: "moving", Config: map[string]any{"open": false}},
		"goto":  {Handler: "goto", Category: "moving"},
		"sound": {Handler: "sound", Category: "other"},
		"help":  {Handler: "help", Category: "other"},
		"quit":  {Handler: "quit", Category: "other"},
	}
}

// pendingScheduler holds deferred commits until the test fires them.
type pendingScheduler struct {
	funcs []func()
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

func (s *pendingScheduler) Schedule(d time.Duration, f func()) tour.Timer {
	s.funcs = append(s.funcs, f)
	return noopTimer{}
}

func (s *pendingScheduler) fireAll() {
	funcs := s.funcs
	s.funcs = nil
	for _, f := range funcs {
		f()
	}
}

type fakeSession struct {
	nav     *tour.Navigator
	sound   media.Controller
	mapOpen bool
	quit    bool
	lines   []string
}

func (s *fakeSession) Navigator() *tour.Navigator { return s.nav }
func (s *fakeSession) Sound() media.Controller { return s.sound }
func (s *fakeSession) SoundSource() string { return "ambiance.mp3" }
func (s *fakeSession) Fade() display.FadeTimings { return display.DefaultFadeTimings }
func (s *fakeSession) MapOpen() bool { return s.mapOpen }
func (s *fakeSession) SetMapOpen(open bool) { s.mapOpen = open }
func (s *fakeSession) Quit() { s.quit = true }
func (s *fakeSession) WriteLine(msg string) error {
	s.lines = append(s.lines, msg)
	return nil
}

func (s *fakeSession) output() string {
	return strings.Join(s.lines, "\n")
}

type recordingPlayer struct {
	calls []string
}

func (p *recordingPlayer) Play() error {
	p.calls = append(p.calls, "play")
	return nil
}

func (p *recordingPlayer) SetVolume(v float64) error {
	p.calls = append(p.calls, "setVolume")
	return nil
}

func (p *recordingPlayer) Mute() error {
	p.calls = append(p.calls, "mute")
	return nil
}

func (p *recordingPlayer) Unmute() error {
	p.calls = append(p.calls, "unmute")
	return nil
}

func (p *recordingPlayer) count(cmd string) int {
	n := 0
	for _, c := range p.calls {
		if c == cmd {
			n++
		}
	}
	return n
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h := NewHandler(testCommands())
	if err := h.CompileAll(); err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	return h
}

func newTestSession(t *testing.T) (*fakeSession, *pendingScheduler) {
	t.Helper()
	sched := &pendingScheduler{}
	nav := tour.NewNavigator(newTestGraph(t),
		tour.WithScheduler(sched.Schedule),
		tour.WithTracer(telemetry.NoopTracer()),
	)
	return &fakeSession{nav: nav, sound: media.None{}}, sched
}

func expectUserError(t *testing.T, err error, contains string) {
	t.Helper()
	var userErr *UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected UserError containing %q, got %v", contains, err)
	}
	if !strings.Contains(userErr.Message, contains) {
		t.Errorf("user error %q does not contain %q", userErr.Message, contains)
	}
}

func TestHandler_CompileAll(t *testing.T) {
	tests := map[string]struct {
		cmds   commandStore
		expErr string
	}{
		"valid commands": {
			cmds: testCommands(),
		},
		"unknown handler": {
			cmds:   commandStore{"dance": {Handler: "dance"}},
			expErr: `unknown handler "dance"`,
		},
		"bad move direction": {
			cmds:   commandStore{"north": {Handler: "move", Config: map[string]any{"direction": "north"}}},
			expErr: "direction must be one of",
		},
		"map without open flag": {
			cmds:   commandStore{"map": {Handler: "map"}},
			expErr: "open is required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := NewHandler(tt.cmds).CompileAll()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestHandler_RegisterFactory(t *testing.T) {
	h := NewHandler(commandStore{})

	testutil.AssertEqual(t, "empty name", h.RegisterFactory("", &QuitHandlerFactory{}) != nil, true)
	testutil.AssertEqual(t, "nil factory", h.RegisterFactory("x", nil) != nil, true)
	testutil.AssertEqual(t, "duplicate", h.RegisterFactory("quit", &QuitHandlerFactory{}) != nil, true)
	testutil.AssertEqual(t, "new name", h.RegisterFactory("leave", &QuitHandlerFactory{}) != nil, false)
}

func TestHandler_Exec_Unknown(t *testing.T) {
	h := newTestHandler(t)
	s, _ := newTestSession(t)

	expectUserError(t, h.Exec(context.Background(), s, "dance wildly"), "Unknown command: dance")
	testutil.AssertEqual(t, "blank line", h.Exec(context.Background(), s, "   ") != nil, false)
}

func TestHandler_Exec_Look(t *testing.T) {
	h := newTestHandler(t)
	s, _ := newTestSession(t)

	err := h.Exec(context.Background(), s, "LOOK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(s.output(), "RECEPTION") || !strings.Contains(s.output(), "1. → Chambre") {
		t.Errorf("unexpected look output %q", s.output())
	}
}

func TestHandler_Exec_Move(t *testing.T) {
	tests := map[string]struct {
		line    string
		expRoom storage.Identifier
		expErr  string
	}{
		"by number":       {line: "go 1", expRoom: "chambre"},
		"by direction":    {line: "go left", expRoom: "restaurant"},
		"by alias":        {line: "right", expRoom: "chambre"},
		"no argument":     {line: "go", expErr: "Go where?"},
		"number too high": {line: "go 3", expErr: "There is no arrow 3 here."},
		"no such arrow":   {line: "go up", expErr: "You cannot go up from here."},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHandler(t)
			s, sched := newTestSession(t)

			err := h.Exec(context.Background(), s, tt.line)
			if tt.expErr != "" {
				expectUserError(t, err, tt.expErr)
				testutil.AssertEqual(t, "transitioning", s.nav.State().Transitioning, false)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "transitioning", s.nav.State().Transitioning, true)
			sched.fireAll()
			testutil.AssertEqual(t, "room", s.nav.State().CurrentRoom, tt.expRoom)
		})
	}
}

func TestHandler_Exec_DoubleClickKeepsFirst(t *testing.T) {
	h := newTestHandler(t)
	s, sched := newTestSession(t)

	for _, line := range []string{"right", "left"} {
		if err := h.Exec(context.Background(), s, line); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	testutil.AssertEqual(t, "scheduled commits", len(sched.funcs), 1)
	sched.fireAll()
	testutil.AssertEqual(t, "room", s.nav.State().CurrentRoom, storage.Identifier("chambre"))
}

func TestHandler_Exec_Map(t *testing.T) {
	h := newTestHandler(t)
	s, sched := newTestSession(t)
	ctx := context.Background()

	expectUserError(t, h.Exec(ctx, s, "goto chambre"), "Open the map first")
	expectUserError(t, h.Exec(ctx, s, "close"), "The map is not open.")

	if err := h.Exec(ctx, s, "map"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "map open", s.mapOpen, true)
	if !strings.Contains(s.output(), "*Reception") {
		t.Errorf("expected active reception button in %q", s.output())
	}

	if err := h.Exec(ctx, s, "goto 3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "transitioning", s.nav.State().Transitioning, true)

	// The popup can be handled while the transition is pending.
	if err := h.Exec(ctx, s, "close"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "map open", s.mapOpen, false)

	sched.fireAll()
	testutil.AssertEqual(t, "room", s.nav.State().CurrentRoom, storage.Identifier("restaurant"))
}

func TestHandler_Exec_Goto(t *testing.T) {
	tests := map[string]struct {
		line    string
		expRoom storage.Identifier
		expErr  string
	}{
		"by id":               {line: "goto chambre", expRoom: "chambre"},
		"by label":            {line: "goto Restaurant", expRoom: "restaurant"},
		"by number":           {line: "goto 2", expRoom: "chambre"},
		"current room":        {line: "goto reception", expRoom: "reception"},
		"unknown room":        {line: "goto cave", expErr: `There is no room called "cave"`},
		"button out of range": {line: "goto 9", expErr: "There is no button 9"},
		"missing argument":    {line: "goto", expErr: "Go to which room?"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHandler(t)
			s, sched := newTestSession(t)
			s.mapOpen = true

			err := h.Exec(context.Background(), s, tt.line)
			if tt.expErr != "" {
				expectUserError(t, err, tt.expErr)
				testutil.AssertEqual(t, "scheduled", len(sched.funcs), 0)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Every accepted button press runs the full cycle.
			testutil.AssertEqual(t, "transitioning", s.nav.State().Transitioning, true)
			sched.fireAll()
			testutil.AssertEqual(t, "room", s.nav.State().CurrentRoom, tt.expRoom)
			testutil.AssertEqual(t, "transitioning", s.nav.State().Transitioning, false)
		})
	}
}

func TestHandler_Exec_Sound(t *testing.T) {
	t.Run("no control", func(t *testing.T) {
		h := newTestHandler(t)
		s, _ := newTestSession(t)
		expectUserError(t, h.Exec(context.Background(), s, "sound"), "There is no sound control here.")
	})

	t.Run("gated before ready", func(t *testing.T) {
		h := newTestHandler(t)
		s, _ := newTestSession(t)
		s.sound = media.NewGated(media.DefaultVolume)
		expectUserError(t, h.Exec(context.Background(), s, "sound"), "still loading")
	})

	t.Run("gated enable then mute", func(t *testing.T) {
		h := newTestHandler(t)
		s, _ := newTestSession(t)
		gated := media.NewGated(media.DefaultVolume)
		p := &recordingPlayer{}
		gated.OnReady(p)
		s.sound = gated

		testutil.AssertEqual(t, "unmutes before gesture", p.count("unmute"), 0)

		if err := h.Exec(context.Background(), s, "sound"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "unmutes after gesture", p.count("unmute"), 1)
		testutil.AssertEqual(t, "output", s.lines[len(s.lines)-1], "🔊 Sound on: ambiance.mp3.")

		if err := h.Exec(context.Background(), s, "sound"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "mutes", p.count("mute"), 1)
		testutil.AssertEqual(t, "output", s.lines[len(s.lines)-1], "🔇 Sound muted.")
	})
}

func TestHandler_Exec_Help(t *testing.T) {
	h := newTestHandler(t)
	s, _ := newTestSession(t)
	ctx := context.Background()

	if err := h.Exec(ctx, s, "help"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := s.output()
	for _, exp := range []string{"Available commands:", "Moving: close, go, goto, left, map, right", "Looking: look"} {
		if !strings.Contains(out, exp) {
			t.Errorf("help output %q does not contain %q", out, exp)
		}
	}

	if err := h.Exec(ctx, s, "help go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "command help", s.lines[len(s.lines)-1], "go: Follow an arrow.\nUsage: go <number|direction>")

	expectUserError(t, h.Exec(ctx, s, "help dance"), `Command "dance" is unknown.`)
}

func TestHandler_Exec_Quit(t *testing.T) {
	h := newTestHandler(t)
	s, _ := newTestSession(t)

	if err := h.Exec(context.Background(), s, "quit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "quit", s.quit, true)
}

func TestCommand_Validate(t *testing.T) {
	testutil.AssertEqual(t, "missing handler", (&Command{}).Validate() != nil, true)
	testutil.AssertEqual(t, "valid", (&Command{Handler: "look"}).Validate() != nil, false)
}
