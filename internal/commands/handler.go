package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-hotelvisit/internal/display"
	"github.com/pixil98/go-hotelvisit/internal/media"
	"github.com/pixil98/go-hotelvisit/internal/storage"
	"github.com/pixil98/go-hotelvisit/internal/tour"
)

// Session is the visitor-facing side of a visit that commands act on.
// Commands never change navigation state directly; they go through the
// Navigator.
type Session interface {
	Navigator() *tour.Navigator
	Sound() media.Controller
	SoundSource() string
	Fade() display.FadeTimings
	MapOpen() bool
	SetMapOpen(open bool)
	WriteLine(msg string) error
	Quit()
}

// CommandContext is what a compiled command receives when it runs.
type CommandContext struct {
	Session Session
	Name    string
	Args    []string
}

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// HandlerFactory creates CommandFuncs from command configurations.
type HandlerFactory interface {
	// ValidateConfig validates that the config contains required fields.
	ValidateConfig(config map[string]any) error
	// Create creates a CommandFunc from the validated config.
	Create(config map[string]any) (CommandFunc, error)
}

// compiledCommand holds a command that's been validated and compiled.
type compiledCommand struct {
	cmd     *Command
	cmdFunc CommandFunc
}

type Handler struct {
	store     storage.Storer[*Command]
	factories map[string]HandlerFactory
	compiled  map[storage.Identifier]*compiledCommand
}

func NewHandler(c storage.Storer[*Command]) *Handler {
	h := &Handler{
		store:     c,
		factories: make(map[string]HandlerFactory),
		compiled:  make(map[storage.Identifier]*compiledCommand),
	}

	// Built-in handlers; the names match the "handler" field of command assets.
	_ = h.RegisterFactory("look", &LookHandlerFactory{})
	_ = h.RegisterFactory("move", &MoveHandlerFactory{})
	_ = h.RegisterFactory("map", &MapHandlerFactory{})
	_ = h.RegisterFactory("goto", &GotoHandlerFactory{})
	_ = h.RegisterFactory("sound", &SoundHandlerFactory{})
	_ = h.RegisterFactory("help", NewHelpHandlerFactory(c))
	_ = h.RegisterFactory("quit", &QuitHandlerFactory{})
	return h
}

// RegisterFactory registers a handler factory by name.
// The name must match the "handler" field in command asset definitions.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// CompileAll compiles all commands from the store.
// Call this after all handler factories have been registered.
func (h *Handler) CompileAll() error {
	for id, cmd := range h.store.GetAll() {
		err := h.compile(id, cmd)
		if err != nil {
			return fmt.Errorf("compiling command %q: %w", id, err)
		}
	}
	return nil
}

func (h *Handler) compile(id storage.Identifier, cmd *Command) error {
	factory, ok := h.factories[cmd.Handler]
	if !ok {
		return fmt.Errorf("unknown handler %q", cmd.Handler)
	}

	if err := factory.ValidateConfig(cmd.Config); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	cmdFunc, err := factory.Create(cmd.Config)
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}

	h.compiled[id] = &compiledCommand{
		cmd:     cmd,
		cmdFunc: cmdFunc,
	}
	return nil
}

// Exec parses a line of visitor input and runs the named command.
// Blank lines are ignored.
func (h *Handler) Exec(ctx context.Context, s Session, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	name := strings.ToLower(parts[0])
	compiled, ok := h.compiled[storage.Identifier(name)]
	if !ok {
		return NewUserErrorf("Unknown command: %s", parts[0])
	}

	return compiled.cmdFunc(ctx, &CommandContext{
		Session: s,
		Name:    name,
		Args:    parts[1:],
	})
}

// render writes a rendered view to the session.
func render(s Session, v interface{ Render() (string, error) }) error {
	out, err := v.Render()
	if err != nil {
		return fmt.Errorf("rendering view: %w", err)
	}
	return s.WriteLine(out)
}
