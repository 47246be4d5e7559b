package commands

import (
	"context"

	"github.com/pixil98/go-hotelvisit/internal/display"
)

// LookHandlerFactory creates handlers that redraw the current room.
type LookHandlerFactory struct{}

func (f *LookHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *LookHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		nav := cmdCtx.Session.Navigator()
		view := display.NewRoomView(nav.Graph(), nav.State().CurrentRoom, cmdCtx.Session.Fade())
		return render(cmdCtx.Session, view)
	}, nil
}
