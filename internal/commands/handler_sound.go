package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixil98/go-hotelvisit/internal/display"
	"github.com/pixil98/go-hotelvisit/internal/media"
)

// SoundHandlerFactory creates handlers that press the sound control.
type SoundHandlerFactory struct{}

func (f *SoundHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *SoundHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		s := cmdCtx.Session

		st, err := s.Sound().Toggle()
		switch {
		case errors.Is(err, media.ErrNoControl):
			return NewUserError("There is no sound control here.")
		case errors.Is(err, media.ErrPlayerNotReady):
			return NewUserError("The player is still loading, try again in a moment.")
		case err != nil:
			return fmt.Errorf("toggling sound: %w", err)
		}

		return render(s, display.SoundView{State: st, Source: s.SoundSource()})
	}, nil
}
