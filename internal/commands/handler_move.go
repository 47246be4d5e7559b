package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/go-hotelvisit/internal/storage"
	"github.com/pixil98/go-hotelvisit/internal/tour"
)

// MoveHandlerFactory creates handlers that activate a hotspot of the
// current room.
// Config:
//   - direction (optional): the arrow to follow; without it the first
//     argument names the hotspot by number or direction
type MoveHandlerFactory struct{}

func (f *MoveHandlerFactory) ValidateConfig(config map[string]any) error {
	raw, ok := config["direction"]
	if !ok {
		return nil
	}

	direction, ok := raw.(string)
	if !ok || tour.Direction(direction).Glyph() == "" {
		return fmt.Errorf("direction must be one of left, right, up or down")
	}
	return nil
}

func (f *MoveHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	fixed, _ := config["direction"].(string)

	return func(ctx context.Context, cmdCtx *CommandContext) error {
		which := fixed
		if which == "" {
			if len(cmdCtx.Args) == 0 {
				return NewUserError("Go where? Give an arrow number or direction.")
			}
			which = strings.ToLower(cmdCtx.Args[0])
		}

		nav := cmdCtx.Session.Navigator()
		room := nav.Graph().Room(nav.State().CurrentRoom)

		h, err := findHotspot(room, which)
		if err != nil {
			return err
		}

		// Requests made during a transition are dropped without a word.
		nav.RequestNavigation(ctx, storage.Identifier(h.Target.Id()))
		return nil
	}, nil
}

// findHotspot picks a hotspot by 1-based number or by direction.
func findHotspot(room *tour.Room, which string) (tour.Hotspot, error) {
	if n, err := strconv.Atoi(which); err == nil {
		if n < 1 || n > len(room.Hotspots) {
			return tour.Hotspot{}, NewUserErrorf("There is no arrow %d here.", n)
		}
		return room.Hotspots[n-1], nil
	}

	for _, h := range room.Hotspots {
		if string(h.Direction) == which {
			return h, nil
		}
	}
	return tour.Hotspot{}, NewUserErrorf("You cannot go %s from here.", which)
}
