package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/go-hotelvisit/internal/display"
	"github.com/pixil98/go-hotelvisit/internal/storage"
	"github.com/pixil98/go-hotelvisit/internal/tour"
)

// MapHandlerFactory creates handlers that open or close the map popup.
// Config:
//   - open (required): true to open the popup, false to close it
type MapHandlerFactory struct{}

func (f *MapHandlerFactory) ValidateConfig(config map[string]any) error {
	if _, ok := config["open"].(bool); !ok {
		return fmt.Errorf("open is required")
	}
	return nil
}

func (f *MapHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	open, _ := config["open"].(bool)

	return func(ctx context.Context, cmdCtx *CommandContext) error {
		s := cmdCtx.Session

		if !open {
			if !s.MapOpen() {
				return NewUserError("The map is not open.")
			}
			s.SetMapOpen(false)
			return s.WriteLine("You fold the map away.")
		}

		s.SetMapOpen(true)
		nav := s.Navigator()
		return render(s, display.NewMapView(nav.Graph(), nav.State().CurrentRoom))
	}, nil
}

// GotoHandlerFactory creates handlers that press a button on the open map.
type GotoHandlerFactory struct{}

func (f *GotoHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *GotoHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		s := cmdCtx.Session
		if !s.MapOpen() {
			return NewUserError("Open the map first (type 'map').")
		}
		if len(cmdCtx.Args) == 0 {
			return NewUserError("Go to which room?")
		}

		nav := s.Navigator()
		id, err := findRoom(nav.Graph(), strings.Join(cmdCtx.Args, " "))
		if err != nil {
			return err
		}

		// The current room is a valid choice and replays the fade.
		nav.RequestNavigation(ctx, id)
		return nil
	}, nil
}

// findRoom resolves a map button by 1-based number, room id or label.
func findRoom(g *tour.Graph, which string) (storage.Identifier, error) {
	ids := g.Ids()

	if n, err := strconv.Atoi(which); err == nil {
		if n < 1 || n > len(ids) {
			return "", NewUserErrorf("There is no button %d on the map.", n)
		}
		return ids[n-1], nil
	}

	for _, id := range ids {
		if strings.EqualFold(id.String(), which) || strings.EqualFold(display.RoomLabel(id, g.Room(id)), which) {
			return id, nil
		}
	}
	return "", NewUserErrorf("There is no room called %q on the map.", which)
}
