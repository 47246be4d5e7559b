package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-hotelvisit/internal/display"
	"github.com/pixil98/go-hotelvisit/internal/storage"
	"github.com/pixil98/go-hotelvisit/internal/tour"
	"github.com/pixil98/go-hotelvisit/internal/visitor"
)

type TourConfig struct {
	StartRoom   string `json:"start_room"`
	CommitDelay string `json:"commit_delay"`
	RoomFade    string `json:"room_fade"`
	OverlayFade string `json:"overlay_fade"`
	Welcome     string `json:"welcome"`
}

func (c *TourConfig) validate() error {
	el := errors.NewErrorList()

	for name, v := range map[string]string{
		"commit_delay": c.CommitDelay,
		"room_fade":    c.RoomFade,
		"overlay_fade": c.OverlayFade,
	} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing %s: %w", name, err))
		} else if d < 0 {
			el.Add(fmt.Errorf("%s must not be negative", name))
		}
	}

	if c.Welcome != "" {
		if err := display.CheckTemplate(c.Welcome); err != nil {
			el.Add(fmt.Errorf("parsing welcome: %w", err))
		}
	}

	return el.Err()
}

// BuildGraph builds the room graph, starting at start_room or the
// reception.
func (c *TourConfig) BuildGraph(rooms storage.Storer[*tour.Room]) (*tour.Graph, error) {
	start := storage.Identifier(c.StartRoom)
	if start == "" {
		start = tour.DefaultStartRoom
	}
	return tour.NewGraph(rooms, start)
}

// ManagerOpts converts the timings and welcome text to visitor options.
func (c *TourConfig) ManagerOpts() ([]visitor.ManagerOpt, error) {
	var opts []visitor.ManagerOpt

	if c.CommitDelay != "" {
		d, err := time.ParseDuration(c.CommitDelay)
		if err != nil {
			return nil, fmt.Errorf("parsing commit_delay: %w", err)
		}
		opts = append(opts, visitor.WithCommitDelay(d))
	}

	fade := display.DefaultFadeTimings
	if c.RoomFade != "" {
		d, err := time.ParseDuration(c.RoomFade)
		if err != nil {
			return nil, fmt.Errorf("parsing room_fade: %w", err)
		}
		fade.Room = d
	}
	if c.OverlayFade != "" {
		d, err := time.ParseDuration(c.OverlayFade)
		if err != nil {
			return nil, fmt.Errorf("parsing overlay_fade: %w", err)
		}
		fade.Overlay = d
	}
	opts = append(opts, visitor.WithFadeTimings(fade))

	if c.Welcome != "" {
		opts = append(opts, visitor.WithWelcome(c.Welcome))
	}

	return opts, nil
}
