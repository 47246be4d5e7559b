package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-hotelvisit/internal/media"
	"github.com/pixil98/go-hotelvisit/internal/visitor"
)

type MediaMode string

const (
	MediaModeNone     MediaMode = "none"
	MediaModeAutoplay MediaMode = "autoplay"
	MediaModeGated    MediaMode = "gated"
)

func (m *MediaMode) UnmarshalText(text []byte) error {
	switch mode := MediaMode(text); mode {
	case MediaModeNone, MediaModeAutoplay, MediaModeGated:
		*m = mode
	default:
		return fmt.Errorf("unknown media mode: %s", text)
	}
	return nil
}

type MediaConfig struct {
	Mode   MediaMode `json:"mode"`
	Source string    `json:"source"`
	Volume *float64  `json:"volume,omitempty"`
}

func (c *MediaConfig) validate() error {
	el := errors.NewErrorList()

	if c.Mode != "" && c.Mode != MediaModeNone && c.Source == "" {
		el.Add(fmt.Errorf("media source is required for mode %s", c.Mode))
	}
	if c.Volume != nil && (*c.Volume < 0 || *c.Volume > 1) {
		el.Add(fmt.Errorf("media volume must be between 0 and 1"))
	}

	return el.Err()
}

func (c *MediaConfig) volume() float64 {
	if c.Volume == nil {
		return media.DefaultVolume
	}
	return *c.Volume
}

// ManagerOpt selects the ambient media for every session.
func (c *MediaConfig) ManagerOpt() visitor.ManagerOpt {
	vol := c.volume()

	switch c.Mode {
	case MediaModeAutoplay:
		return visitor.WithSound(func() media.Controller { return media.NewAutoplay(vol) }, c.Source)
	case MediaModeGated:
		return visitor.WithSound(func() media.Controller { return media.NewGated(vol) }, c.Source)
	default:
		return visitor.WithSound(func() media.Controller { return media.None{} }, "")
	}
}
