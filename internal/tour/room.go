package tour

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-hotelvisit/internal/storage"
)

// Direction is the glyph a hotspot is drawn with.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

var glyphs = map[Direction]string{
	DirectionLeft:  "←",
	DirectionRight: "→",
	DirectionUp:    "↑",
	DirectionDown:  "↓",
}

// Glyph returns the arrow drawn for the direction.
func (d Direction) Glyph() string {
	return glyphs[d]
}

func (d Direction) valid() bool {
	_, ok := glyphs[d]
	return ok
}

// Hotspot is a clickable, directed edge from the room that owns it to Target.
type Hotspot struct {
	Target    storage.SmartIdentifier[*Room] `json:"target" yaml:"target"`
	Direction Direction                      `json:"direction" yaml:"direction"`
	Top       string                         `json:"top" yaml:"top"`
	Left      string                         `json:"left" yaml:"left"`
}

// Icon returns the arrow asset reference for the hotspot.
func (h Hotspot) Icon() string {
	return fmt.Sprintf("/images/arrow-%s.png", h.Direction)
}

// Room is a navigable scene. Rooms are immutable once the graph is built.
type Room struct {
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string    `json:"image" yaml:"image"`
	Order       int       `json:"order" yaml:"order"`
	Hotspots    []Hotspot `json:"hotspots,omitempty" yaml:"hotspots,omitempty"`
}

// Validate satisfies storage.ValidatingSpec. Hotspot targets are checked
// against the other rooms when the graph is built.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Image == "" {
		el.Add(fmt.Errorf("image is required"))
	}

	for i, h := range r.Hotspots {
		if err := h.Target.Validate(); err != nil {
			el.Add(fmt.Errorf("hotspot %d: %w", i, err))
		}
		if !h.Direction.valid() {
			el.Add(fmt.Errorf("hotspot %d: unknown direction %q", i, h.Direction))
		}
	}

	return el.Err()
}

// resolve binds every hotspot target to its room.
func (r *Room) resolve(rooms storage.Storer[*Room]) error {
	el := errors.NewErrorList()
	for i := range r.Hotspots {
		if err := r.Hotspots[i].Target.Resolve(rooms); err != nil {
			el.Add(fmt.Errorf("hotspot %d: %w", i, err))
		}
	}
	return el.Err()
}
