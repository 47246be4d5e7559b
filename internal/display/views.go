package display

import (
	"time"

	"github.com/pixil98/go-hotelvisit/internal/media"
	"github.com/pixil98/go-hotelvisit/internal/storage"
	"github.com/pixil98/go-hotelvisit/internal/tour"
)

// MapImage is the asset drawn behind the map buttons.
const MapImage = "/images/map.png"

// FadeTimings are the visual fade durations. They are presentation only
// and independent of the navigator's commit delay.
type FadeTimings struct {
	Room    time.Duration
	Overlay time.Duration
}

var DefaultFadeTimings = FadeTimings{
	Room:    800 * time.Millisecond,
	Overlay: 1000 * time.Millisecond,
}

// RoomLabel is the name shown for a room on buttons and headings.
func RoomLabel(id storage.Identifier, r *tour.Room) string {
	if r != nil && r.Name != "" {
		return r.Name
	}
	return Capitalize(id.String())
}

type HotspotView struct {
	Number int
	Glyph  string
	Icon   string
	Label  string
	Top    string
	Left   string
}

type RoomView struct {
	Id          storage.Identifier
	Label       string
	Description string
	Image       string
	Hotspots    []HotspotView
	Fade        FadeTimings
}

const roomText = `{{ .Label | upper }}
{{ with .Description }}{{ wordwrap . }}
{{ end }}[background {{ .Image }}, fades in over {{ .Fade.Room }}]
{{ range .Hotspots }}  {{ .Number }}. {{ .Glyph }} {{ .Label }}
{{ else }}  No arrows lead out of here. Type 'map' to pick a room.
{{ end }}`

var roomTmpl = mustParse("room", roomText)

// NewRoomView builds the view of a room in g.
func NewRoomView(g *tour.Graph, id storage.Identifier, fade FadeTimings) RoomView {
	r := g.Room(id)
	v := RoomView{
		Id:          id,
		Label:       RoomLabel(id, r),
		Description: r.Description,
		Image:       r.Image,
		Fade:        fade,
	}
	for i, h := range r.Hotspots {
		target := storage.Identifier(h.Target.Id())
		v.Hotspots = append(v.Hotspots, HotspotView{
			Number: i + 1,
			Glyph:  h.Direction.Glyph(),
			Icon:   h.Icon(),
			Label:  RoomLabel(target, h.Target.Get()),
			Top:    h.Top,
			Left:   h.Left,
		})
	}
	return v
}

// Render renders the room view.
func (v RoomView) Render() (string, error) {
	return execute(roomTmpl, v)
}

type MapButton struct {
	Id     storage.Identifier
	Label  string
	Active bool
}

type MapView struct {
	Image   string
	Buttons []MapButton
}

const mapText = `[map {{ .Image }}]
{{ range columns .Entries }}{{ . }}
{{ end }}Type 'goto <number|room>' to travel, 'close' to fold the map.
`

var mapTmpl = mustParse("map", mapText)

// NewMapView builds the map popup with the current room marked active.
func NewMapView(g *tour.Graph, current storage.Identifier) MapView {
	v := MapView{Image: MapImage}
	for _, id := range g.Ids() {
		v.Buttons = append(v.Buttons, MapButton{
			Id:     id,
			Label:  RoomLabel(id, g.Room(id)),
			Active: id == current,
		})
	}
	return v
}

// Entries returns the button captions, the active one starred.
func (v MapView) Entries() []string {
	entries := make([]string, 0, len(v.Buttons))
	for _, b := range v.Buttons {
		if b.Active {
			entries = append(entries, "*"+b.Label)
		} else {
			entries = append(entries, b.Label)
		}
	}
	return entries
}

// Render renders the map popup.
func (v MapView) Render() (string, error) {
	return execute(mapTmpl, v)
}

type FadeView struct {
	From string
	To   string
	Fade FadeTimings
}

const fadeText = `~ The view fades to black ({{ .Fade.Overlay }}) ~`

var fadeTmpl = mustParse("fade", fadeText)

// Render renders the overlay shown while a transition is pending.
func (v FadeView) Render() (string, error) {
	return execute(fadeTmpl, v)
}

type SoundView struct {
	State  media.AudioState
	Source string
}

const soundText = `{{ .State.Icon }} {{ if not .State.SoundEnabled }}Sound is off.{{ else if .State.Muted }}Sound muted.{{ else }}Sound on{{ with .Source }}: {{ . }}{{ end }}.{{ end }}`

var soundTmpl = mustParse("sound", soundText)

// Render renders the sound control.
func (v SoundView) Render() (string, error) {
	return execute(soundTmpl, v)
}
