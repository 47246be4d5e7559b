package display

import (
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-hotelvisit/internal/media"
	"github.com/pixil98/go-hotelvisit/internal/storage"
	"github.com/pixil98/go-hotelvisit/internal/tour"
	"github.com/pixil98/go-testutil"
)

type memStore map[storage.Identifier]*tour.Room

func (m memStore) Get(id string) *tour.Room {
	return m[storage.Identifier(id)]
}

func (m memStore) GetAll() map[storage.Identifier]*tour.Room {
	return m
}

func hotspot(target string, dir tour.Direction) tour.Hotspot {
	return tour.Hotspot{Target: storage.NewSmartIdentifier[*tour.Room](target), Direction: dir}
}

func newTestGraph(t *testing.T) *tour.Graph {
	t.Helper()
	g, err := tour.NewGraph(memStore{
		"reception": {
			Image:       "/images/reception.jpg",
			Description: "A marble desk.",
			Hotspots: []tour.Hotspot{
				hotspot("chambre", tour.DirectionRight),
				hotspot("restaurant", tour.DirectionLeft),
			},
		},
		"chambre":    {Image: "/images/chambre.jpg", Order: 1},
		"restaurant": {Name: "Le Restaurant", Image: "/images/restaurant.jpg", Order: 2},
	}, tour.DefaultStartRoom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestCapitalize(t *testing.T) {
	tests := map[string]struct {
		in  string
		exp string
	}{
		"single word":    {in: "chambre", exp: "Chambre"},
		"already upper":  {in: "Reception", exp: "Reception"},
		"keeps the rest": {in: "spaHall", exp: "SpaHall"},
		"several words":  {in: "salle de bain", exp: "Salle de bain"},
		"accented":       {in: "étage", exp: "Étage"},
		"empty":          {in: "", exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "label", Capitalize(tt.in), tt.exp)
		})
	}
}

func TestRoomLabel(t *testing.T) {
	testutil.AssertEqual(t, "from id", RoomLabel("chambre", &tour.Room{}), "Chambre")
	testutil.AssertEqual(t, "from name", RoomLabel("restaurant", &tour.Room{Name: "Le Restaurant"}), "Le Restaurant")
	testutil.AssertEqual(t, "nil room", RoomLabel("bar", nil), "Bar")
}

func TestColumns(t *testing.T) {
	tests := map[string]struct {
		items   []string
		expRows int
		expHas  []string
	}{
		"empty": {
			items:   nil,
			expRows: 0,
		},
		"one row per item when short": {
			items:   []string{"*Reception", "Chambre", "Restaurant"},
			expRows: 3,
			expHas:  []string{" 1. *Reception", " 2. Chambre", " 3. Restaurant"},
		},
		"wraps into columns": {
			items:   []string{"a", "b", "c", "d", "e", "f", "g"},
			expRows: 5,
			expHas:  []string{" 1. a", " 6. f"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rows := Columns(tt.items)
			testutil.AssertEqual(t, "rows", len(rows), tt.expRows)

			joined := strings.Join(rows, "\n")
			for _, s := range tt.expHas {
				if !strings.Contains(joined, s) {
					t.Errorf("output %q does not contain %q", joined, s)
				}
			}
			for _, r := range rows {
				if strings.HasSuffix(r, " ") {
					t.Errorf("row %q has trailing spaces", r)
				}
			}
		})
	}
}

func TestRoomView_Render(t *testing.T) {
	g := newTestGraph(t)

	tests := map[string]struct {
		room   storage.Identifier
		expHas []string
	}{
		"room with hotspots": {
			room: "reception",
			expHas: []string{
				"RECEPTION",
				"A marble desk.",
				"[background /images/reception.jpg, fades in over 800ms]",
				"1. → Chambre",
				"2. ← Le Restaurant",
			},
		},
		"room without hotspots": {
			room:   "chambre",
			expHas: []string{"CHAMBRE", "No arrows lead out of here"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := NewRoomView(g, tt.room, DefaultFadeTimings).Render()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, s := range tt.expHas {
				if !strings.Contains(out, s) {
					t.Errorf("output %q does not contain %q", out, s)
				}
			}
		})
	}
}

func TestNewRoomView_Hotspots(t *testing.T) {
	v := NewRoomView(newTestGraph(t), "reception", DefaultFadeTimings)

	testutil.AssertEqual(t, "hotspots", len(v.Hotspots), 2)
	testutil.AssertEqual(t, "icon", v.Hotspots[0].Icon, "/images/arrow-right.png")
	testutil.AssertEqual(t, "number", v.Hotspots[1].Number, 2)
}

func TestMapView(t *testing.T) {
	g := newTestGraph(t)

	for _, current := range g.Ids() {
		t.Run(current.String(), func(t *testing.T) {
			v := NewMapView(g, current)

			testutil.AssertEqual(t, "buttons", len(v.Buttons), len(g.Ids()))
			active := 0
			for i, b := range v.Buttons {
				testutil.AssertEqual(t, "button order", b.Id, g.Ids()[i])
				if b.Active {
					active++
					testutil.AssertEqual(t, "active button", b.Id, current)
				}
			}
			testutil.AssertEqual(t, "active count", active, 1)

			out, err := v.Render()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, "*"+RoomLabel(current, g.Room(current))) {
				t.Errorf("output %q does not mark %q active", out, current)
			}
			if !strings.Contains(out, MapImage) {
				t.Errorf("output %q does not contain map image", out)
			}
		})
	}
}

func TestFadeView_Render(t *testing.T) {
	out, err := FadeView{Fade: FadeTimings{Overlay: 2 * time.Second}}.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "fade", out, "~ The view fades to black (2s) ~")
}

func TestSoundView_Render(t *testing.T) {
	tests := map[string]struct {
		view SoundView
		exp  string
	}{
		"disabled": {
			view: SoundView{State: media.AudioState{Muted: true}},
			exp:  "🔇 Sound is off.",
		},
		"muted": {
			view: SoundView{State: media.AudioState{SoundEnabled: true, Muted: true}},
			exp:  "🔇 Sound muted.",
		},
		"playing": {
			view: SoundView{State: media.AudioState{SoundEnabled: true}, Source: "lobby.mp3"},
			exp:  "🔊 Sound on: lobby.mp3.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := tt.view.Render()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "output", out, tt.exp)
		})
	}
}

func TestExpandTemplate(t *testing.T) {
	tests := map[string]struct {
		tmpl   string
		data   any
		exp    string
		expErr bool
	}{
		"plain text": {
			tmpl: "Welcome",
			exp:  "Welcome",
		},
		"sprig and local funcs": {
			tmpl: `{{ capitalize .Hotel }} {{ "x" | repeat 3 }}`,
			data: map[string]string{"Hotel": "grand"},
			exp:  "Grand xxx",
		},
		"parse error": {
			tmpl:   "{{ .Hotel",
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := ExpandTemplate(tt.tmpl, tt.data)
			if tt.expErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "output", out, tt.exp)
		})
	}
}
