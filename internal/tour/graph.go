package tour

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-hotelvisit/internal/storage"
)

// DefaultStartRoom is the room every visit begins in.
const DefaultStartRoom storage.Identifier = "reception"

// Graph is the fixed set of rooms and the hotspots between them.
// It has no mutating methods and is safe to share between visitors.
type Graph struct {
	rooms map[storage.Identifier]*Room
	order []storage.Identifier
	start storage.Identifier
}

// NewGraph builds the graph from a room store, resolving every hotspot
// target. Dangling targets and a missing start room are reported together.
func NewGraph(rooms storage.Storer[*Room], start storage.Identifier) (*Graph, error) {
	all := rooms.GetAll()
	if len(all) == 0 {
		return nil, fmt.Errorf("no rooms defined")
	}

	el := errors.NewErrorList()
	g := &Graph{
		rooms: make(map[storage.Identifier]*Room, len(all)),
		start: start,
	}

	for id, room := range all {
		if err := room.resolve(rooms); err != nil {
			el.Add(fmt.Errorf("room %s: %w", id, err))
		}
		g.rooms[id] = room
		g.order = append(g.order, id)
	}

	if _, ok := g.rooms[start]; !ok {
		el.Add(fmt.Errorf("start room %q not found", start))
	}

	if err := el.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(g.order, func(a, b storage.Identifier) int {
		if c := cmp.Compare(g.rooms[a].Order, g.rooms[b].Order); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	return g, nil
}

// Room returns the room with the given id. The graph is fixed at startup,
// so asking for an unknown id is a programming error and panics.
func (g *Graph) Room(id storage.Identifier) *Room {
	r, ok := g.rooms[id]
	if !ok {
		panic(fmt.Sprintf("tour: unknown room %q", id))
	}
	return r
}

// Has reports whether id names a room.
func (g *Graph) Has(id storage.Identifier) bool {
	_, ok := g.rooms[id]
	return ok
}

// Ids returns every room id in display order.
func (g *Graph) Ids() []storage.Identifier {
	return slices.Clone(g.order)
}

// Start returns the room a visit begins in.
func (g *Graph) Start() storage.Identifier {
	return g.start
}
