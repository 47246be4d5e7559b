package media

import (
	"fmt"
	"sync"
)

// Gated keeps the player muted until the visitor asks for sound. The first
// Toggle enables sound and unmutes; later ones flip between muted and
// unmuted. Nothing is sent to the player before OnReady.
type Gated struct {
	volume float64

	mu     sync.Mutex
	player Player
	state  AudioState
}

func NewGated(volume float64) *Gated {
	return &Gated{
		volume: volume,
		state:  AudioState{Muted: true},
	}
}

func (g *Gated) OnReady(p Player) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.player = p
}

func (g *Gated) Toggle() (AudioState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.player == nil {
		return g.state, ErrPlayerNotReady
	}

	if !g.state.SoundEnabled {
		if err := g.player.SetVolume(g.volume); err != nil {
			return g.state, fmt.Errorf("setting volume: %w", err)
		}
		if err := g.player.Unmute(); err != nil {
			return g.state, fmt.Errorf("unmuting: %w", err)
		}
		g.state = AudioState{SoundEnabled: true, Muted: false}
		return g.state, nil
	}

	if g.state.Muted {
		if err := g.player.Unmute(); err != nil {
			return g.state, fmt.Errorf("unmuting: %w", err)
		}
	} else {
		if err := g.player.Mute(); err != nil {
			return g.state, fmt.Errorf("muting: %w", err)
		}
	}
	g.state.Muted = !g.state.Muted
	return g.state, nil
}

func (g *Gated) State() AudioState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
