package media

import (
	"log/slog"
	"sync"
)

// Autoplay starts a looping track at a fixed volume as soon as the player
// is ready. Playback failures are dropped; the visit goes on silently.
type Autoplay struct {
	volume float64

	mu    sync.Mutex
	state AudioState
}

func NewAutoplay(volume float64) *Autoplay {
	return &Autoplay{volume: volume}
}

func (a *Autoplay) OnReady(p Player) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := p.SetVolume(a.volume); err != nil {
		slog.Debug("autoplay set volume", "error", err)
		return
	}
	if err := p.Play(); err != nil {
		slog.Debug("autoplay refused", "error", err)
		return
	}
	a.state = AudioState{SoundEnabled: true}
}

// Toggle always fails: autoplay has no control.
func (a *Autoplay) Toggle() (AudioState, error) {
	return a.State(), ErrNoControl
}

func (a *Autoplay) State() AudioState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}
