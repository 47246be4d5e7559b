// Package media drives the ambient soundtrack of a visit. The player itself
// belongs to whoever renders the visit; controllers here only hold a
// reference to it and issue commands.
package media

import "errors"

var (
	ErrPlayerNotReady = errors.New("player not ready")
	ErrNoControl      = errors.New("no sound control")
)

// DefaultVolume is the ambient track volume, from 0 to 1.
const DefaultVolume = 0.4

// Player is the handle of an external media player.
type Player interface {
	Play() error
	SetVolume(v float64) error
	Mute() error
	Unmute() error
}

// AudioState is what the sound control displays.
type AudioState struct {
	SoundEnabled bool
	Muted        bool
}

// Icon returns the sound control glyph for the state.
func (s AudioState) Icon() string {
	if !s.SoundEnabled || s.Muted {
		return "🔇"
	}
	return "🔊"
}

// Controller is one ambient media strategy. OnReady is the player's ready
// callback; Toggle is the visitor activating the sound control.
type Controller interface {
	OnReady(p Player)
	Toggle() (AudioState, error)
	State() AudioState
}

// None is the controller for visits without ambient media.
type None struct{}

func (None) OnReady(Player) {}

func (None) Toggle() (AudioState, error) {
	return AudioState{}, ErrNoControl
}

func (None) State() AudioState {
	return AudioState{}
}
