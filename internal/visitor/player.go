package visitor

import (
	"fmt"
	"io"
	"math"
)

// terminalPlayer is the ambient track as a visitor's terminal sees it.
// It starts muted when the sound control does. Mute changes are reported
// by the sound control, not here.
type terminalPlayer struct {
	w      io.Writer
	source string
	volume float64
	muted  bool
}

func newTerminalPlayer(w io.Writer, source string, muted bool) *terminalPlayer {
	return &terminalPlayer{w: w, source: source, muted: muted}
}

// announce tells the visitor a muted track is waiting behind the sound
// control.
func (p *terminalPlayer) announce() error {
	if p.source == "" || !p.muted {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "♪ %s is loaded and muted. Type 'sound' to listen. ♪\n\n", p.source)
	return err
}

func (p *terminalPlayer) Play() error {
	if p.muted {
		_, err := fmt.Fprintf(p.w, "♪ Now playing %s, muted ♪\n\n", p.source)
		return err
	}
	_, err := fmt.Fprintf(p.w, "♪ Now playing %s at %d%% volume ♪\n\n", p.source, int(math.Round(p.volume*100)))
	return err
}

func (p *terminalPlayer) SetVolume(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("volume %v out of range", v)
	}
	p.volume = v
	return nil
}

func (p *terminalPlayer) Mute() error {
	p.muted = true
	return nil
}

func (p *terminalPlayer) Unmute() error {
	p.muted = false
	return nil
}
