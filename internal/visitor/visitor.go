package visitor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-hotelvisit/internal/commands"
	"github.com/pixil98/go-hotelvisit/internal/display"
	"github.com/pixil98/go-hotelvisit/internal/media"
	"github.com/pixil98/go-hotelvisit/internal/messaging"
	"github.com/pixil98/go-hotelvisit/internal/tour"
)

// Visitor is one mounted visit. Everything except deliver runs on the
// goroutine that called Play.
type Visitor struct {
	id          string
	conn        io.ReadWriter
	nav         *tour.Navigator
	cmdHandler  *commands.Handler
	sound       media.Controller
	soundSource string
	fade        display.FadeTimings

	mapOpen bool
	quit    bool

	msgs chan []byte
	done chan struct{}
}

// Id returns the visitor's session id.
func (v *Visitor) Id() string {
	return v.id
}

func (v *Visitor) Navigator() *tour.Navigator { return v.nav }

func (v *Visitor) Sound() media.Controller { return v.sound }

func (v *Visitor) SoundSource() string { return v.soundSource }

func (v *Visitor) Fade() display.FadeTimings { return v.fade }

func (v *Visitor) MapOpen() bool { return v.mapOpen }

func (v *Visitor) SetMapOpen(open bool) { v.mapOpen = open }

func (v *Visitor) Quit() { v.quit = true }

func (v *Visitor) WriteLine(msg string) error {
	_, err := v.conn.Write([]byte(msg + "\n\n"))
	return err
}

// deliver hands a bus message to the session loop. It runs on the bus
// goroutine and gives up once the session is over.
func (v *Visitor) deliver(data []byte) {
	select {
	case v.msgs <- data:
	case <-v.done:
	}
}

func (v *Visitor) Play(ctx context.Context) error {
	// Start goroutine to read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		scanner := bufio.NewScanner(v.conn)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-v.done:
				return
			}
		}
		inputErrChan <- scanner.Err()
	}()

	err := v.render(display.NewRoomView(v.nav.Graph(), v.nav.State().CurrentRoom, v.fade))
	if err != nil {
		return fmt.Errorf("initial view: %w", err)
	}

	// The terminal player is ready as soon as the room is on screen.
	player := newTerminalPlayer(v.conn, v.soundSource, v.sound.State().Muted)
	v.sound.OnReady(player)
	err = player.announce()
	if err != nil {
		return err
	}

	err = v.prompt()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-v.msgs:
			err = v.handleEvent(ctx, msg)
			if err != nil {
				return err
			}
			err = v.prompt()
			if err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Input channel closed (connection lost).
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			err = v.cmdHandler.Exec(ctx, v, line)
			if err != nil {
				var userErr *commands.UserError
				if !errors.As(err, &userErr) {
					return fmt.Errorf("command execution failed: %w", err)
				}
				err = v.WriteLine(userErr.Message)
				if err != nil {
					return err
				}
			}

			if v.quit {
				return v.WriteLine("Goodbye!")
			}

			err = v.prompt()
			if err != nil {
				return err
			}
		}
	}
}

func (v *Visitor) handleEvent(ctx context.Context, data []byte) error {
	ev, err := messaging.DecodeEvent(data)
	if err != nil {
		slog.WarnContext(ctx, "dropping visitor event", "visitor", v.id, "error", err)
		return nil
	}

	g := v.nav.Graph()
	switch ev.Kind {
	case tour.EventTransitionStarted:
		return v.render(display.FadeView{
			From: display.RoomLabel(ev.From, g.Room(ev.From)),
			To:   display.RoomLabel(ev.To, g.Room(ev.To)),
			Fade: v.fade,
		})
	case tour.EventTransitionCommitted:
		err := v.render(display.NewRoomView(g, ev.To, v.fade))
		if err != nil || !v.mapOpen {
			return err
		}
		// Keep the open popup's active button on the new room.
		return v.render(display.NewMapView(g, ev.To))
	default:
		slog.WarnContext(ctx, "unknown visitor event", "visitor", v.id, "kind", ev.Kind)
		return nil
	}
}

func (v *Visitor) render(view interface{ Render() (string, error) }) error {
	out, err := view.Render()
	if err != nil {
		return fmt.Errorf("rendering view: %w", err)
	}
	return v.WriteLine(strings.TrimRight(out, "\n"))
}

func (v *Visitor) prompt() error {
	st := v.nav.State()
	label := display.RoomLabel(st.CurrentRoom, v.nav.Graph().Room(st.CurrentRoom))
	if v.mapOpen {
		label += " | map"
	}
	_, err := fmt.Fprintf(v.conn, "[%s %s] > ", label, v.sound.State().Icon())
	return err
}
