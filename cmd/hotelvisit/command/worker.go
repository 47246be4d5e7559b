package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-hotelvisit/internal/commands"
	"github.com/pixil98/go-hotelvisit/internal/listener"
	"github.com/pixil98/go-hotelvisit/internal/visitor"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Load the hotel
	rooms, err := cfg.Storage.BuildRoomStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	graph, err := cfg.Tour.BuildGraph(rooms)
	if err != nil {
		return nil, fmt.Errorf("building room graph: %w", err)
	}

	cmds, err := cfg.Storage.BuildCommandStore()
	if err != nil {
		return nil, fmt.Errorf("creating command store: %w", err)
	}
	cmdHandler := commands.NewHandler(cmds)
	if err := cmdHandler.CompileAll(); err != nil {
		return nil, fmt.Errorf("compiling commands: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	opts, err := cfg.Tour.ManagerOpts()
	if err != nil {
		return nil, fmt.Errorf("configuring tour: %w", err)
	}
	opts = append(opts, cfg.Media.ManagerOpt())
	visitors := visitor.NewManager(graph, cmdHandler, natsServer, opts...)

	workers := service.WorkerList{
		"nats":     natsServer,
		"visitors": visitors,
	}

	cm := listener.NewConnectionManager(visitors)
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		// Sessions subscribe to the bus, so no visitor is let in before it is up.
		workers[fmt.Sprintf("listener-%d-%s", i, l.Protocol)] = &afterReady{ready: natsServer.Ready(), worker: w}
	}

	if exporter := cfg.Telemetry.BuildExporter(); exporter != nil {
		workers["telemetry"] = exporter
	}

	return workers, nil
}

// afterReady holds a worker back until ready is closed.
type afterReady struct {
	ready  <-chan struct{}
	worker service.Worker
}

func (a *afterReady) Start(ctx context.Context) error {
	select {
	case <-a.ready:
	case <-ctx.Done():
		return nil
	}
	return a.worker.Start(ctx)
}
