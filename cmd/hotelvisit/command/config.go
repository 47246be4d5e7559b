package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

type Config struct {
	Listeners []ListenerConfig `json:"listeners"`
	Nats      NatsConfig       `json:"nats"`
	Storage   StorageConfig    `json:"storage"`
	Tour      TourConfig       `json:"tour"`
	Media     MediaConfig      `json:"media"`
	Telemetry TelemetryConfig  `json:"telemetry"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Nats.validate())
	el.Add(c.Storage.validate())
	el.Add(c.Tour.validate())
	el.Add(c.Media.validate())
	el.Add(c.Telemetry.validate())

	return el.Err()
}
