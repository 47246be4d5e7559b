package command

import (
	"github.com/pixil98/go-hotelvisit/internal/telemetry"
)

type TelemetryConfig struct {
	Enabled     bool   `json:"enabled"`
	ServiceName string `json:"service_name"`
}

func (c *TelemetryConfig) validate() error {
	return nil
}

// BuildExporter returns the tracing worker, or nil when tracing is off.
func (c *TelemetryConfig) BuildExporter() *telemetry.Exporter {
	if !c.Enabled {
		return nil
	}
	name := c.ServiceName
	if name == "" {
		name = telemetry.DefaultServiceName
	}
	return telemetry.NewExporter(name)
}
