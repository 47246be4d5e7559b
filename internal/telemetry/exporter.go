package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Exporter installs the OTLP tracer provider for as long as it runs.
type Exporter struct {
	serviceName string
}

func NewExporter(serviceName string) *Exporter {
	return &Exporter{serviceName: serviceName}
}

// Start runs until ctx is canceled, then flushes pending spans.
func (e *Exporter) Start(ctx context.Context) error {
	shutdown, err := Setup(ctx, e.serviceName)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}

	slog.InfoContext(ctx, "tracing enabled", "service", e.serviceName)
	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(sctx); err != nil {
		return fmt.Errorf("flushing traces: %w", err)
	}
	return nil
}
