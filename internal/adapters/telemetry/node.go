package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/jopts/internal/adapters/logger"
	"go.trai.ch/jopts/internal/core/ports"
)

const (
	// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"

	// TraceEnvVar enables span logging when set to a non-empty value.
	TraceEnvVar = "JOPTS_TRACE"
)

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			if os.Getenv(TraceEnvVar) == "" {
				return NewNoOpTracer(), nil
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewBridge(log)))
			otel.SetTracerProvider(tp)
			return NewOTelTracer(InstrumentationName), nil
		},
	})
}
