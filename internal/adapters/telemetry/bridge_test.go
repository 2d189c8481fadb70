package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/jopts/internal/adapters/telemetry"
	"go.trai.ch/jopts/internal/core/ports"
	"go.trai.ch/jopts/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type containsMatcher struct{ parts []string }

func (m containsMatcher) Matches(x any) bool {
	s, ok := x.(string)
	if !ok {
		return false
	}
	for _, p := range m.parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

func (m containsMatcher) String() string { return "contains all of " + strings.Join(m.parts, ", ") }

func newBridgeTracer(t *testing.T, log ports.Logger) *telemetry.OTelTracer {
	t.Helper()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracerFrom(tp, "test")
}

func TestBridge_LogsEndedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(containsMatcher{parts: []string{
		"options.compute",
		"project.root=/work/app",
		"args.count=3",
		"duration=",
	}}).Times(1)

	tracer := newBridgeTracer(t, mockLogger)
	_, span := tracer.Start(t.Context(), "options.compute", ports.WithAttribute("project.root", "/work/app"))
	span.SetAttribute("args.count", 3)
	span.End()
}

func TestBridge_FailedSpanWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(containsMatcher{parts: []string{"options.compute", "error=permission denied"}}).Times(1)

	tracer := newBridgeTracer(t, mockLogger)
	_, span := tracer.Start(t.Context(), "options.compute")
	span.RecordError(errors.New("permission denied"))
	span.End()
}

func TestBridge_NilLogger(t *testing.T) {
	tracer := newBridgeTracer(t, nil)
	_, span := tracer.Start(t.Context(), "quiet")
	assert.NotPanics(t, span.End)
}
