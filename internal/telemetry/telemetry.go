// Package telemetry records keyboard events as OpenTelemetry spans.
//
// Spans carry the operation, key kind, buffer length and family state.
// Typed text never leaves the process.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"fidel/internal/keyboard"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceName is used when neither the config nor OTEL_SERVICE_NAME
// names the service.
const DefaultServiceName = "fidel"

const tracerName = "fidel/keyboard"

// Recorder observes a keyboard and emits one span per event.
type Recorder struct {
	provider *sdktrace.TracerProvider // nil when export is disabled
	tracer   oteltrace.Tracer
}

// New returns a Recorder exporting over OTLP/HTTP when
// OTEL_EXPORTER_OTLP_ENDPOINT is set, and a no-op Recorder otherwise.
// The exporter reads the rest of its settings from the standard OTEL_*
// environment variables.
func New(ctx context.Context, serviceName string) (*Recorder, error) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return Disabled(), nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	if env := os.Getenv("OTEL_SERVICE_NAME"); env != "" {
		serviceName = env
	}
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return WithProvider(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

// Disabled returns a Recorder that drops every span.
func Disabled() *Recorder {
	return &Recorder{tracer: noop.NewTracerProvider().Tracer(tracerName)}
}

// WithProvider returns a Recorder on an existing provider. Shutdown shuts
// the provider down.
func WithProvider(tp *sdktrace.TracerProvider) *Recorder {
	return &Recorder{provider: tp, tracer: tp.Tracer(tracerName)}
}

// Enabled reports whether spans are exported.
func (r *Recorder) Enabled() bool { return r.provider != nil }

// Observe records e. It has the signature keyboard.Keyboard.Observe expects.
func (r *Recorder) Observe(e keyboard.Event) {
	_, span := r.tracer.Start(context.Background(), "keyboard."+string(e.Op))
	span.SetAttributes(Attributes(e)...)
	span.End()
}

// Attributes maps an event to span attributes.
func Attributes(e keyboard.Event) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("fidel.op", string(e.Op)),
		attribute.Bool("fidel.applied", e.Applied),
		attribute.Int("fidel.buffer.length", e.Length),
		attribute.Bool("fidel.family.open", e.FamilyOpen),
		attribute.Int("fidel.targets", e.Targets),
	}
	if e.Kind != "" {
		attrs = append(attrs, attribute.String("fidel.key.kind", string(e.Kind)))
	}
	if e.Op == keyboard.OpFamilyMember {
		attrs = append(attrs, attribute.Bool("fidel.replaced", e.Replaced))
	}
	return attrs
}

// Shutdown flushes pending spans and closes the exporter.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil || r.provider == nil {
		return nil
	}
	return r.provider.Shutdown(ctx)
}
