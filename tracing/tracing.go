package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Kind identifies which side of the channel a span instruments.
type Kind string

const (
	// KindProducer marks spans emitted by the producing unit.
	KindProducer Kind = "PRODUCER"
	// KindConsumer marks spans emitted by the consuming unit.
	KindConsumer Kind = "CONSUMER"
)

// Init configures OpenTelemetry with the stdout exporter backed by either
// os.Stdout or the specified file.  An empty outputFile selects os.Stdout.
// Only the first successful call installs a provider; later calls are no-ops.
func Init(serviceName, serviceVersion, outputFile string) error {
	var sink io.Writer = os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		sink = file
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(sink))
	if err != nil {
		return err
	}
	return installProvider(serviceName, serviceVersion, exporter)
}

// InitWithExporter configures OpenTelemetry using the supplied SpanExporter,
// allowing integration with any back-end the SDK supports (OTLP, Jaeger,
// Zipkin).  Only the first successful call installs a provider.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	return installProvider(serviceName, serviceVersion, exporter)
}

var (
	providerOnce sync.Once
	providerErr  error
)

// installProvider registers the exporter as the global trace provider exactly
// once; repeat invocations return the outcome of the first attempt.
func installProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = err
			return
		}
		otel.SetTracerProvider(sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		))
	})
	return providerErr
}

// Span wraps go.opentelemetry.io/otel/trace.Span so that callers do not need
// to import the upstream package directly.
type Span struct {
	span trace.Span
}

// WithAttributes attaches all provided attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kvs = append(kvs, attribute.String(k, v))
	}
	s.span.SetAttributes(kvs...)
	return s
}

// SetStatus records an error status on the span, or OK when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

// StartSpan opens a child span for one side of a transfer.  Any unrecognised
// kind falls back to an internal span.
func StartSpan(ctx context.Context, name string, kind Kind) (context.Context, *Span) {
	tracer := otel.Tracer("github.com/viant/conveyor")

	spanKind := trace.SpanKindInternal
	switch kind {
	case KindProducer:
		spanKind = trace.SpanKindProducer
	case KindConsumer:
		spanKind = trace.SpanKindConsumer
	}

	parentSpan := trace.SpanFromContext(ctx)
	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(spanKind))

	// The SDK tracks lineage internally; recording the parent identifiers as
	// attributes lets a span be understood when inspected in isolation.
	if parentSpan != nil {
		if sc := parentSpan.SpanContext(); sc.IsValid() {
			span.SetAttributes(
				attribute.String("parent.trace_id", sc.TraceID().String()),
				attribute.String("parent.span_id", sc.SpanID().String()),
			)
		}
	}
	return ctx, &Span{span: span}
}

// EndSpan finalises the span, recording status from the provided error.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}
