package middleware

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/keyrates/toolschema/protocol"
)

const instrumentationName = "github.com/keyrates/toolschema"

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*otelConfig)

type otelConfig struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	serviceName    string
	skipTools      map[string]bool
}

// WithTracerProvider sets a custom tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *otelConfig) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom meter provider.
func WithMeterProvider(mp metric.MeterProvider) OTelOption {
	return func(c *otelConfig) {
		c.meterProvider = mp
	}
}

// WithOTelServiceName sets the service name for telemetry.
func WithOTelServiceName(name string) OTelOption {
	return func(c *otelConfig) {
		c.serviceName = name
	}
}

// WithOTelSkipTools specifies tools that are not traced.
func WithOTelSkipTools(names ...string) OTelOption {
	return func(c *otelConfig) {
		for _, n := range names {
			c.skipTools[n] = true
		}
	}
}

// OTel returns middleware that traces tool calls and records call counts,
// failures and latency.
func OTel(opts ...OTelOption) Middleware {
	cfg := &otelConfig{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
		serviceName:    "toolschema",
		skipTools:      make(map[string]bool),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tracer := cfg.tracerProvider.Tracer(instrumentationName)
	meter := cfg.meterProvider.Meter(instrumentationName)

	callCounter, _ := meter.Int64Counter(
		"toolschema.calls",
		metric.WithDescription("Total number of tool calls"),
		metric.WithUnit("{call}"),
	)

	callDuration, _ := meter.Float64Histogram(
		"toolschema.call.duration",
		metric.WithDescription("Duration of tool calls"),
		metric.WithUnit("ms"),
	)

	errorCounter, _ := meter.Int64Counter(
		"toolschema.call.errors",
		metric.WithDescription("Total number of failed tool calls"),
		metric.WithUnit("{error}"),
	)

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
			if cfg.skipTools[call.Name] {
				return next(ctx, call)
			}

			attrs := []attribute.KeyValue{
				attribute.String("tool.name", call.Name),
				attribute.String("service.name", cfg.serviceName),
			}
			if call.Vendor != "" {
				attrs = append(attrs, attribute.String("tool.vendor", string(call.Vendor)))
			}

			ctx, span := tracer.Start(ctx, "tool."+call.Name,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			if reqID := RequestIDFromContext(ctx); reqID != "" {
				span.SetAttributes(attribute.String("tool.request_id", reqID))
			}

			start := time.Now()
			callCounter.Add(ctx, 1, metric.WithAttributes(attrs...))

			res, err := next(ctx, call)

			callDuration.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(attrs...))

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())

				var callErr *protocol.Error
				if errors.As(err, &callErr) {
					span.SetAttributes(attribute.Int("tool.error_code", callErr.Code))
					attrs = append(attrs, attribute.Int("tool.error_code", callErr.Code))
				}
				errorCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
			} else {
				span.SetStatus(codes.Ok, "")
			}

			return res, err
		}
	}
}

// AddSpanEvent adds an event to the span of the current call.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).AddEvent(name, trace.WithAttributes(attrs...))
}
