package observability

import (
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func NewNoopTracer() *Tracer {
	return &Tracer{
		tracer: tracenoop.NewTracerProvider().Tracer(""),
	}
}

func NewNoopMetrics() *Metrics {
	meter := noop.NewMeterProvider().Meter("")
	m := &Metrics{}

	m.requestDuration, _ = meter.Float64Histogram("http.server.request.duration") //nolint:errcheck
	m.requestCount, _ = meter.Int64Counter("http.server.request.count")           //nolint:errcheck
	m.dbQueryDuration, _ = meter.Float64Histogram("db.query.duration")            //nolint:errcheck
	m.errorCount, _ = meter.Int64Counter("http.server.error.count")               //nolint:errcheck

	return m
}
