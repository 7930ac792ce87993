package observability

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "campuscook"
	MeterName  = "campuscook"
)

// Config holds the tracer and meter providers the API reports to.
type Config struct {
	// TracerProvider is the OpenTelemetry tracer provider.
	// If nil, a noop tracer is used.
	TracerProvider trace.TracerProvider

	// MeterProvider is the OpenTelemetry meter provider.
	// If nil, a noop meter is used.
	MeterProvider metric.MeterProvider

	ServiceName string

	// EnableDetailedDBTracing opens a span per GORM statement.
	EnableDetailedDBTracing bool

	tracer  *Tracer
	metrics *Metrics
}

type Option func(*Config)

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Config) {
		c.MeterProvider = mp
	}
}

// WithServiceName overrides the default service name; empty is ignored.
func WithServiceName(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.ServiceName = name
		}
	}
}

func WithDetailedDBTracing() Option {
	return func(c *Config) {
		c.EnableDetailedDBTracing = true
	}
}

// NewConfig builds a Config and its instruments from opts.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		ServiceName: "campuscook-api",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.TracerProvider != nil {
		cfg.tracer = NewTracer(cfg.TracerProvider, cfg.ServiceName)
	} else {
		cfg.tracer = NewNoopTracer()
	}
	if cfg.MeterProvider != nil {
		cfg.metrics = NewMetrics(cfg.MeterProvider)
	} else {
		cfg.metrics = NewNoopMetrics()
	}
	return cfg
}

func (c *Config) Tracer() *Tracer {
	if c == nil || c.tracer == nil {
		return NewNoopTracer()
	}
	return c.tracer
}

func (c *Config) Metrics() *Metrics {
	if c == nil || c.metrics == nil {
		return NewNoopMetrics()
	}
	return c.metrics
}
