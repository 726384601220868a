// Package otel wires ranger-drop's traces and metrics to an OTLP/HTTP
// collector. Without an endpoint the global no-op providers stay in place.
package otel

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ranger-drop"

// Version is reported as service.version.
var Version = "dev"

// OTELConfig is the telemetry part of the ranger-drop configuration.
type OTELConfig struct {
	Endpoint string // collector base URL, may carry a path prefix
	Headers  string // OTEL_EXPORTER_OTLP_HEADERS syntax
}

// Telemetry owns the SDK providers installed by Init.
type Telemetry struct {
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider

	Tracer  trace.Tracer
	Metrics *Metrics
}

// collector is an OTLP/HTTP endpoint split into what the exporters take.
type collector struct {
	host     string
	prefix   string
	insecure bool
	headers  map[string]string
}

func parseCollector(cfg OTELConfig) (collector, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return collector{}, fmt.Errorf("otel endpoint %q: %w", cfg.Endpoint, err)
	}
	if u.Host == "" {
		return collector{}, fmt.Errorf("otel endpoint %q: missing scheme or host", cfg.Endpoint)
	}
	return collector{
		host:     u.Host,
		prefix:   strings.TrimSuffix(u.Path, "/"),
		insecure: u.Scheme == "http",
		headers:  parseHeaders(cfg.Headers),
	}, nil
}

// parseHeaders reads "k1=v1,k2=v2". Entries without a key are skipped.
func parseHeaders(raw string) map[string]string {
	headers := map[string]string{}
	for _, entry := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(entry, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		headers[k] = strings.TrimSpace(v)
	}
	return headers
}

// Spans are exported synchronously; a toggle exits right after its one span.
func (c collector) tracerProvider(ctx context.Context, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(c.host),
		otlptracehttp.WithURLPath(c.prefix + "/v1/traces"),
		otlptracehttp.WithHeaders(c.headers),
	}
	if c.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp), sdktrace.WithResource(res)), nil
}

// Metrics are pushed once more by Shutdown.
func (c collector) meterProvider(ctx context.Context, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(c.host),
		otlpmetrichttp.WithURLPath(c.prefix + "/v1/metrics"),
		otlpmetrichttp.WithHeaders(c.headers),
	}
	if c.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}
	reader := sdkmetric.NewPeriodicReader(exp)
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res)), nil
}

// Init installs exporting providers when cfg.Endpoint is set and builds
// the tracer and instruments from whatever providers are global.
func Init(ctx context.Context, cfg OTELConfig) (*Telemetry, error) {
	t := &Telemetry{}
	if cfg.Endpoint != "" {
		if err := t.export(ctx, cfg); err != nil {
			return nil, fmt.Errorf("otel: %w", err)
		}
	}

	t.Tracer = otel.Tracer(serviceName)
	m, err := NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("otel metrics: %w", err)
	}
	t.Metrics = m
	return t, nil
}

func (t *Telemetry) export(ctx context.Context, cfg OTELConfig) error {
	c, err := parseCollector(cfg)
	if err != nil {
		return err
	}
	res, err := resource.New(ctx,
		resource.WithHost(),
		resource.WithAttributes(semconv.ServiceName(serviceName), semconv.ServiceVersion(Version)),
	)
	if err != nil {
		return fmt.Errorf("resource: %w", err)
	}
	if t.tp, err = c.tracerProvider(ctx, res); err != nil {
		return err
	}
	if t.mp, err = c.meterProvider(ctx, res); err != nil {
		return errors.Join(err, t.tp.Shutdown(ctx))
	}
	otel.SetTracerProvider(t.tp)
	otel.SetMeterProvider(t.mp)
	return nil
}

// Shutdown flushes pending spans and metrics.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var err error
	if t.tp != nil {
		err = errors.Join(err, t.tp.Shutdown(ctx))
	}
	if t.mp != nil {
		err = errors.Join(err, t.mp.Shutdown(ctx))
	}
	return err
}
