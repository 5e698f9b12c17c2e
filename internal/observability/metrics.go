package observability

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"

	"github.com/spec-kit/catalog-api/internal/config"
)

const (
	// ExceptionsMetric counts handler failures by endpoint, method and exception type.
	ExceptionsMetric = "api_exceptions_total"
	// ExceptionsSumMetric counts every handler failure regardless of labels.
	ExceptionsSumMetric = "api_exceptions_sum_total"

	// ContentType identifies the text exposition format produced by Export.
	ContentType = "text/plain; version=0.0.4; charset=utf-8"
)

// Registry owns the exception counters and serializes them for scraping.
// It is created once at startup and shared by the tracker and the metrics handler.
type Registry struct {
	registry      *prometheus.Registry
	exceptions    *prometheus.CounterVec
	exceptionsSum prometheus.Counter

	vecs     map[string]*prometheus.CounterVec
	counters map[string]prometheus.Counter
}

// NewRegistry builds a registry with the exception counters registered.
func NewRegistry(cfg config.MetricsConfig) (*Registry, error) {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		exceptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: ExceptionsMetric,
				Help: "Total number of exceptions raised by API endpoint",
			},
			[]string{"endpoint", "method", "exception_type"},
		),
		exceptionsSum: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: ExceptionsSumMetric,
				Help: "Total sum of all exceptions raised across all endpoints",
			},
		),
	}
	r.vecs = map[string]*prometheus.CounterVec{ExceptionsMetric: r.exceptions}
	r.counters = map[string]prometheus.Counter{ExceptionsSumMetric: r.exceptionsSum}

	toRegister := []prometheus.Collector{r.exceptions, r.exceptionsSum}
	if cfg.IncludeRuntime {
		toRegister = append(toRegister,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	for _, c := range toRegister {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

// Increment adds one to the named counter, creating the labeled series on first use.
func (r *Registry) Increment(name string, labels map[string]string) error {
	if c, ok := r.counters[name]; ok {
		if len(labels) > 0 {
			return fmt.Errorf("counter %s takes no labels", name)
		}
		c.Inc()
		return nil
	}
	vec, ok := r.vecs[name]
	if !ok {
		return fmt.Errorf("unknown counter %s", name)
	}
	c, err := vec.GetMetricWith(labels)
	if err != nil {
		return fmt.Errorf("counter %s: %w", name, err)
	}
	c.Inc()
	return nil
}

// RecordException counts one failure for the (endpoint, method, kind) series
// and one for the global total.
func (r *Registry) RecordException(endpoint, method, kind string) {
	r.exceptions.WithLabelValues(endpoint, method, kind).Inc()
	r.exceptionsSum.Inc()
}

// Export renders every registered series in the Prometheus text format.
// Families and series come back sorted from Gather, so the output is stable.
func (r *Registry) Export() ([]byte, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return nil, fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.Bytes(), nil
}

// Gatherer exposes the underlying registry, e.g. for promhttp or testutil.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
