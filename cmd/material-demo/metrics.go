package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "material_widgets"

// metrics holds the Prometheus collectors of the demo server.
type metrics struct {
	registry       *prometheus.Registry
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	submissions    *prometheus.CounterVec
	saved          prometheus.Counter
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "form_renders_total",
			Help:      "Total number of rendered form pages",
		}, []string{"form", "renderer"}),
		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "form_render_duration_seconds",
			Help:      "Form page render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "form_submissions_total",
			Help:      "Total number of form submissions by validation result",
		}, []string{"form", "result"}),
		saved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "records_saved_total",
			Help:      "Total number of model form records saved",
		}),
	}
}

func (m *metrics) observeRender(form, renderer string, started time.Time) {
	m.renders.WithLabelValues(form, renderer).Inc()
	m.renderDuration.WithLabelValues(form).Observe(time.Since(started).Seconds())
}

func (m *metrics) observeSubmission(form string, valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.submissions.WithLabelValues(form, result).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
