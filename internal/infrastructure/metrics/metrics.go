// Package metrics adaptador Prometheus del puerto ports.Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Precios-api/internal/application/ports"
)

var _ ports.Metrics = (*Registry)(nil)

// Registry contadores de negocio en un registro propio (no el global).
type Registry struct {
	reg             *prometheus.Registry
	ProductsCreated prometheus.Counter
	PricesSubmitted prometheus.Counter
	PricesReviewed  *prometheus.CounterVec
	Points          prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
	HTTPLatencySec  *prometheus.HistogramVec
}

// NewRegistry crea y registra los colectores.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	products := prometheus.NewCounter(prometheus.CounterOpts{Name: "precios_products_created_total"})
	submitted := prometheus.NewCounter(prometheus.CounterOpts{Name: "precios_prices_submitted_total"})
	reviewed := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "precios_prices_reviewed_total"}, []string{"verdict"})
	points := prometheus.NewCounter(prometheus.CounterOpts{Name: "precios_points_credited_total"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "precios_http_requests_total"}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "precios_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	r.MustRegister(
		products, submitted, reviewed, points, requests, latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:             r,
		ProductsCreated: products,
		PricesSubmitted: submitted,
		PricesReviewed:  reviewed,
		Points:          points,
		HTTPRequests:    requests,
		HTTPLatencySec:  latency,
	}
}

func (r *Registry) ProductCreated()              { r.ProductsCreated.Inc() }
func (r *Registry) PriceSubmitted()              { r.PricesSubmitted.Inc() }
func (r *Registry) PriceReviewed(verdict string) { r.PricesReviewed.WithLabelValues(verdict).Inc() }
func (r *Registry) PointsCredited(points int64)  { r.Points.Add(float64(points)) }

// ObserveHTTP registra una petición atendida.
func (r *Registry) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	r.HTTPRequests.WithLabelValues(method, route, status).Inc()
	r.HTTPLatencySec.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Gatherer expone el registro (tests).
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler handler HTTP de exposición.
func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
