package ports

// Metrics puerto de salida para contadores de negocio.
// El adaptador Prometheus vive en infrastructure/metrics; NopMetrics sirve para tests.
type Metrics interface {
	ProductCreated()
	PriceSubmitted()
	PriceReviewed(verdict string)
	PointsCredited(points int64)
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) ProductCreated()      {}
func (NopMetrics) PriceSubmitted()      {}
func (NopMetrics) PriceReviewed(string) {}
func (NopMetrics) PointsCredited(int64) {}
