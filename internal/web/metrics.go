package web

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Generations        *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	Prepared           *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_generations_total",
			Help: "Generation requests by outcome.",
		}, []string{"outcome"}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "content_generation_duration_seconds",
			Help:    "Wall time of a full generation cycle.",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
		}),
		Prepared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_prepared_total",
			Help: "Card text and image exports by platform and kind.",
		}, []string{"platform", "kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.Generations, m.GenerationDuration, m.Prepared)
	}
	return m
}

func (m *Metrics) IncGeneration(outcome string) {
	if m == nil || m.Generations == nil {
		return
	}
	m.Generations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveDuration(seconds float64) {
	if m == nil || m.GenerationDuration == nil {
		return
	}
	m.GenerationDuration.Observe(seconds)
}

func (m *Metrics) IncPrepared(platform, kind string) {
	if m == nil || m.Prepared == nil {
		return
	}
	m.Prepared.WithLabelValues(platform, kind).Inc()
}
