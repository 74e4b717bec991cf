package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seatmap"

// Recorder 觀測點；所有方法都不能阻塞呼叫端
type Recorder interface {
	ToggleObserved(result string)
	ClearObserved()
	GestureObserved(kind string)
	PersistFailed()
	SessionsActive(n int)
}

// Noop 不記錄任何東西，用於測試與 TUI
type Noop struct{}

func (Noop) ToggleObserved(string)  {}
func (Noop) ClearObserved()         {}
func (Noop) GestureObserved(string) {}
func (Noop) PersistFailed()         {}
func (Noop) SessionsActive(int)     {}

// Prometheus 使用獨立 registry，不污染 DefaultRegisterer
type Prometheus struct {
	registry       *prometheus.Registry
	toggles        *prometheus.CounterVec
	clears         prometheus.Counter
	gestures       *prometheus.CounterVec
	persistFailure prometheus.Counter
	sessions       prometheus.Gauge
}

func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_toggles_total",
			Help:      "Seat toggles by result (added, removed, ineligible, full).",
		}, []string{"result"}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_clears_total",
			Help:      "Clear-all requests.",
		}),
		gestures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "viewport_gestures_total",
			Help:      "Viewport operations by kind.",
		}, []string{"kind"}),
		persistFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_persist_failures_total",
			Help:      "Selection snapshots that could not be written.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Client sessions currently held in memory.",
		}),
	}
	p.registry.MustRegister(
		p.toggles,
		p.clears,
		p.gestures,
		p.persistFailure,
		p.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) ToggleObserved(result string) {
	p.toggles.WithLabelValues(result).Inc()
}

func (p *Prometheus) ClearObserved() {
	p.clears.Inc()
}

func (p *Prometheus) GestureObserved(kind string) {
	p.gestures.WithLabelValues(kind).Inc()
}

func (p *Prometheus) PersistFailed() {
	p.persistFailure.Inc()
}

func (p *Prometheus) SessionsActive(n int) {
	p.sessions.Set(float64(n))
}

// Handler /metrics
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
