// =============================
// File: internal/metrics/metrics.go
// =============================
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Sink is the observability surface injected into the controller and the
// pipeline stages. Implementations must be safe for concurrent use.
//
//   - pumpfun_events_processed_total          – queue items popped
//   - pumpfun_events_decoded_total{kind}      – decoded trade events by kind
//   - pumpfun_orders_executed_total{side,status} – order outcomes
//   - pumpfun_open_positions                  – current open position count
//   - pumpfun_capital_sol                     – capital snapshot (gauge)
type Sink interface {
	IncEventsProcessed()
	IncEventDecoded(kind string)
	IncOrderExecuted(side, status string)
	SetOpenPositions(n int)
	SetCapital(sol float64)
}

// Collector is the Prometheus-backed Sink.
type Collector struct {
	eventsProcessed prometheus.Counter
	eventsDecoded   *prometheus.CounterVec
	ordersExecuted  *prometheus.CounterVec
	openPositions   prometheus.Gauge
	capital         prometheus.Gauge
}

// NewCollector builds a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		eventsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pumpfun_events_processed_total",
			Help: "Notifications popped from the upstream queue",
		}),
		eventsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pumpfun_events_decoded_total",
			Help: "Decoded trade events by kind",
		}, []string{"kind"}),
		ordersExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pumpfun_orders_executed_total",
			Help: "Order executions by side and status",
		}, []string{"side", "status"}),
		openPositions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pumpfun_open_positions",
			Help: "Currently open positions",
		}),
		capital: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pumpfun_capital_sol",
			Help: "Capital in SOL",
		}),
	}

	reg.MustRegister(c.eventsProcessed, c.eventsDecoded, c.ordersExecuted, c.openPositions, c.capital)
	return c
}

func (c *Collector) IncEventsProcessed() {
	c.eventsProcessed.Inc()
}

func (c *Collector) IncEventDecoded(kind string) {
	c.eventsDecoded.WithLabelValues(kind).Inc()
}

func (c *Collector) IncOrderExecuted(side, status string) {
	c.ordersExecuted.WithLabelValues(side, status).Inc()
}

func (c *Collector) SetOpenPositions(n int) {
	c.openPositions.Set(float64(n))
}

func (c *Collector) SetCapital(sol float64) {
	c.capital.Set(sol)
}

// Nop is a Sink that records nothing; used in tests and as a default.
type Nop struct{}

func (Nop) IncEventsProcessed()             {}
func (Nop) IncEventDecoded(string)          {}
func (Nop) IncOrderExecuted(string, string) {}
func (Nop) SetOpenPositions(int)            {}
func (Nop) SetCapital(float64)              {}
