package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках можно передавать nil.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database
	DBQueriesTotal       *prometheus.CounterVec
	DBQueryDuration      *prometheus.HistogramVec
	DBOpenConnections    prometheus.Gauge
	DBInUseConnections   prometheus.Gauge
	DBIdleConnections    prometheus.Gauge
	DBWaitCount          prometheus.Gauge
	DBWaitDurationSecond prometheus.Gauge

	// Pickup domain
	ReservationsTotal   *prometheus.CounterVec
	HoldsReleasedTotal  *prometheus.CounterVec
	CheckoutsTotal      *prometheus.CounterVec
	SlotsGeneratedTotal prometheus.Counter
}

// New создаёт и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: constLabels,
		}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		DBWaitDurationSecond: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_duration_seconds",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: constLabels,
		}),

		ReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "pickup_reservations_total",
			Help:        "Reserve attempts against pickup slots by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		HoldsReleasedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "pickup_holds_released_total",
			Help:        "Held quantity returned to pickup slots by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		CheckoutsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "checkouts_total",
			Help:        "Checkout attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		SlotsGeneratedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pickup_slots_generated_total",
			Help:        "Pickup slots created by the generator",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBWaitDurationSecond,
		m.ReservationsTotal,
		m.HoldsReleasedTotal,
		m.CheckoutsTotal,
		m.SlotsGeneratedTotal,
	)

	return m
}

// Handler возвращает HTTP handler для экспорта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReservation учитывает попытку резервирования: reserved, conflict, error
func (m *Metrics) ObserveReservation(result string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(result).Inc()
}

// ObserveHoldReleased учитывает возврат удержанного количества в слот
func (m *Metrics) ObserveHoldReleased(reason string, qty int) {
	if m == nil || qty <= 0 {
		return
	}
	m.HoldsReleasedTotal.WithLabelValues(reason).Add(float64(qty))
}

// ObserveCheckout учитывает исход попытки оформления заказа
func (m *Metrics) ObserveCheckout(outcome string) {
	if m == nil {
		return
	}
	m.CheckoutsTotal.WithLabelValues(outcome).Inc()
}

// AddSlotsGenerated учитывает созданные слоты
func (m *Metrics) AddSlotsGenerated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SlotsGeneratedTotal.Add(float64(n))
}
