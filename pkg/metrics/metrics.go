package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
// Все методы безопасно вызывать на nil (метрики выключены)
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	AppointmentsCreated      *prometheus.CounterVec
	BookingRejections        *prometheus.CounterVec
	StatusTransitions        *prometheus.CounterVec
	OrphanedFinancialRecords prometheus.Counter
	SlotsGenerated           *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: labels,
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConnections: newPoolGauge("db_open_connections", "Open connections", labels),
		DBInUse:           newPoolGauge("db_in_use_connections", "Connections in use", labels),
		DBIdle:            newPoolGauge("db_idle_connections", "Idle connections", labels),
		DBWaitCount:       newPoolGauge("db_wait_count", "Total number of connections waited for", labels),

		AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments created, by booking source",
			ConstLabels: labels,
		}, []string{"source"}),
		BookingRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_rejections_total",
			Help:        "Rejected booking attempts, by reason",
			ConstLabels: labels,
		}, []string{"reason"}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_status_transitions_total",
			Help:        "Appointment status transitions",
			ConstLabels: labels,
		}, []string{"from", "to"}),
		OrphanedFinancialRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "orphaned_financial_records_total",
			Help:        "Completed appointments reverted without a paired financial record",
			ConstLabels: labels,
		}),
		SlotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Generated time slots, by availability",
			ConstLabels: labels,
		}, []string{"available"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.AppointmentsCreated,
		m.BookingRejections,
		m.StatusTransitions,
		m.OrphanedFinancialRecords,
		m.SlotsGenerated,
	)

	return m
}

func newPoolGauge(name, help string, labels prometheus.Labels) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	}, []string{"db"})
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// AppointmentCreated фиксирует созданную запись
func (m *Metrics) AppointmentCreated(source string) {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(source).Inc()
}

// BookingRejected фиксирует отклонённую попытку записи
func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingRejections.WithLabelValues(reason).Inc()
}

// StatusTransition фиксирует смену статуса записи
func (m *Metrics) StatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

// OrphanedFinancialRecord фиксирует отсутствие парной финансовой записи
func (m *Metrics) OrphanedFinancialRecord() {
	if m == nil {
		return
	}
	m.OrphanedFinancialRecords.Inc()
}

// SlotsObserved фиксирует количество сгенерированных слотов
func (m *Metrics) SlotsObserved(available, taken int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues("true").Add(float64(available))
	m.SlotsGenerated.WithLabelValues("false").Add(float64(taken))
}
