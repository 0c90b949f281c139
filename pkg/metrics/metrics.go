package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stemwithlyn/booking/internal/common/config"
)

// Metrics holds the service collectors on a private registry
type Metrics struct {
	registry   *prometheus.Registry
	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec
	httpInfl   *prometheus.GaugeVec
	bookingCnt *prometheus.CounterVec
	bookingDur *prometheus.HistogramVec
	ledgerCnt  *prometheus.CounterVec
	selfSvcCnt *prometheus.CounterVec
	notifyCnt  *prometheus.CounterVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	bookingCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "bookings_total"}, []string{"origin", "result"})
	bookingDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "booking_duration_seconds", Buckets: buckets}, []string{"origin"})
	ledgerCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "ledger_entries_total"}, []string{"source"})
	selfSvcCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "self_service_total"}, []string{"action", "result"})
	notifyCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "notifications_total"}, []string{"event", "status"})
	r.MustRegister(bookingCnt, bookingDur, ledgerCnt, selfSvcCnt, notifyCnt)

	return &Metrics{
		registry:   r,
		httpReqCnt: httpReqCnt,
		httpDur:    httpDur,
		httpInfl:   httpInfl,
		bookingCnt: bookingCnt,
		bookingDur: bookingDur,
		ledgerCnt:  ledgerCnt,
		selfSvcCnt: selfSvcCnt,
		notifyCnt:  notifyCnt,
	}
}

// BookingDone records one create-appointments call. origin is admin or client.
func (m *Metrics) BookingDone(origin, result string, since time.Time) {
	if m == nil {
		return
	}
	m.bookingCnt.WithLabelValues(origin, result).Inc()
	m.bookingDur.WithLabelValues(origin).Observe(time.Since(since).Seconds())
}

// LedgerEntry counts ledger rows written, source is paypal or manual
func (m *Metrics) LedgerEntry(source string) {
	if m == nil {
		return
	}
	m.ledgerCnt.WithLabelValues(source).Inc()
}

func (m *Metrics) SelfService(action, result string) {
	if m == nil {
		return
	}
	m.selfSvcCnt.WithLabelValues(action, result).Inc()
}

func (m *Metrics) Notification(event, status string) {
	if m == nil {
		return
	}
	m.notifyCnt.WithLabelValues(event, status).Inc()
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
