package http

import (
	"strconv"
	"time"

	"pizzeria/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the HTTP adapter. They are registered on the
// registry passed to NewMetrics, so tests can use a fresh one per server.
type Metrics struct {
	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	orderTransitions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pizzeria_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pizzeria_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		orderTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pizzeria_order_transitions_total",
				Help: "Orders moved into a status through the API",
			},
			[]string{"status"},
		),
	}
}

// middleware records one sample per request. The route template is used as the path label
// so ids do not explode the label cardinality. Errors are rendered here so the recorded
// status is the one the client gets; the error still travels up to the request logger.
func (m *Metrics) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.requests.WithLabelValues(c.Request().Method, path, strconv.Itoa(c.Response().Status)).Inc()
			m.duration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) orderTransition(status order.Status) {
	m.orderTransitions.WithLabelValues(status.String()).Inc()
}
