package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipehub_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recipehub_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipehub_users_registered_total",
		Help: "Accounts created.",
	})

	RecipesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipehub_recipes_uploaded_total",
		Help: "Recipes created through the API.",
	})

	ReviewsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipehub_reviews_created_total",
		Help: "Reviews created.",
	})

	ImportedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipehub_import_rows_total",
		Help: "CSV import rows by result (imported, skipped, failed).",
	}, []string{"result"})
)

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
