// Package http exposes the platform over HTTP. The handler stack runs,
// outermost first: CORS, metrics, logging, gzip, authentication, then
// the tenancy binder, so every route below the binder sees capability
// bindings for the request's tenant.
package http

import (
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/jsonweb"
	kithttp "github.com/orderly-app/orderly/kit/transport/http"
	"github.com/orderly-app/orderly/tenancy"
)

// APIHandler is the root handler of the platform API.
type APIHandler struct {
	http.Handler
}

// APIBackend holds the services and parameters required to construct an
// APIHandler.
type APIBackend struct {
	Log *zap.Logger

	TokenParser *jsonweb.TokenParser
	UserService orderly.UserService
	Binder      *tenancy.Binder
	Jobs        OrderEnqueuer

	// Registry receives the handler's request metrics. A nil Registry
	// disables metric collection.
	Registry *prometheus.Registry
}

// NewAPIHandler constructs the full handler stack.
func NewAPIHandler(b *APIBackend) *APIHandler {
	r := chi.NewRouter()

	r.Get("/ready", ReadyHandler(time.Now()))
	if b.Registry != nil {
		r.Mount("/metrics", promhttp.HandlerFor(b.Registry, promhttp.HandlerOpts{}))
	}

	// Everything under the binder is tenant-aware.
	r.Group(func(r chi.Router) {
		r.Use(b.Binder.Middleware)
		r.Mount("/health", NewHealthHandler(b.Log.With(zap.String("handler", "health"))))
		r.Mount("/api/v1/orders", NewOrderHandler(b.Log.With(zap.String("handler", "order")), b.Jobs))
	})

	var h http.Handler = NewAuthenticationHandler(b.Log, b.TokenParser, b.UserService, r)
	h = gziphandler.GzipHandler(h)
	h = kithttp.Logging(b.Log)(h)
	if b.Registry != nil {
		reqMetric, durMetric := apiMetrics()
		b.Registry.MustRegister(reqMetric, durMetric)
		h = kithttp.Metrics("api", reqMetric, durMetric)(h)
	}
	h = kithttp.SetCORS(h)

	return &APIHandler{Handler: h}
}

func apiMetrics() (*prometheus.CounterVec, *prometheus.HistogramVec) {
	labels := []string{"handler", "method", "path", "status", "response_code", "user_agent"}
	reqMetric := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "http",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Number of http requests received.",
	}, labels)
	durMetric := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "http",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Time taken to respond to a http request.",
	}, labels)
	return reqMetric, durMetric
}
