// Package metric provides a RED (requests, errors, duration) metrics
// client used by capability middleware decorators.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// REDClient records RED metrics for the operations of a single service.
type REDClient struct {
	requests *prometheus.CounterVec
	errs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a new REDClient. Metric names are prefixed with the service
// name, e.g. order_service_requests_total.
func New(reg prometheus.Registerer, service string) *REDClient {
	client := &REDClient{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Subsystem: "service",
			Name:      "requests_total",
			Help:      "Number of calls",
		}, []string{"method"}),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Subsystem: "service",
			Name:      "errors_total",
			Help:      "Number of errors encountered",
		}, []string{"method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Subsystem: "service",
			Name:      "duration_seconds",
			Help:      "Duration of calls",
			Buckets:   prometheus.ExponentialBuckets(0.001, 5, 7),
		}, []string{"method"}),
	}
	reg.MustRegister(client.requests, client.errs, client.duration)
	return client
}

// Record returns a completion function to be called with the outcome of
// the operation. The completion function passes through the error so a
// call site can stay a one-liner:
//
//	rec := client.Record("create_order")
//	err := svc.CreateOrder(ctx, o)
//	return rec(err)
func (c *REDClient) Record(method string) func(error) error {
	start := time.Now()
	return func(err error) error {
		c.requests.With(prometheus.Labels{"method": method}).Inc()
		if err != nil {
			c.errs.With(prometheus.Labels{"method": method}).Inc()
		}
		c.duration.With(prometheus.Labels{"method": method}).Observe(time.Since(start).Seconds())
		return err
	}
}
