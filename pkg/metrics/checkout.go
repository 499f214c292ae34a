package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout attempts and gateway behavior.
type CheckoutMetrics struct {
	duration        *prometheus.HistogramVec
	completed       *prometheus.CounterVec
	failed          *prometheus.CounterVec
	gatewayFailures prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout executions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"variant"})
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_completed_total",
		Help: "Checkouts that produced a confirmed order.",
	}, []string{"variant"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Checkouts rejected or aborted before an order was confirmed.",
	}, []string{"variant", "reason"})
	gatewayFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_gateway_failures_total",
		Help: "Payment gateway calls that returned an error.",
	})
	reg.MustRegister(duration, completed, failed, gatewayFailures)
	return &CheckoutMetrics{
		duration:        duration,
		completed:       completed,
		failed:          failed,
		gatewayFailures: gatewayFailures,
	}
}

// ObserveDuration records the duration for the named checkout variant.
func (c *CheckoutMetrics) ObserveDuration(variant string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(variant)).Observe(duration.Seconds())
}

// IncCompleted increments the completed counter for the named variant.
func (c *CheckoutMetrics) IncCompleted(variant string) {
	if c == nil || c.completed == nil {
		return
	}
	c.completed.WithLabelValues(normalizeLabel(variant)).Inc()
}

// IncFailed increments the failure counter for the named variant and reason.
func (c *CheckoutMetrics) IncFailed(variant, reason string) {
	if c == nil || c.failed == nil {
		return
	}
	c.failed.WithLabelValues(normalizeLabel(variant), normalizeLabel(reason)).Inc()
}

// IncGatewayFailure increments the payment gateway failure counter.
func (c *CheckoutMetrics) IncGatewayFailure() {
	if c == nil || c.gatewayFailures == nil {
		return
	}
	c.gatewayFailures.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
