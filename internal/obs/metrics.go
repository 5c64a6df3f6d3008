// Package obs holds the Prometheus collectors for RPC traffic and for the
// bill-splitting domain. A nil *Metrics is valid and records nothing.
package obs

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/billease/internal/models"
)

// Extraction outcomes.
const (
	ExtractOK            = "ok"
	ExtractClientError   = "client_error"
	ExtractInvalidOutput = "invalid_output"
	ExtractNoItems       = "no_items"
)

// Metrics groups every collector the server exports.
type Metrics struct {
	RPCTotal    *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	CalculationsTotal   *prometheus.CounterVec
	RoundingAdjustments prometheus.Counter
	ManualSplitItems    prometheus.Counter

	ExtractionsTotal   *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram
	ExtractedItems     prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg
// (prometheus.DefaultRegisterer when nil).
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		RPCTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_request_duration_ms",
			Help:      "RPC latency distribution in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}, []string{"procedure"}),
		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_calculations_total",
			Help:      "Split calculations by reconciliation result.",
		}, []string{"result"}),
		RoundingAdjustments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_rounding_adjustments_total",
			Help:      "Calculations whose rounded amounts needed a correction.",
		}),
		ManualSplitItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_manual_items_total",
			Help:      "Items split with manual amounts.",
		}),
		ExtractionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Bill image extractions by outcome.",
		}, []string{"result"}),
		ExtractionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_ms",
			Help:      "Bill image extraction latency in milliseconds.",
			Buckets:   []float64{250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		}),
		ExtractedItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extracted_items_total",
			Help:      "Line items returned by successful extractions.",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.RPCTotal, m.RPCDuration,
		m.CalculationsTotal, m.RoundingAdjustments, m.ManualSplitItems,
		m.ExtractionsTotal, m.ExtractionDuration, m.ExtractedItems,
	} {
		if err := reg.Register(c); err != nil {
			panic(fmt.Errorf("register metric: %w", err))
		}
	}
	return m
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.RPCTotal.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(DurationMillis(d))
}

// ObserveCalculation records a finished split calculation.
func (m *Metrics) ObserveCalculation(bill *models.Bill) {
	if m == nil || bill.Result == nil {
		return
	}
	result := "reconciled"
	if !bill.Result.Reconciled {
		result = "unreconciled"
	}
	m.CalculationsTotal.WithLabelValues(result).Inc()
	if !bill.Result.RoundingAdjustment.IsZero() {
		m.RoundingAdjustments.Inc()
	}
	for _, item := range bill.Items {
		if len(item.ManualSplit) > 0 {
			m.ManualSplitItems.Inc()
		}
	}
}

// ObserveExtraction records one extraction attempt.
func (m *Metrics) ObserveExtraction(outcome string, d time.Duration, items int) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(outcome).Inc()
	m.ExtractionDuration.Observe(DurationMillis(d))
	if outcome == ExtractOK {
		m.ExtractedItems.Add(float64(items))
	}
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
