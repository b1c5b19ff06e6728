package transactionprocess

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kernel-community/nfteasy/babel-api/metrics/consts"
)

type Indicators interface {
	ObserveBroadcastLatencyMs(latencyMs int64)
	ObserveConfirmationLatencyMs(latencyMs int64)
	ObserveGasUsed(gasUsed uint64)
	ObserveRetries(retries int)
	IncrementProcessingTxCount()
	DecrementProcessingTxCount()
	IncrementProcessedTxsTotal(state string)
}

type PromIndicators struct {
	broadcastLatencyMs    prometheus.Summary
	confirmationLatencyMs prometheus.Summary
	gasUsed               prometheus.Summary
	retries               prometheus.Histogram
	processingTxCount     prometheus.Gauge
	processedTxsTotal     *prometheus.CounterVec
}

var _ Indicators = (*PromIndicators)(nil)

var objectives = map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.01, 0.99: 0.001}

// NewPromIndicators registers the transaction indicators of one contract
// client under subsystem.
func NewPromIndicators(reg prometheus.Registerer, subsystem string) *PromIndicators {
	return &PromIndicators{
		broadcastLatencyMs: promauto.With(reg).NewSummary(
			prometheus.SummaryOpts{
				Namespace:  consts.TransactionProcess,
				Subsystem:  subsystem,
				Name:       "broadcast_latency_ms",
				Help:       "time from first send attempt to node acceptance in milliseconds",
				Objectives: objectives,
			},
		),
		confirmationLatencyMs: promauto.With(reg).NewSummary(
			prometheus.SummaryOpts{
				Namespace:  consts.TransactionProcess,
				Subsystem:  subsystem,
				Name:       "confirmation_latency_ms",
				Help:       "total transaction confirmation latency summary in milliseconds",
				Objectives: objectives,
			},
		),
		gasUsed: promauto.With(reg).NewSummary(
			prometheus.SummaryOpts{
				Namespace:  consts.TransactionProcess,
				Subsystem:  subsystem,
				Name:       "gas_used",
				Help:       "gas used by each confirmed transaction",
				Objectives: objectives,
			},
		),
		retries: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: consts.TransactionProcess,
				Subsystem: subsystem,
				Name:      "retries_total",
				Help:      "number of times a transaction had to be re-sent",
				Buckets:   prometheus.LinearBuckets(0, 1, 10),
			},
		),
		processingTxCount: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: consts.TransactionProcess,
				Subsystem: subsystem,
				Name:      "processing_tx_count",
				Help:      "number of transactions currently being processed",
			},
		),
		processedTxsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: consts.TransactionProcess,
				Subsystem: subsystem,
				Name:      "processed_txs_total",
				Help:      "number of transactions processed by state (success, failure, reverted)",
			},
			[]string{"state"},
		),
	}
}

func (p *PromIndicators) ObserveBroadcastLatencyMs(latencyMs int64) {
	p.broadcastLatencyMs.Observe(float64(latencyMs))
}

func (p *PromIndicators) ObserveConfirmationLatencyMs(latencyMs int64) {
	p.confirmationLatencyMs.Observe(float64(latencyMs))
}

func (p *PromIndicators) ObserveGasUsed(gasUsed uint64) {
	p.gasUsed.Observe(float64(gasUsed))
}

func (p *PromIndicators) ObserveRetries(retries int) {
	p.retries.Observe(float64(retries))
}

func (p *PromIndicators) IncrementProcessingTxCount() {
	p.processingTxCount.Inc()
}

func (p *PromIndicators) DecrementProcessingTxCount() {
	p.processingTxCount.Dec()
}

func (p *PromIndicators) IncrementProcessedTxsTotal(state string) {
	p.processedTxsTotal.WithLabelValues(state).Inc()
}
