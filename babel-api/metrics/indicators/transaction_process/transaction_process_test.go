package transactionprocess

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTransactionProcessIndicators(t *testing.T) {
	reg := prometheus.NewRegistry()
	indicators := NewPromIndicators(reg, "babel")

	indicators.IncrementProcessingTxCount()
	indicators.IncrementProcessingTxCount()
	indicators.DecrementProcessingTxCount()
	assert.Equal(t, 1.0, testutil.ToFloat64(indicators.processingTxCount))

	indicators.IncrementProcessedTxsTotal("success")
	indicators.IncrementProcessedTxsTotal("success")
	indicators.IncrementProcessedTxsTotal("failure")
	assert.Equal(t, 2.0, testutil.ToFloat64(indicators.processedTxsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(indicators.processedTxsTotal.WithLabelValues("failure")))

	indicators.ObserveGasUsed(21000)
	indicators.ObserveRetries(2)
	indicators.ObserveBroadcastLatencyMs(10)
	indicators.ObserveConfirmationLatencyMs(20)
	count, err := testutil.GatherAndCount(reg, "transaction_process_babel_gas_used", "transaction_process_babel_retries_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
