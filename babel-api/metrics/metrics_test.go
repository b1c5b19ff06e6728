package metrics_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/kernel-community/nfteasy/babel-api/logger"
	"github.com/kernel-community/nfteasy/babel-api/metrics"
	"github.com/kernel-community/nfteasy/babel-api/metrics/indicators/claims"
	transactionprocess "github.com/kernel-community/nfteasy/babel-api/metrics/indicators/transaction_process"
)

type BabelMetricsTestSuite struct {
	suite.Suite
	reg         *prometheus.Registry
	logger      logger.Logger
	testAddress string
}

func (suite *BabelMetricsTestSuite) SetupTest() {
	suite.reg = prometheus.NewRegistry()
	suite.logger = logger.NewMockELKLogger()
	suite.testAddress = "localhost:8091"
}

func (suite *BabelMetricsTestSuite) Test_Start() {
	claims.NewPromIndicators("BabelAuthMint", suite.reg).IncrementSignaturesTotal("success")
	transactionprocess.NewPromIndicators(suite.reg, "babel").IncrementProcessedTxsTotal("success")

	metricsServer := metrics.NewBabelMetrics(suite.testAddress, suite.logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errChan := metricsServer.Start(ctx, suite.reg)

	var resp *http.Response
	require.Eventually(suite.T(), func() bool {
		var err error
		resp, err = http.Get("http://" + suite.testAddress + "/metrics")
		return err == nil
	}, 3*time.Second, 50*time.Millisecond)
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), string(body), "babel_claim_signatures_total")
	assert.Contains(suite.T(), string(body), "transaction_process_babel_processed_txs_total")

	cancel()
	select {
	case err := <-errChan:
		if err != nil {
			suite.T().Fatalf("server failed with error: %v", err)
		}
	case <-time.After(2 * time.Second):
		suite.T().Fatal("server shutdown timed out")
	}
}

func TestBabelMetricsTestSuite(t *testing.T) {
	suite.Run(t, new(BabelMetricsTestSuite))
}
