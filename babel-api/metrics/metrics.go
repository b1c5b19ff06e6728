package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kernel-community/nfteasy/babel-api/logger"
	"github.com/kernel-community/nfteasy/babel-api/utils"
)

type Metrics interface {
	Start(ctx context.Context, reg prometheus.Gatherer) <-chan error
}

type BabelMetrics struct {
	ipPortAddress string
	logger        logger.Logger
}

var _ Metrics = (*BabelMetrics)(nil)

func NewBabelMetrics(ipPortAddress string, logger logger.Logger) Metrics {
	return &BabelMetrics{
		ipPortAddress: ipPortAddress,
		logger:        logger,
	}
}

// Start serves reg on "/metrics" until ctx is done. The returned channel is
// closed after shutdown.
func (s BabelMetrics) Start(ctx context.Context, reg prometheus.Gatherer) <-chan error {
	s.logger.Info("Starting metrics server", logger.WithField("ipPortAddress", s.ipPortAddress))
	errChan := make(chan error, 1)
	mux := http.NewServeMux()
	httpServer := http.Server{
		Addr:    s.ipPortAddress,
		Handler: mux,
	}
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		<-ctx.Done()
		s.logger.Info("shutdown signal received")
		defer close(errChan)

		if err := httpServer.Shutdown(context.Background()); err != nil {
			errChan <- err
		}
		s.logger.Info("shutdown completed")
	}()

	go func() {
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			s.logger.Info("server closed")
			return
		}
		select {
		case errChan <- utils.WrapError("prometheus server failed", err):
		default:
		}
	}()
	return errChan
}
