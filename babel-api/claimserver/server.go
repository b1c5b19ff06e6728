package claimserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kernel-community/nfteasy/babel-api/authority"
	"github.com/kernel-community/nfteasy/babel-api/logger"
	"github.com/kernel-community/nfteasy/babel-api/merkle"
	"github.com/kernel-community/nfteasy/babel-api/metrics/indicators/claims"
	"github.com/kernel-community/nfteasy/babel-api/signer"
)

type Config struct {
	Addr       string
	Domain     signer.SigningDomain
	Signer     signer.HashSigner
	Registry   authority.Registry
	Store      ClaimStore
	ClaimsFile *merkle.ClaimsFile // optional, serves allow-list proofs
	Logger     logger.Logger
	Indicators claims.Indicators
}

// Server issues claim signatures over HTTP on behalf of one authority.
type Server struct {
	cfg    Config
	engine *gin.Engine
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Signer == nil {
		return nil, errors.New("claim server needs a signer")
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.Registry == nil {
		cfg.Registry = authority.NewStaticRegistry(cfg.Signer.Address())
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewMockELKLogger()
	}
	if cfg.Domain.ChainID == nil {
		return nil, signer.ErrNilChainID
	}

	if cfg.ClaimsFile != nil && cfg.Indicators != nil {
		cfg.Indicators.SetAllowListSize(len(cfg.ClaimsFile.Claims))
	}

	s := &Server{cfg: cfg, engine: gin.New()}
	s.engine.Use(gin.Recovery(), s.accessLog)
	s.engine.GET("/healthz", s.health)
	s.engine.GET("/domain", s.domain)
	s.engine.POST("/claims", s.issueClaim)
	s.engine.GET("/claims/:tokenId", s.getClaim)
	s.engine.POST("/claims/verify", s.verifyClaim)
	s.engine.GET("/merkle/root", s.merkleRoot)
	s.engine.GET("/merkle/proof", s.merkleProof)
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ok, err := s.cfg.Registry.IsAuthority(ctx, s.cfg.Signer.Address())
	switch {
	case err != nil:
		s.cfg.Logger.Warn("could not check signer authority", logger.WithField("err", err))
	case !ok:
		s.cfg.Logger.Warn("signer holds no minting authority, issued claims will be rejected on chain",
			logger.WithField("signer", s.cfg.Signer.Address().Hex()))
	}

	errChan := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("claim server listening", logger.WithField("addr", s.cfg.Addr),
			logger.WithField("contract", s.cfg.Domain.VerifyingContract.Hex()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("claim server failed: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.cfg.Logger.Info("claim server stopped")
	return nil
}

func (s *Server) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.cfg.Logger.Debug("request",
		logger.WithField("method", c.Request.Method),
		logger.WithField("path", c.FullPath()),
		logger.WithField("status", c.Writer.Status()),
		logger.WithField("latency_ms", time.Since(start).Milliseconds()),
	)
}
