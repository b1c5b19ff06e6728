package authmint

import (
	"github.com/prometheus/client_golang/prometheus"

	babelabi "github.com/kernel-community/nfteasy/babel-api/chainio/abi"
	"github.com/kernel-community/nfteasy/babel-api/chainio/api"
	"github.com/kernel-community/nfteasy/babel-api/chainio/io"
	"github.com/kernel-community/nfteasy/babel-api/logger"
	"github.com/kernel-community/nfteasy/babel-api/metrics/indicators/claims"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

type Service struct {
	ChainIO  io.ETHChainIO
	Logger   logger.Logger
	AuthMint api.BabelAuthMint
	Claims   claims.Indicators
	Registry *prometheus.Registry
}

func NewService() *Service {
	s := chain.NewService("auth_mint")
	contractAddr := chain.MustAddress("BabelAuthMint contract", conf.C.Contract.BabelAuthMint)
	authMint := api.NewBabelAuthMintImpl(s.ChainIO, contractAddr, chain.ContractABI(babelabi.BabelAuthMint))
	return &Service{
		ChainIO:  s.ChainIO,
		Logger:   s.Logger,
		AuthMint: authMint,
		Claims:   claims.NewPromIndicators(babelabi.BabelAuthMint, s.Registry),
		Registry: s.Registry,
	}
}
