package babel

import (
	babelabi "github.com/kernel-community/nfteasy/babel-api/chainio/abi"
	"github.com/kernel-community/nfteasy/babel-api/chainio/api"
	"github.com/kernel-community/nfteasy/babel-api/chainio/io"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

type Service struct {
	ChainIO io.ETHChainIO
	Babel   api.Babel
}

func NewService() *Service {
	s := chain.NewService("babel")
	contractAddr := chain.MustAddress("Babel contract", conf.C.Contract.Babel)
	babel := api.NewBabelImpl(s.ChainIO, contractAddr, chain.ContractABI(babelabi.Babel))
	return &Service{ChainIO: s.ChainIO, Babel: babel}
}

// recipient falls back to [mint] to when no address is given.
func recipient(to string) string {
	if to == "" {
		return conf.C.Mint.To
	}
	return to
}
