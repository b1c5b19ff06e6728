package merklemint

import (
	babelabi "github.com/kernel-community/nfteasy/babel-api/chainio/abi"
	"github.com/kernel-community/nfteasy/babel-api/chainio/api"
	"github.com/kernel-community/nfteasy/babel-api/chainio/io"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

type Service struct {
	ChainIO    io.ETHChainIO
	MerkleMint api.BabelMerkleMint
}

func NewService() *Service {
	s := chain.NewService("merkle_mint")
	contractAddr := chain.MustAddress("BabelMerkleMint contract", conf.C.Contract.BabelMerkleMint)
	merkleMint := api.NewBabelMerkleMintImpl(s.ChainIO, contractAddr, chain.ContractABI(babelabi.BabelMerkleMint))
	return &Service{ChainIO: s.ChainIO, MerkleMint: merkleMint}
}
