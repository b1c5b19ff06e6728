package api

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	sdktypes "github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/time/rate"

	"github.com/kernel-community/nfteasy/babel-api/chainio/indexer"
	"github.com/kernel-community/nfteasy/babel-api/chainio/io"
	"github.com/kernel-community/nfteasy/babel-api/chainio/types"
	"github.com/kernel-community/nfteasy/babel-api/merkle"
	"github.com/kernel-community/nfteasy/babel-api/utils"
)

// BabelMerkleMint mints a token to any account that proves membership in
// the allow-list committed at deployment.
type BabelMerkleMint interface {
	Address() common.Address
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)

	Claim(ctx context.Context, wallet types.ETHWallet, entry merkle.Entry, proof merkle.Proof) (*sdktypes.Receipt, error)

	Indexer(source indexer.LogSource, startBlockHeight uint64, eventTypes []common.Hash, rateLimit rate.Limit, maxRetries int) *indexer.ETHIndexer
}

type babelMerkleMintImpl struct {
	contract
}

func NewBabelMerkleMintImpl(chainIO io.ETHChainIO, contractAddr common.Address, contractABI *abi.ABI) BabelMerkleMint {
	return &babelMerkleMintImpl{contract{io: chainIO, contractAddr: contractAddr, contractABI: contractABI}}
}

func (b *babelMerkleMintImpl) Claim(ctx context.Context, wallet types.ETHWallet, entry merkle.Entry, proof merkle.Proof) (*sdktypes.Receipt, error) {
	if err := utils.CheckTokenID(entry.TokenID); err != nil {
		return nil, err
	}
	if entry.Account == (common.Address{}) {
		return nil, utils.ErrEmptyAddress
	}
	siblings := make([][32]byte, len(proof))
	for i, h := range proof {
		siblings[i] = h
	}
	return b.send(ctx, wallet, 0, "claim", entry.Account, entry.TokenID, siblings)
}
