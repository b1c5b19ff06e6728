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
	"github.com/kernel-community/nfteasy/babel-api/utils"
)

// contract holds what every Babel binding shares: ERC-721 views and the
// call/send plumbing.
type contract struct {
	io           io.ETHChainIO
	contractAddr common.Address
	contractABI  *abi.ABI
}

func (c *contract) call(ctx context.Context, method string, result interface{}, args ...interface{}) error {
	if args == nil {
		args = []interface{}{}
	}
	return c.io.CallContract(ctx, types.ETHCallOptions{
		ContractAddr: c.contractAddr,
		ContractABI:  c.contractABI,
		Method:       method,
		Args:         args,
	}, result)
}

func (c *contract) send(ctx context.Context, wallet types.ETHWallet, gasLimit uint64, method string, args ...interface{}) (*sdktypes.Receipt, error) {
	if args == nil {
		args = []interface{}{}
	}
	return c.io.SendTransaction(ctx, types.ETHExecuteOptions{
		ETHWallet: wallet,
		ETHCallOptions: types.ETHCallOptions{
			ContractAddr: c.contractAddr,
			ContractABI:  c.contractABI,
			Method:       method,
			Args:         args,
		},
		GasLimit: gasLimit,
	})
}

func (c *contract) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	if err := utils.CheckTokenID(tokenID); err != nil {
		return common.Address{}, err
	}
	var addr common.Address
	if err := c.call(ctx, "ownerOf", &addr, tokenID); err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

func (c *contract) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	var balance *big.Int
	if err := c.call(ctx, "balanceOf", &balance, owner); err != nil {
		return nil, err
	}
	return balance, nil
}

func (c *contract) Address() common.Address {
	return c.contractAddr
}

func (c *contract) Indexer(source indexer.LogSource, startBlockHeight uint64, eventTypes []common.Hash, rateLimit rate.Limit, maxRetries int) *indexer.ETHIndexer {
	return indexer.NewETHIndexer(source, c.contractABI, c.contractAddr, startBlockHeight, eventTypes, rateLimit, maxRetries)
}
