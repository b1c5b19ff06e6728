package api

import (
	"context"
	"fmt"
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

type Babel interface {
	Name(ctx context.Context) (string, error)
	Symbol(ctx context.Context) (string, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
	Owner(ctx context.Context) (common.Address, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)
	CollectionInfo(ctx context.Context) (*types.CollectionInfo, error)
	TokenInfo(ctx context.Context, tokenID *big.Int) (*types.TokenInfo, error)

	SafeMint(ctx context.Context, wallet types.ETHWallet, to common.Address, metadataURI string) (*sdktypes.Receipt, error)
	SafeBatchMint(ctx context.Context, wallet types.ETHWallet, to common.Address, metadataURIs []string) (*sdktypes.Receipt, error)
	Burn(ctx context.Context, wallet types.ETHWallet, tokenID *big.Int) (*sdktypes.Receipt, error)
	SetTokenURI(ctx context.Context, wallet types.ETHWallet, tokenID *big.Int, metadataURI string) (*sdktypes.Receipt, error)
	UpdateTokenURI(ctx context.Context, wallet types.ETHWallet, tokenID *big.Int, metadataURI string) (*sdktypes.Receipt, error)
	TransferOwnership(ctx context.Context, wallet types.ETHWallet, newOwner common.Address) (*sdktypes.Receipt, error)

	Indexer(source indexer.LogSource, startBlockHeight uint64, eventTypes []common.Hash, rateLimit rate.Limit, maxRetries int) *indexer.ETHIndexer
}

type babelImpl struct {
	contract
}

func NewBabelImpl(chainIO io.ETHChainIO, contractAddr common.Address, contractABI *abi.ABI) Babel {
	return &babelImpl{contract{io: chainIO, contractAddr: contractAddr, contractABI: contractABI}}
}

func (b *babelImpl) Name(ctx context.Context) (string, error) {
	var name string
	if err := b.call(ctx, "name", &name); err != nil {
		return "", err
	}
	return name, nil
}

func (b *babelImpl) Symbol(ctx context.Context) (string, error) {
	var symbol string
	if err := b.call(ctx, "symbol", &symbol); err != nil {
		return "", err
	}
	return symbol, nil
}

func (b *babelImpl) TotalSupply(ctx context.Context) (*big.Int, error) {
	var supply *big.Int
	if err := b.call(ctx, "totalSupply", &supply); err != nil {
		return nil, err
	}
	return supply, nil
}

func (b *babelImpl) Owner(ctx context.Context) (common.Address, error) {
	var addr common.Address
	if err := b.call(ctx, "owner", &addr); err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

func (b *babelImpl) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	if err := utils.CheckTokenID(tokenID); err != nil {
		return "", err
	}
	var uri string
	if err := b.call(ctx, "tokenURI", &uri, tokenID); err != nil {
		return "", err
	}
	return uri, nil
}

func (b *babelImpl) CollectionInfo(ctx context.Context) (*types.CollectionInfo, error) {
	var (
		info = new(types.CollectionInfo)
		err  error
	)
	if info.Name, err = b.Name(ctx); err != nil {
		return nil, err
	}
	if info.Symbol, err = b.Symbol(ctx); err != nil {
		return nil, err
	}
	if info.TotalSupply, err = b.TotalSupply(ctx); err != nil {
		return nil, err
	}
	if info.Owner, err = b.Owner(ctx); err != nil {
		return nil, err
	}
	return info, nil
}

func (b *babelImpl) TokenInfo(ctx context.Context, tokenID *big.Int) (*types.TokenInfo, error) {
	owner, err := b.OwnerOf(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	uri, err := b.TokenURI(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return &types.TokenInfo{TokenID: tokenID, Owner: owner, TokenURI: uri}, nil
}

func (b *babelImpl) SafeMint(ctx context.Context, wallet types.ETHWallet, to common.Address, metadataURI string) (*sdktypes.Receipt, error) {
	if to == (common.Address{}) {
		return nil, utils.ErrEmptyAddress
	}
	return b.send(ctx, wallet, 0, "safeMint", to, metadataURI)
}

// SafeBatchMint mints one token per uri to to in a single transaction, with a
// fixed gas budget per token.
func (b *babelImpl) SafeBatchMint(ctx context.Context, wallet types.ETHWallet, to common.Address, metadataURIs []string) (*sdktypes.Receipt, error) {
	if to == (common.Address{}) {
		return nil, utils.ErrEmptyAddress
	}
	if len(metadataURIs) == 0 {
		return nil, utils.ErrEmptyURIList
	}
	return b.send(ctx, wallet, types.MintGasPerToken*uint64(len(metadataURIs)), "safeBatchMint", to, metadataURIs)
}

func (b *babelImpl) Burn(ctx context.Context, wallet types.ETHWallet, tokenID *big.Int) (*sdktypes.Receipt, error) {
	if err := utils.CheckTokenID(tokenID); err != nil {
		return nil, err
	}
	return b.send(ctx, wallet, types.BurnGas, "burn", tokenID)
}

// SetTokenURI is restricted to the collection owner.
func (b *babelImpl) SetTokenURI(ctx context.Context, wallet types.ETHWallet, tokenID *big.Int, metadataURI string) (*sdktypes.Receipt, error) {
	if err := utils.CheckTokenID(tokenID); err != nil {
		return nil, err
	}
	return b.send(ctx, wallet, 0, "setTokenURI", tokenID, metadataURI)
}

// UpdateTokenURI is restricted to the token holder and emits TokenURIUpdated.
func (b *babelImpl) UpdateTokenURI(ctx context.Context, wallet types.ETHWallet, tokenID *big.Int, metadataURI string) (*sdktypes.Receipt, error) {
	if err := utils.CheckTokenID(tokenID); err != nil {
		return nil, err
	}
	return b.send(ctx, wallet, 0, "updateTokenURI", tokenID, metadataURI)
}

func (b *babelImpl) TransferOwnership(ctx context.Context, wallet types.ETHWallet, newOwner common.Address) (*sdktypes.Receipt, error) {
	if newOwner == (common.Address{}) {
		return nil, utils.ErrEmptyAddress
	}
	return b.send(ctx, wallet, 0, "transferOwnership", newOwner)
}

// ParseTransfer converts an indexed Transfer event.
func ParseTransfer(event *indexer.Event) (*types.TransferEvent, error) {
	if event.EventType != "Transfer" {
		return nil, fmt.Errorf("unexpected event type %s", event.EventType)
	}
	from, ok1 := event.AttrMap["from"].(common.Address)
	to, ok2 := event.AttrMap["to"].(common.Address)
	tokenID, ok3 := event.AttrMap["tokenId"].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("malformed Transfer event in tx %s", event.TxHash)
	}
	return &types.TransferEvent{From: from, To: to, TokenID: tokenID}, nil
}

func ParseTokenURIUpdated(event *indexer.Event) (*types.TokenURIUpdatedEvent, error) {
	if event.EventType != "TokenURIUpdated" {
		return nil, fmt.Errorf("unexpected event type %s", event.EventType)
	}
	tokenID, ok1 := event.AttrMap["tokenId"].(*big.Int)
	uri, ok2 := event.AttrMap["tokenURI"].(string)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("malformed TokenURIUpdated event in tx %s", event.TxHash)
	}
	return &types.TokenURIUpdatedEvent{TokenID: tokenID, TokenURI: uri}, nil
}
