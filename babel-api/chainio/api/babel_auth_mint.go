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
	"github.com/kernel-community/nfteasy/babel-api/signer"
	"github.com/kernel-community/nfteasy/babel-api/utils"
)

// BabelAuthMint mints a token to whoever presents a claim signature from an
// account holding MINTER_ROLE.
type BabelAuthMint interface {
	Address() common.Address
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	MinterRole(ctx context.Context) (common.Hash, error)
	HasRole(ctx context.Context, role common.Hash, account common.Address) (bool, error)
	IsMinter(ctx context.Context, account common.Address) (bool, error)
	Domain(ctx context.Context, name, version string) (signer.SigningDomain, error)
	SignClaim(ctx context.Context, hs signer.HashSigner, name, version string, req signer.ClaimRequest) (signer.ClaimSignature, error)

	GrantRole(ctx context.Context, wallet types.ETHWallet, role common.Hash, account common.Address) (*sdktypes.Receipt, error)
	RevokeRole(ctx context.Context, wallet types.ETHWallet, role common.Hash, account common.Address) (*sdktypes.Receipt, error)
	GrantMinter(ctx context.Context, wallet types.ETHWallet, account common.Address) (*sdktypes.Receipt, error)
	Claim(ctx context.Context, wallet types.ETHWallet, req signer.ClaimRequest, sig signer.ClaimSignature) (*sdktypes.Receipt, error)

	Indexer(source indexer.LogSource, startBlockHeight uint64, eventTypes []common.Hash, rateLimit rate.Limit, maxRetries int) *indexer.ETHIndexer
}

type babelAuthMintImpl struct {
	contract
}

func NewBabelAuthMintImpl(chainIO io.ETHChainIO, contractAddr common.Address, contractABI *abi.ABI) BabelAuthMint {
	return &babelAuthMintImpl{contract{io: chainIO, contractAddr: contractAddr, contractABI: contractABI}}
}

func (b *babelAuthMintImpl) MinterRole(ctx context.Context) (common.Hash, error) {
	var role [32]byte
	if err := b.call(ctx, "MINTER_ROLE", &role); err != nil {
		return common.Hash{}, err
	}
	return role, nil
}

func (b *babelAuthMintImpl) HasRole(ctx context.Context, role common.Hash, account common.Address) (bool, error) {
	var ok bool
	if err := b.call(ctx, "hasRole", &ok, [32]byte(role), account); err != nil {
		return false, err
	}
	return ok, nil
}

func (b *babelAuthMintImpl) IsMinter(ctx context.Context, account common.Address) (bool, error) {
	role, err := b.MinterRole(ctx)
	if err != nil {
		return false, err
	}
	return b.HasRole(ctx, role, account)
}

// Domain is the EIP-712 domain this deployment verifies claims under.
func (b *babelAuthMintImpl) Domain(ctx context.Context, name, version string) (signer.SigningDomain, error) {
	chainID, err := b.io.GetChainID(ctx)
	if err != nil {
		return signer.SigningDomain{}, err
	}
	if name == "" {
		name = signer.DefaultDomainName
	}
	if version == "" {
		version = signer.DefaultDomainVersion
	}
	return signer.SigningDomain{
		Name:              name,
		Version:           version,
		ChainID:           chainID,
		VerifyingContract: b.contractAddr,
	}, nil
}

func (b *babelAuthMintImpl) SignClaim(ctx context.Context, hs signer.HashSigner, name, version string, req signer.ClaimRequest) (signer.ClaimSignature, error) {
	domain, err := b.Domain(ctx, name, version)
	if err != nil {
		return signer.ClaimSignature{}, err
	}
	return signer.BuildSignature(domain, req, hs)
}

func (b *babelAuthMintImpl) GrantRole(ctx context.Context, wallet types.ETHWallet, role common.Hash, account common.Address) (*sdktypes.Receipt, error) {
	if account == (common.Address{}) {
		return nil, utils.ErrEmptyAddress
	}
	return b.send(ctx, wallet, 0, "grantRole", [32]byte(role), account)
}

func (b *babelAuthMintImpl) RevokeRole(ctx context.Context, wallet types.ETHWallet, role common.Hash, account common.Address) (*sdktypes.Receipt, error) {
	if account == (common.Address{}) {
		return nil, utils.ErrEmptyAddress
	}
	return b.send(ctx, wallet, 0, "revokeRole", [32]byte(role), account)
}

func (b *babelAuthMintImpl) GrantMinter(ctx context.Context, wallet types.ETHWallet, account common.Address) (*sdktypes.Receipt, error) {
	role, err := b.MinterRole(ctx)
	if err != nil {
		return nil, err
	}
	return b.GrantRole(ctx, wallet, role, account)
}

func (b *babelAuthMintImpl) Claim(ctx context.Context, wallet types.ETHWallet, req signer.ClaimRequest, sig signer.ClaimSignature) (*sdktypes.Receipt, error) {
	if err := utils.CheckTokenID(req.TokenID); err != nil {
		return nil, err
	}
	return b.send(ctx, wallet, 0, "claim", req.Account, req.TokenID, sig.Bytes())
}
