package signer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	sdktypes "github.com/ethereum/go-ethereum/core/types"
)

// TxBackend is the part of an ethclient the transaction builder needs.
type TxBackend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*sdktypes.Header, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
}

type ETHSigner struct {
	client  TxBackend
	chainID *big.Int
}

func NewETHSigner(client TxBackend, chainID *big.Int) *ETHSigner {
	return &ETHSigner{client: client, chainID: chainID}
}

// TxRequest describes one dynamic fee transaction. A nil To deploys Data as
// contract creation code. A non-zero FixedGas skips estimation.
type TxRequest struct {
	From     common.Address
	To       *common.Address
	Value    *big.Int
	Data     []byte
	FixedGas uint64
}

func (e *ETHSigner) BuildAndSignTx(
	ctx context.Context,
	signerFn bind.SignerFn,
	req TxRequest,
	gasFeeCapAdjustmentRate int64,
	gasLimitAdjustmentRate float64,
	gasLimit uint64,
) (*sdktypes.Transaction, error) {
	unsignedTx, err := e.BuildUnsignedTx(ctx, req, gasFeeCapAdjustmentRate, gasLimitAdjustmentRate, gasLimit)
	if err != nil {
		return nil, err
	}

	signedTx, err := signerFn(req.From, unsignedTx)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signedTx, nil
}

func (e *ETHSigner) BuildUnsignedTx(
	ctx context.Context,
	req TxRequest,
	gasFeeCapAdjustmentRate int64,
	gasLimitAdjustmentRate float64,
	gasLimit uint64,
) (*sdktypes.Transaction, error) {
	nonce, err := e.client.PendingNonceAt(ctx, req.From)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasTipCap, gasFeeCap, err := e.SuggestGasFees(ctx, gasFeeCapAdjustmentRate)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas fees: %w", err)
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	gas := req.FixedGas
	if gas == 0 {
		estimateGasLimit, err := e.client.EstimateGas(ctx, ethereum.CallMsg{
			From:      req.From,
			To:        req.To,
			GasFeeCap: gasFeeCap,
			GasTipCap: gasTipCap,
			Value:     value,
			Data:      req.Data,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to estimate gas: %w", err)
		}
		gas = uint64(float64(estimateGasLimit) * gasLimitAdjustmentRate)
	}
	if gas > gasLimit {
		return nil, fmt.Errorf("failed to estimate gas limit (%d > %d)", gas, gasLimit)
	}

	tx := sdktypes.NewTx(&sdktypes.DynamicFeeTx{
		ChainID:   e.chainID,
		Nonce:     nonce,
		GasTipCap: gasTipCap,
		GasFeeCap: gasFeeCap,
		Gas:       gas,
		To:        req.To,
		Value:     value,
		Data:      req.Data,
	})
	return tx, nil
}

// SuggestGasFees
// gasTipCap  The user is willing to pay additional fees to the miner, in units of wei/gas
// gasFeeCap  The maximum fee per unit of gas that users are willing to pay for a transaction, also in units of wei/gas
func (e *ETHSigner) SuggestGasFees(ctx context.Context, gasFeeCapAdjustmentRate int64) (gasTipCap, gasFeeCap *big.Int, err error) {
	gasTipCap, err = e.client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to suggest gas tip cap: %w", err)
	}

	head, err := e.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get header: %w", err)
	}

	// gasFeeCap = baseFee * rate + gasTipCap; pre-London chains have no base fee
	baseFee := head.BaseFee
	if baseFee == nil {
		baseFee = new(big.Int)
	}
	gasFeeCap = new(big.Int).Mul(baseFee, big.NewInt(gasFeeCapAdjustmentRate))
	gasFeeCap.Add(gasFeeCap, gasTipCap)

	return gasTipCap, gasFeeCap, nil
}
