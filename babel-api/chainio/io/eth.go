package io

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	sdktypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/kernel-community/nfteasy/babel-api/chainio/types"
	"github.com/kernel-community/nfteasy/babel-api/logger"
	transactionprocess "github.com/kernel-community/nfteasy/babel-api/metrics/indicators/transaction_process"
	"github.com/kernel-community/nfteasy/babel-api/signer"
)

var (
	ErrZeroContract = errors.New("contract address cannot be zero address")
	ErrTxReverted   = errors.New("transaction reverted")
)

// Backend is the RPC surface chain IO needs. Both *ethclient.Client and the
// simulated backend client satisfy it.
type Backend interface {
	signer.TxBackend
	ethereum.ChainIDReader
	ethereum.BlockNumberReader
	ethereum.ContractCaller
	ethereum.LogFilterer
	SendTransaction(ctx context.Context, tx *sdktypes.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*sdktypes.Receipt, error)
}

type ETHChainIO interface {
	SendTransaction(ctx context.Context, params types.ETHExecuteOptions) (*sdktypes.Receipt, error)
	ExecuteContract(ctx context.Context, params types.ETHExecuteOptions) (*sdktypes.Transaction, error)
	DeployContract(ctx context.Context, params types.ETHDeployOptions) (common.Address, *sdktypes.Receipt, error)
	CallContract(ctx context.Context, params types.ETHCallOptions, result interface{}) error
	GetLatestBlockNumber(ctx context.Context) (uint64, error)
	GetChainID(ctx context.Context) (*big.Int, error)
	CreateAccount(pwd string) (accounts.Account, error)
	ImportKey(privateKeyHex string, pwd string) (accounts.Account, error)
	ListAccounts() []accounts.Account
	LockAccount(address common.Address) error
	SignHash(wallet types.ETHWallet, hash []byte) ([]byte, error)
	HashSigner(wallet types.ETHWallet) (signer.HashSigner, error)
	GetBackend() Backend
	Close()
}

type ethChainIO struct {
	client            Backend
	signer            *signer.ETHSigner
	logger            logger.Logger
	metricsIndicators transactionprocess.Indicators
	params            types.TxManagerParams
	ks                *keystore.KeyStore
	chainID           *big.Int
}

func NewETHChainIO(endpoint string, keystorePath string, logger logger.Logger, metricsIndicators transactionprocess.Indicators, params types.TxManagerParams) (ETHChainIO, error) {
	client, err := ethclient.Dial(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum node: %w", err)
	}
	chainIO, err := NewETHChainIOWithBackend(client, keystorePath, logger, metricsIndicators, params)
	if err != nil {
		client.Close()
		return nil, err
	}
	return chainIO, nil
}

func NewETHChainIOWithBackend(client Backend, keystorePath string, logger logger.Logger, metricsIndicators transactionprocess.Indicators, params types.TxManagerParams) (ETHChainIO, error) {
	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chain ID: %w", err)
	}
	if params.MaxRetries < 1 {
		params.MaxRetries = 1
	}
	return &ethChainIO{
		client:            client,
		signer:            signer.NewETHSigner(client, chainID),
		logger:            logger,
		metricsIndicators: metricsIndicators,
		params:            params,
		ks:                keystore.NewKeyStore(keystorePath, keystore.LightScryptN, keystore.LightScryptP),
		chainID:           chainID,
	}, nil
}

func (e *ethChainIO) SendTransaction(ctx context.Context, params types.ETHExecuteOptions) (*sdktypes.Receipt, error) {
	return e.sendAndConfirm(ctx, func() (*sdktypes.Transaction, error) {
		return e.ExecuteContract(ctx, params)
	})
}

func (e *ethChainIO) DeployContract(ctx context.Context, params types.ETHDeployOptions) (common.Address, *sdktypes.Receipt, error) {
	if len(params.Bytecode) == 0 {
		return common.Address{}, nil, fmt.Errorf("contract bytecode is empty")
	}
	data := append([]byte(nil), params.Bytecode...)
	if params.ContractABI != nil {
		ctorArgs, err := params.ContractABI.Pack("", params.Args...)
		if err != nil {
			return common.Address{}, nil, fmt.Errorf("failed to pack constructor arguments: %w", err)
		}
		data = append(data, ctorArgs...)
	}

	receipt, err := e.sendAndConfirm(ctx, func() (*sdktypes.Transaction, error) {
		return e.signAndSend(ctx, params.ETHWallet, signer.TxRequest{
			From:     params.FromAddr,
			Data:     data,
			FixedGas: params.GasLimit,
		})
	})
	if err != nil {
		return common.Address{}, nil, err
	}
	return receipt.ContractAddress, receipt, nil
}

// sendAndConfirm retries send until it is accepted by the node, then waits
// for the receipt. A mined but reverted transaction is returned together
// with ErrTxReverted.
func (e *ethChainIO) sendAndConfirm(ctx context.Context, send func() (*sdktypes.Transaction, error)) (*sdktypes.Receipt, error) {
	e.metricsIndicators.IncrementProcessingTxCount()
	defer e.metricsIndicators.DecrementProcessingTxCount()

	startTime := time.Now()
	retries := 0
	var (
		txResp *sdktypes.Transaction
		err    error
	)

	for attempt := 0; attempt < e.params.MaxRetries; attempt++ {
		txResp, err = send()
		if err == nil {
			break
		}
		e.logger.Warn("Failed to send transaction", logger.WithField("attempt", attempt+1), logger.WithField("err", err))
		if errors.Is(err, ErrZeroContract) || errors.Is(err, signer.ErrNoKey) || attempt == e.params.MaxRetries-1 {
			e.metricsIndicators.IncrementProcessedTxsTotal("failure")
			return nil, fmt.Errorf("max retries exceeded: %w", err)
		}
		select {
		case <-ctx.Done():
			e.metricsIndicators.IncrementProcessedTxsTotal("failure")
			return nil, ctx.Err()
		case <-time.After(e.params.RetryInterval):
		}
		retries++
	}

	if txResp == nil {
		e.metricsIndicators.IncrementProcessedTxsTotal("failure")
		return nil, fmt.Errorf("failed to send transaction after %d attempts", e.params.MaxRetries)
	}

	e.metricsIndicators.ObserveBroadcastLatencyMs(time.Since(startTime).Milliseconds())
	e.logger.Debug("Transaction sent", logger.WithField("txHash", txResp.Hash().Hex()))

	receipt, err := e.waitForConfirmation(ctx, txResp.Hash())
	if err != nil {
		e.metricsIndicators.IncrementProcessedTxsTotal("failure")
		return nil, err
	}

	e.metricsIndicators.ObserveConfirmationLatencyMs(time.Since(startTime).Milliseconds())
	e.metricsIndicators.ObserveRetries(retries)
	e.metricsIndicators.ObserveGasUsed(receipt.GasUsed)
	if receipt.Status != sdktypes.ReceiptStatusSuccessful {
		e.metricsIndicators.IncrementProcessedTxsTotal("reverted")
		return receipt, fmt.Errorf("%w: %s", ErrTxReverted, receipt.TxHash.Hex())
	}
	e.metricsIndicators.IncrementProcessedTxsTotal("success")
	return receipt, nil
}

func (e *ethChainIO) waitForConfirmation(ctx context.Context, hash common.Hash) (*sdktypes.Receipt, error) {
	queryTicker := time.NewTicker(100 * time.Millisecond)
	defer queryTicker.Stop()

	timeout := time.After(e.params.ConfirmationTimeout)

	for {
		receipt, err := e.client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			return nil, fmt.Errorf("transaction %s confirmation timed out", hash.Hex())
		case <-queryTicker.C:
			continue
		}
	}
}

func (e *ethChainIO) ExecuteContract(ctx context.Context, params types.ETHExecuteOptions) (*sdktypes.Transaction, error) {
	if params.ContractAddr == (common.Address{}) {
		return nil, ErrZeroContract
	}
	if params.ContractABI == nil {
		return nil, fmt.Errorf("contract ABI is nil")
	}
	if _, exists := params.ContractABI.Methods[params.Method]; !exists {
		return nil, fmt.Errorf("method %s not found in ABI", params.Method)
	}

	input, err := params.ContractABI.Pack(params.Method, params.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack input: %w", err)
	}

	to := params.ContractAddr
	return e.signAndSend(ctx, params.ETHWallet, signer.TxRequest{
		From:     params.FromAddr,
		To:       &to,
		Value:    params.Value,
		Data:     input,
		FixedGas: params.GasLimit,
	})
}

func (e *ethChainIO) signAndSend(ctx context.Context, wallet types.ETHWallet, req signer.TxRequest) (*sdktypes.Transaction, error) {
	auth, err := e.getTransactor(wallet.FromAddr, wallet.PWD)
	if err != nil {
		return nil, err
	}
	signedTx, err := e.signer.BuildAndSignTx(ctx, auth.Signer, req, e.params.ETHGasFeeCapAdjustmentRate, e.params.ETHGasLimitAdjustmentRate, e.params.GasLimit)
	if err != nil {
		return nil, err
	}
	if err = e.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	return signedTx, nil
}

func (e *ethChainIO) CallContract(ctx context.Context, params types.ETHCallOptions, result interface{}) error {
	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("result must be a non-nil pointer")
	}
	if params.ContractABI == nil {
		return fmt.Errorf("contract ABI is nil")
	}

	input, err := params.ContractABI.Pack(params.Method, params.Args...)
	if err != nil {
		return fmt.Errorf("failed to pack input: %w", err)
	}
	msg := ethereum.CallMsg{
		To:   &params.ContractAddr,
		Data: input,
	}

	output, err := e.client.CallContract(ctx, msg, nil)
	if err != nil {
		return fmt.Errorf("failed to call contract: %w", err)
	}

	return params.ContractABI.UnpackIntoInterface(result, params.Method, output)
}

func (e *ethChainIO) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	return e.client.BlockNumber(ctx)
}

func (e *ethChainIO) GetChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(e.chainID), nil
}

func (e *ethChainIO) CreateAccount(pwd string) (accounts.Account, error) {
	return e.ks.NewAccount(pwd)
}

func (e *ethChainIO) ImportKey(privateKeyHex string, pwd string) (accounts.Account, error) {
	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return accounts.Account{}, err
	}

	return e.ks.ImportECDSA(key, pwd)
}

func (e *ethChainIO) ListAccounts() []accounts.Account {
	return e.ks.Accounts()
}

func (e *ethChainIO) LockAccount(address common.Address) error {
	return e.ks.Lock(address)
}

func (e *ethChainIO) getTransactor(address common.Address, pwd string) (*bind.TransactOpts, error) {
	account := accounts.Account{Address: address}

	if _, err := e.ks.Find(account); err != nil {
		return nil, fmt.Errorf("%w: account %s: %v", signer.ErrNoKey, address.Hex(), err)
	}

	if err := e.ks.Unlock(account, pwd); err != nil {
		return nil, fmt.Errorf("%w: failed to unlock account: %v", signer.ErrNoKey, err)
	}

	return bind.NewKeyStoreTransactorWithChainID(e.ks, account, e.chainID)
}

func (e *ethChainIO) SignHash(wallet types.ETHWallet, hash []byte) ([]byte, error) {
	s, err := e.HashSigner(wallet)
	if err != nil {
		return nil, err
	}
	return s.SignHash(hash)
}

// HashSigner exposes a keystore account as a claim signer.
func (e *ethChainIO) HashSigner(wallet types.ETHWallet) (signer.HashSigner, error) {
	s, err := signer.NewKeystoreSigner(e.ks, wallet.FromAddr, wallet.PWD)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (e *ethChainIO) GetBackend() Backend {
	return e.client
}

func (e *ethChainIO) Close() {
	if c, ok := e.client.(interface{ Close() }); ok {
		c.Close()
	}
	e.signer = nil
	e.ks = nil
}
