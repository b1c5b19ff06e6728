package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ETHWallet names a keystore account and the passphrase that unlocks it.
type ETHWallet struct {
	FromAddr common.Address
	PWD      string
}

type ETHCallOptions struct {
	ContractAddr common.Address
	ContractABI  *abi.ABI
	Method       string
	Args         []interface{}
}

type ETHExecuteOptions struct {
	ETHWallet
	ETHCallOptions
	GasLimit uint64   // GasLimit: fixed gas for the transaction, 0 estimates
	Value    *big.Int // Value: wei sent with the call
}

type ETHDeployOptions struct {
	ETHWallet
	ContractABI *abi.ABI
	Bytecode    []byte
	Args        []interface{} // Args: constructor arguments
	GasLimit    uint64
}

type TxManagerParams struct {
	MaxRetries                 int
	RetryInterval              time.Duration
	ConfirmationTimeout        time.Duration
	ETHGasFeeCapAdjustmentRate int64
	ETHGasLimitAdjustmentRate  float64
	GasLimit                   uint64
}

func DefaultTxManagerParams() TxManagerParams {
	return TxManagerParams{
		MaxRetries:                 3,
		RetryInterval:              2 * time.Second,
		ConfirmationTimeout:        60 * time.Second,
		ETHGasFeeCapAdjustmentRate: 2,
		ETHGasLimitAdjustmentRate:  1.2,
		GasLimit:                   10_000_000,
	}
}
