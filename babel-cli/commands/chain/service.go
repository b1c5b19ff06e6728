package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	babelabi "github.com/kernel-community/nfteasy/babel-api/chainio/abi"
	"github.com/kernel-community/nfteasy/babel-api/chainio/io"
	"github.com/kernel-community/nfteasy/babel-api/chainio/types"
	logger2 "github.com/kernel-community/nfteasy/babel-api/logger"
	transactionprocess "github.com/kernel-community/nfteasy/babel-api/metrics/indicators/transaction_process"
	"github.com/kernel-community/nfteasy/babel-api/utils"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

type Service struct {
	ChainIO  io.ETHChainIO
	Logger   logger2.Logger
	Registry *prometheus.Registry
}

// NewService loads the config and dials the configured EVM endpoint.
// subsystem labels the transaction metrics of the calling command group.
func NewService(subsystem string) *Service {
	conf.InitConfig()
	logger, err := logger2.NewELKLogger("babel-cli", conf.C.Logstash)
	if err != nil {
		panic(err)
	}
	logger.SetLogLevel(conf.C.LogLevel)

	reg := prometheus.NewRegistry()
	metricsIndicators := transactionprocess.NewPromIndicators(reg, subsystem)
	ethChainIO, err := io.NewETHChainIO(conf.C.Chain.EVMRPC, conf.C.Account.EVMKeyDir, logger, metricsIndicators, conf.C.TxManagerParams())
	if err != nil {
		panic(err)
	}
	return &Service{ChainIO: ethChainIO, Logger: logger, Registry: reg}
}

func Wallet(userAddr, password string) types.ETHWallet {
	return types.ETHWallet{
		FromAddr: MustAddress("user", userAddr),
		PWD:      password,
	}
}

// MustAddress parses a hex address and panics naming what it was for.
func MustAddress(name, addr string) common.Address {
	if addr == "" {
		panic(fmt.Sprintf("%s address is empty!", name))
	}
	parsed, err := utils.ParseAddress(addr)
	if err != nil {
		panic(fmt.Sprintf("%s address: %v", name, err))
	}
	return parsed
}

// ContractABI loads a contract ABI from the configured abiDir, falling back
// to the built-in copy.
func ContractABI(name string) *abi.ABI {
	contractABI, err := babelabi.GetContractABI(conf.C.Contract.ABIDir, name)
	if err != nil {
		panic(err)
	}
	return contractABI
}
