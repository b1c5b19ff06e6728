package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/kernel-community/nfteasy/babel-api/utils"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

func QueryNode() {
	ctx := context.Background()
	s := NewService("chain")
	defer s.ChainIO.Close()

	chainID, err := s.ChainIO.GetChainID(ctx)
	if err != nil {
		fmt.Printf("Failed. Error msg: %+v\n", err)
		return
	}
	height, err := s.ChainIO.GetLatestBlockNumber(ctx)
	if err != nil {
		fmt.Printf("Failed. Error msg: %+v\n", err)
		return
	}
	fmt.Printf("===NodeInfo===\n1. Network: %s\n2. Endpoint: %s\n3. ChainID: %s\n4. LatestBlockHeight: %d\n",
		conf.C.Chain.Name, conf.C.Chain.EVMRPC, chainID, height)
}

func QueryTxn(txnHash string) {
	ctx := context.Background()
	s := NewService("chain")
	defer s.ChainIO.Close()

	hash, err := utils.ParseHash(txnHash)
	if err != nil {
		fmt.Printf("Query Txn Failed. Error msg: %s\n", err)
		return
	}
	receipt, err := s.ChainIO.GetBackend().TransactionReceipt(ctx, hash)
	if err != nil {
		fmt.Printf("Query Txn Failed. Error msg: %s\n", err)
		return
	}
	fmt.Printf("===TxnInfo===\n1. TxHash: %s\n2. Height: %d\n3. Status: %d\n4. GasUsed: %d\n5. Logs: %d\n",
		receipt.TxHash.Hex(), receipt.BlockNumber.Uint64(), receipt.Status, receipt.GasUsed, len(receipt.Logs))
	if receipt.ContractAddress != (common.Address{}) {
		fmt.Printf("6. ContractAddress: %s\n", receipt.ContractAddress.Hex())
	}
}
