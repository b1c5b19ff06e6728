package deploy

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	sdktypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/kernel-community/nfteasy/babel-api/chainio/api"
	"github.com/kernel-community/nfteasy/babel-api/merkle"
	"github.com/kernel-community/nfteasy/babel-api/utils"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

// Babel deploys the owner-minted collection. An empty proxyRegistry uses
// [contract] proxyRegistry.
func Babel(userAddr, password, bytecodePath, proxyRegistry string) {
	ctx := context.Background()
	code := readBytecode(bytecodePath)
	s := chain.NewService("deploy")
	wallet := chain.Wallet(userAddr, password)
	if proxyRegistry == "" {
		proxyRegistry = conf.C.Contract.ProxyRegistry
	}
	registry := chain.MustAddress("proxy registry", proxyRegistry)

	addr, receipt, err := api.DeployBabel(ctx, s.ChainIO, wallet, code, registry)
	if err != nil {
		panic(err)
	}
	printDeployed("Babel", addr, receipt)
}

func AuthMint(userAddr, password, bytecodePath string) {
	ctx := context.Background()
	code := readBytecode(bytecodePath)
	s := chain.NewService("deploy")
	wallet := chain.Wallet(userAddr, password)

	addr, receipt, err := api.DeployBabelAuthMint(ctx, s.ChainIO, wallet, code)
	if err != nil {
		panic(err)
	}
	printDeployed("BabelAuthMint", addr, receipt)
}

// MerkleMint deploys the allow-list collection. root is either a 32 byte hex
// root or the path of a claims file written by "merkle create".
func MerkleMint(userAddr, password, bytecodePath, root string) {
	ctx := context.Background()
	code := readBytecode(bytecodePath)
	rootHash := resolveRoot(root)
	s := chain.NewService("deploy")
	wallet := chain.Wallet(userAddr, password)

	addr, receipt, err := api.DeployBabelMerkleMint(ctx, s.ChainIO, wallet, code, rootHash)
	if err != nil {
		panic(err)
	}
	printDeployed("BabelMerkleMint", addr, receipt)
	fmt.Printf("Merkle root: %s\n", rootHash.Hex())
}

func resolveRoot(root string) common.Hash {
	if h, err := utils.ParseHash(root); err == nil {
		return h
	}
	claimsFile, err := merkle.ReadClaimsFile(root)
	if err != nil {
		panic(fmt.Sprintf("root is neither a hash nor a claims file: %v", err))
	}
	return claimsFile.Root
}

func readBytecode(path string) []byte {
	code, err := api.ReadBytecode(path)
	if err != nil {
		panic(err)
	}
	return code
}

func printDeployed(name string, addr common.Address, receipt *sdktypes.Receipt) {
	fmt.Printf("Deploy %s success. address: %s txn: %s\n", name, addr.Hex(), receipt.TxHash)
}
