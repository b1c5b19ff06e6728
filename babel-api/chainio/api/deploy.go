package api

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	sdktypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	babelabi "github.com/kernel-community/nfteasy/babel-api/chainio/abi"
	"github.com/kernel-community/nfteasy/babel-api/chainio/io"
	"github.com/kernel-community/nfteasy/babel-api/chainio/types"
)

// bytecodePaths locate creation code in foundry and hardhat artifacts.
var bytecodePaths = []jp.Expr{
	jp.MustParseString("$.bytecode.object"),
	jp.MustParseString("$.bytecode"),
}

// ReadBytecode loads creation code from a compiler artifact (foundry or
// hardhat JSON) or a file holding the hex string.
func ReadBytecode(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading bytecode file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, "{") {
		artifact, err := oj.ParseString(text)
		if err != nil {
			return nil, fmt.Errorf("error parsing artifact: %w", err)
		}
		text = ""
		for _, x := range bytecodePaths {
			if code, ok := x.First(artifact).(string); ok {
				text = code
				break
			}
		}
		if text == "" {
			return nil, fmt.Errorf("artifact %s has no bytecode", path)
		}
	}
	if !strings.HasPrefix(text, "0x") {
		text = "0x" + text
	}
	code, err := hexutil.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("bytecode is empty")
	}
	return code, nil
}

func deploy(ctx context.Context, chainIO io.ETHChainIO, wallet types.ETHWallet, contractName string, bytecode []byte, args ...interface{}) (common.Address, *sdktypes.Receipt, error) {
	contractABI, err := babelabi.GetContractABI("", contractName)
	if err != nil {
		return common.Address{}, nil, err
	}
	if args == nil {
		args = []interface{}{}
	}
	return chainIO.DeployContract(ctx, types.ETHDeployOptions{
		ETHWallet:   wallet,
		ContractABI: contractABI,
		Bytecode:    bytecode,
		Args:        args,
	})
}

// DeployBabel deploys the owner-minted collection. proxyRegistry is the
// marketplace proxy registration address whitelisted for approvals.
func DeployBabel(ctx context.Context, chainIO io.ETHChainIO, wallet types.ETHWallet, bytecode []byte, proxyRegistry common.Address) (common.Address, *sdktypes.Receipt, error) {
	return deploy(ctx, chainIO, wallet, babelabi.Babel, bytecode, proxyRegistry)
}

func DeployBabelAuthMint(ctx context.Context, chainIO io.ETHChainIO, wallet types.ETHWallet, bytecode []byte) (common.Address, *sdktypes.Receipt, error) {
	return deploy(ctx, chainIO, wallet, babelabi.BabelAuthMint, bytecode)
}

func DeployBabelMerkleMint(ctx context.Context, chainIO io.ETHChainIO, wallet types.ETHWallet, bytecode []byte, root common.Hash) (common.Address, *sdktypes.Receipt, error) {
	return deploy(ctx, chainIO, wallet, babelabi.BabelMerkleMint, bytecode, [32]byte(root))
}
