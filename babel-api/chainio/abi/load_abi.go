package abi

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	Babel           = "Babel"
	BabelAuthMint   = "BabelAuthMint"
	BabelMerkleMint = "BabelMerkleMint"
)

//go:embed contracts/*.json
var contracts embed.FS

var (
	mu       sync.Mutex
	abiCache = make(map[string]*abi.ABI)
)

// GetContractABI loads <abiPath>/<contractName>.json. An empty abiPath falls
// back to the ABI compiled into the binary.
func GetContractABI(abiPath string, contractName string) (*abi.ABI, error) {
	key := abiPath + "|" + contractName
	mu.Lock()
	defer mu.Unlock()
	if cachedABI, ok := abiCache[key]; ok {
		return cachedABI, nil
	}

	var (
		parsedABI *abi.ABI
		err       error
	)
	if abiPath == "" {
		parsedABI, err = loadEmbeddedABI(contractName)
	} else {
		filePath, _ := filepath.Abs(filepath.Join(abiPath, contractName+".json"))
		parsedABI, err = loadABI(filePath)
	}
	if err != nil {
		return nil, err
	}
	abiCache[key] = parsedABI
	return parsedABI, nil
}

func loadEmbeddedABI(contractName string) (*abi.ABI, error) {
	data, err := contracts.ReadFile("contracts/" + contractName + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown contract %q: %w", contractName, err)
	}
	parsedABI, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &parsedABI, nil
}

func loadABI(filePath string) (*abi.ABI, error) {
	abiFile, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer abiFile.Close()

	parsedABI, err := abi.JSON(abiFile)
	if err != nil {
		return nil, err
	}

	return &parsedABI, nil
}
