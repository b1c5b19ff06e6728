package babel

import (
	"context"
	"fmt"

	"github.com/kernel-community/nfteasy/babel-api/utils"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
)

func Mint(userAddr, password, to, metadataURI string) {
	ctx := context.Background()
	s := NewService()
	wallet := chain.Wallet(userAddr, password)
	toAddr := chain.MustAddress("recipient", recipient(to))

	txResp, err := s.Babel.SafeMint(ctx, wallet, toAddr, metadataURI)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Mint success. txn: %s\n", txResp.TxHash)
}

// BatchMint mints one token per comma separated URI.
func BatchMint(userAddr, password, to, metadataURIs string) {
	ctx := context.Background()
	uris, err := utils.SplitURIs(metadataURIs)
	if err != nil {
		panic(err)
	}
	s := NewService()
	wallet := chain.Wallet(userAddr, password)
	toAddr := chain.MustAddress("recipient", recipient(to))

	txResp, err := s.Babel.SafeBatchMint(ctx, wallet, toAddr, uris)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Batch mint of %d tokens success. txn: %s\n", len(uris), txResp.TxHash)
}

func Burn(userAddr, password, tokenID string) {
	ctx := context.Background()
	id, err := utils.ParseTokenID(tokenID)
	if err != nil {
		panic(err)
	}
	s := NewService()
	wallet := chain.Wallet(userAddr, password)

	txResp, err := s.Babel.Burn(ctx, wallet, id)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Burn token %s success. txn: %s\n", id, txResp.TxHash)
}

func SetTokenURI(userAddr, password, tokenID, metadataURI string) {
	ctx := context.Background()
	id, err := utils.ParseTokenID(tokenID)
	if err != nil {
		panic(err)
	}
	s := NewService()
	wallet := chain.Wallet(userAddr, password)

	txResp, err := s.Babel.SetTokenURI(ctx, wallet, id, metadataURI)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Set token URI success. txn: %s\n", txResp.TxHash)
}

func UpdateTokenURI(userAddr, password, tokenID, metadataURI string) {
	ctx := context.Background()
	id, err := utils.ParseTokenID(tokenID)
	if err != nil {
		panic(err)
	}
	s := NewService()
	wallet := chain.Wallet(userAddr, password)

	txResp, err := s.Babel.UpdateTokenURI(ctx, wallet, id, metadataURI)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Update token URI success. txn: %s\n", txResp.TxHash)
}

func TransferOwnership(userAddr, password, newOwner string) {
	ctx := context.Background()
	s := NewService()
	wallet := chain.Wallet(userAddr, password)
	ownerAddr := chain.MustAddress("new owner", newOwner)

	txResp, err := s.Babel.TransferOwnership(ctx, wallet, ownerAddr)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Transfer ownership success. txn: %s\n", txResp.TxHash)
}
