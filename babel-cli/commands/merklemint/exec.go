package merklemint

import (
	"context"
	"fmt"

	"github.com/kernel-community/nfteasy/babel-api/authority"
	"github.com/kernel-community/nfteasy/babel-api/merkle"
	"github.com/kernel-community/nfteasy/babel-api/utils"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
)

// Claim looks up the claimant's proof in a claims file and submits it.
func Claim(userAddr, password, claimsPath, account, tokenID string) {
	ctx := context.Background()
	claimsFile, err := merkle.ReadClaimsFile(claimsPath)
	if err != nil {
		panic(err)
	}
	e := entry(account, tokenID)
	claim, err := claimsFile.Find(e)
	if err != nil {
		panic(err)
	}
	if err := authority.AdmitProof(claimsFile.Root, e, claim.Proof); err != nil {
		panic(err)
	}

	s := NewService()
	wallet := chain.Wallet(userAddr, password)
	txResp, err := s.MerkleMint.Claim(ctx, wallet, e, claim.Proof)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Claim token %s for %s success. txn: %s\n", e.TokenID, e.Account.Hex(), txResp.TxHash)
}

func GetOwnerOf(tokenID string) {
	ctx := context.Background()
	id, err := utils.ParseTokenID(tokenID)
	if err != nil {
		panic(err)
	}
	s := NewService()
	owner, err := s.MerkleMint.OwnerOf(ctx, id)
	if err != nil {
		panic(fmt.Sprintf("%v", err))
	}
	fmt.Printf("Owner of token %s: %s\n", id, owner.Hex())
}
