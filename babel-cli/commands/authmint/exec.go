package authmint

import (
	"context"
	"fmt"

	"github.com/kernel-community/nfteasy/babel-api/signer"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
)

func Claim(userAddr, password, account, tokenID, signature string) {
	sig, err := signer.ParseClaimSignature(signature)
	if err != nil {
		panic(err)
	}
	claim(userAddr, password, claimRequest(account, tokenID), sig)
}

// ClaimFile submits a claim written by "auth-mint sign --out".
func ClaimFile(userAddr, password, path string) {
	signed, err := ReadSignedClaim(path)
	if err != nil {
		panic(err)
	}
	claim(userAddr, password, signed.Request, signed.Signature)
}

func claim(userAddr, password string, req signer.ClaimRequest, sig signer.ClaimSignature) {
	ctx := context.Background()
	s := NewService()
	wallet := chain.Wallet(userAddr, password)

	txResp, err := s.AuthMint.Claim(ctx, wallet, req, sig)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Claim token %s for %s success. txn: %s\n", req.TokenID, req.Account.Hex(), txResp.TxHash)
}

func GrantMinter(userAddr, password, minter string) {
	ctx := context.Background()
	s := NewService()
	wallet := chain.Wallet(userAddr, password)
	minterAddr := chain.MustAddress("minter", minter)

	txResp, err := s.AuthMint.GrantMinter(ctx, wallet, minterAddr)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Grant minter role success. txn: %s\n", txResp.TxHash)
}

func RevokeMinter(userAddr, password, minter string) {
	ctx := context.Background()
	s := NewService()
	wallet := chain.Wallet(userAddr, password)
	minterAddr := chain.MustAddress("minter", minter)

	role, err := s.AuthMint.MinterRole(ctx)
	if err != nil {
		panic(err)
	}
	txResp, err := s.AuthMint.RevokeRole(ctx, wallet, role, minterAddr)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Revoke minter role success. txn: %s\n", txResp.TxHash)
}
