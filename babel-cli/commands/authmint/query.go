package authmint

import (
	"context"
	"errors"
	"fmt"

	"github.com/kernel-community/nfteasy/babel-api/authority"
	"github.com/kernel-community/nfteasy/babel-api/signer"
	"github.com/kernel-community/nfteasy/babel-api/utils"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

func IsMinter(account string) {
	ctx := context.Background()
	s := NewService()
	ok, err := s.AuthMint.IsMinter(ctx, chain.MustAddress("account", account))
	if err != nil {
		panic(fmt.Sprintf("%v", err))
	}
	fmt.Printf("Is minter: %t\n", ok)
}

func GetOwnerOf(tokenID string) {
	ctx := context.Background()
	id, err := utils.ParseTokenID(tokenID)
	if err != nil {
		panic(err)
	}
	s := NewService()
	owner, err := s.AuthMint.OwnerOf(ctx, id)
	if err != nil {
		panic(fmt.Sprintf("%v", err))
	}
	fmt.Printf("Owner of token %s: %s\n", id, owner.Hex())
}

// Verify runs the contract's admission check locally for a claim.
func Verify(account, tokenID, signature string) {
	ctx := context.Background()
	sig, err := signer.ParseClaimSignature(signature)
	if err != nil {
		panic(err)
	}
	req := claimRequest(account, tokenID)
	s := NewService()
	domain, err := s.AuthMint.Domain(ctx, conf.C.Signing.Name, conf.C.Signing.Version)
	if err != nil {
		panic(err)
	}

	recovered, err := authority.AdmitSignature(ctx, authority.NewRoleRegistry(s.AuthMint), domain, req, sig)
	switch {
	case err == nil:
		fmt.Printf("Valid. signed by minter %s\n", recovered.Hex())
	case errors.Is(err, authority.ErrNotAuthority):
		fmt.Printf("Invalid. signer %s is not a minter\n", recovered.Hex())
	default:
		fmt.Printf("Invalid. Error msg: %v\n", err)
	}
}
