package authmint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kernel-community/nfteasy/babel-api/authority"
	"github.com/kernel-community/nfteasy/babel-api/logger"
	"github.com/kernel-community/nfteasy/babel-api/signer"
	"github.com/kernel-community/nfteasy/babel-api/utils"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

// Sign builds a claim signature with a keystore account.
func Sign(signerAddr, password, account, tokenID, out string) {
	s := NewService()
	hs, err := s.ChainIO.HashSigner(chain.Wallet(signerAddr, password))
	if err != nil {
		panic(err)
	}
	sign(s, hs, account, tokenID, out)
}

// SignWithKey builds a claim signature with a raw hex private key.
func SignWithKey(privateKey, account, tokenID, out string) {
	s := NewService()
	hs, err := signer.NewPrivateKeySignerFromHex(privateKey)
	if err != nil {
		panic(err)
	}
	sign(s, hs, account, tokenID, out)
}

func sign(s *Service, hs signer.HashSigner, account, tokenID, out string) {
	ctx := context.Background()
	req := claimRequest(account, tokenID)

	domain, err := s.AuthMint.Domain(ctx, conf.C.Signing.Name, conf.C.Signing.Version)
	if err != nil {
		panic(err)
	}
	claim, err := signer.SignClaim(domain, req, hs)
	if err != nil {
		s.Claims.IncrementSignaturesTotal("failure")
		panic(err)
	}
	s.Claims.IncrementSignaturesTotal("success")

	// a signature from a non-minter is well formed but the contract rejects it
	_, err = authority.AdmitSignature(ctx, authority.NewRoleRegistry(s.AuthMint), domain, req, claim.Signature)
	if errors.Is(err, authority.ErrNotAuthority) {
		s.Logger.Warn("signer is not a minter, claim will be rejected", logger.WithField("signer", hs.Address().Hex()))
	} else if err != nil {
		s.Logger.Warn("could not check minter role", logger.WithField("err", err))
	}

	if out != "" {
		if err := WriteSignedClaim(out, claim); err != nil {
			panic(err)
		}
		fmt.Printf("Signed claim written to %s\n", out)
		return
	}
	data, err := json.MarshalIndent(claim, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(data))
}

func claimRequest(account, tokenID string) signer.ClaimRequest {
	id, err := utils.ParseTokenID(tokenID)
	if err != nil {
		panic(err)
	}
	return signer.ClaimRequest{TokenID: id, Account: chain.MustAddress("claimant", account)}
}
