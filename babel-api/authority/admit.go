package authority

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/kernel-community/nfteasy/babel-api/merkle"
	"github.com/kernel-community/nfteasy/babel-api/signer"
)

var (
	ErrNotAuthority = errors.New("signer does not hold minting authority")
	ErrBadProof     = errors.New("proof does not fold to the committed root")
)

// AdmitSignature mirrors the on-chain check for the signature path: the
// signature must recover for this exact domain and request, and the
// recovered address must be an authority. It returns the recovered signer
// whenever recovery succeeds, so callers can report who signed a rejected
// claim. Replay protection stays with the contract.
func AdmitSignature(ctx context.Context, registry Registry, domain signer.SigningDomain, req signer.ClaimRequest, sig signer.ClaimSignature) (common.Address, error) {
	recovered, err := signer.RecoverSigner(domain, req, sig)
	if err != nil {
		return common.Address{}, err
	}
	ok, err := registry.IsAuthority(ctx, recovered)
	if err != nil {
		return recovered, fmt.Errorf("failed to query authority registry: %w", err)
	}
	if !ok {
		return recovered, fmt.Errorf("%w: %s", ErrNotAuthority, recovered.Hex())
	}
	return recovered, nil
}

// AdmitProof mirrors the on-chain check for the allow-list path.
func AdmitProof(root common.Hash, entry merkle.Entry, proof merkle.Proof) error {
	if !merkle.Verify(root, entry, proof) {
		return fmt.Errorf("%w: token %v account %s", ErrBadProof, entry.TokenID, entry.Account.Hex())
	}
	return nil
}
