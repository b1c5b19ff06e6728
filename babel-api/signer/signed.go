package signer

import (
	"github.com/ethereum/go-ethereum/common"
)

// SignedClaim is what an authority hands to a claimant.
type SignedClaim struct {
	Domain    SigningDomain  `json:"domain"`
	Request   ClaimRequest   `json:"request"`
	Signature ClaimSignature `json:"signature"`
	Signer    common.Address `json:"signer"`
}

func SignClaim(domain SigningDomain, request ClaimRequest, hs HashSigner) (*SignedClaim, error) {
	sig, err := BuildSignature(domain, request, hs)
	if err != nil {
		return nil, err
	}
	return &SignedClaim{Domain: domain, Request: request, Signature: sig, Signer: hs.Address()}, nil
}

// Verify reports whether the signature recovers to the recorded signer.
func (c *SignedClaim) Verify() (bool, error) {
	recovered, err := RecoverSigner(c.Domain, c.Request, c.Signature)
	if err != nil {
		return false, err
	}
	return recovered == c.Signer, nil
}
