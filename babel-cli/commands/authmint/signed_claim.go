package authmint

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kernel-community/nfteasy/babel-api/signer"
)

func WriteSignedClaim(path string, claim *signer.SignedClaim) error {
	data, err := json.MarshalIndent(claim, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling signed claim: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func ReadSignedClaim(path string) (*signer.SignedClaim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading signed claim: %w", err)
	}
	var claim signer.SignedClaim
	if err := json.Unmarshal(data, &claim); err != nil {
		return nil, fmt.Errorf("error unmarshaling signed claim: %w", err)
	}
	if claim.Request.TokenID == nil {
		return nil, fmt.Errorf("signed claim %s has no token id", path)
	}
	return &claim, nil
}
