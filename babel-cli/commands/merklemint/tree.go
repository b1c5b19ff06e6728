package merklemint

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kernel-community/nfteasy/babel-api/authority"
	"github.com/kernel-community/nfteasy/babel-api/merkle"
	"github.com/kernel-community/nfteasy/babel-api/utils"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
)

// Create builds the allow-list tree and writes every claim with its proof
// to out. The printed root is the constructor argument for deployment.
func Create(allowListPath, out string) {
	entries, err := merkle.ReadAllowList(allowListPath)
	if err != nil {
		panic(err)
	}
	tree, err := merkle.BuildTree(entries)
	if err != nil {
		panic(err)
	}
	exported, err := tree.Export()
	if err != nil {
		panic(err)
	}
	if err := merkle.WriteClaimsFile(out, exported); err != nil {
		panic(err)
	}

	fmt.Printf("Merkle root: %s\nLeaves: %d\nDepth: %d\nClaims written to %s\n", tree.Root().Hex(), tree.Len(), tree.Depth(), out)
}

// Proof prints the published claim for account and tokenID.
func Proof(claimsPath, account, tokenID string) {
	claimsFile, err := merkle.ReadClaimsFile(claimsPath)
	if err != nil {
		panic(err)
	}
	claim, err := claimsFile.Find(entry(account, tokenID))
	if err != nil {
		panic(err)
	}
	data, err := json.MarshalIndent(claim, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(data))
}

// Verify folds a comma separated proof against root.
func Verify(root, account, tokenID, proof string) {
	rootHash, err := utils.ParseHash(root)
	if err != nil {
		panic(err)
	}
	siblings, err := ParseProof(proof)
	if err != nil {
		panic(err)
	}
	err = authority.AdmitProof(rootHash, entry(account, tokenID), siblings)
	switch {
	case err == nil:
		fmt.Printf("Valid. proof folds to %s\n", rootHash.Hex())
	case errors.Is(err, authority.ErrBadProof):
		fmt.Printf("Invalid. %v\n", err)
	default:
		panic(err)
	}
}

// ParseProof splits a comma separated list of 32 byte hex hashes. An empty
// string is the empty proof of a single-leaf tree.
func ParseProof(s string) (merkle.Proof, error) {
	proof := merkle.Proof{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h, err := utils.ParseHash(part)
		if err != nil {
			return nil, err
		}
		proof = append(proof, h)
	}
	return proof, nil
}

func entry(account, tokenID string) merkle.Entry {
	id, err := utils.ParseTokenID(tokenID)
	if err != nil {
		panic(err)
	}
	return merkle.Entry{TokenID: id, Account: chain.MustAddress("claimant", account)}
}
