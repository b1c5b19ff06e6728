package merkle

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/wealdtech/go-merkletree/v2"
	"github.com/wealdtech/go-merkletree/v2/keccak256"

	"github.com/kernel-community/nfteasy/babel-api/utils"
)

// Entry is one allow-list row: TokenID may be claimed by Account.
type Entry struct {
	TokenID *big.Int       `json:"tokenId"`
	Account common.Address `json:"account"`
}

// Proof lists sibling hashes from a leaf up to the root.
type Proof []common.Hash

func defaultHash() merkletree.HashType {
	return keccak256.New()
}

// HashLeaf is keccak256(abi.encodePacked(uint256 tokenId, address account)),
// the leaf BabelMerkleMint re-derives on claim.
func HashLeaf(tokenID *big.Int, account common.Address) (common.Hash, error) {
	return hashLeaf(defaultHash(), tokenID, account)
}

func hashLeaf(h merkletree.HashType, tokenID *big.Int, account common.Address) (common.Hash, error) {
	if err := utils.CheckTokenID(tokenID); err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(h.Hash(common.LeftPadBytes(tokenID.Bytes(), 32), account.Bytes())), nil
}

// hashPair hashes the two children smaller first, so a verifier needs no
// left/right flags.
func hashPair(h merkletree.HashType, a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return common.BytesToHash(h.Hash(a[:], b[:]))
}
