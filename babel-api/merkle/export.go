package merkle

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/kernel-community/nfteasy/babel-api/utils"
)

// Claim is everything a claimant submits to BabelMerkleMint.claim.
type Claim struct {
	TokenID *big.Int       `json:"tokenId"`
	Account common.Address `json:"account"`
	Leaf    common.Hash    `json:"leaf"`
	Proof   Proof          `json:"proof"`
}

// ClaimsFile is the published form of a built tree.
type ClaimsFile struct {
	HashType string      `json:"hash_type"`
	Root     common.Hash `json:"root"`
	Claims   []Claim     `json:"claims"`
}

func (t *Tree) Export() (*ClaimsFile, error) {
	out := &ClaimsFile{
		HashType: t.HashName(),
		Root:     t.Root(),
		Claims:   make([]Claim, 0, len(t.entries)),
	}
	for i, e := range t.entries {
		leaf := t.levels[0][i]
		proof, err := t.ProofForLeaf(leaf)
		if err != nil {
			return nil, err
		}
		out.Claims = append(out.Claims, Claim{
			TokenID: e.TokenID,
			Account: e.Account,
			Leaf:    leaf,
			Proof:   proof,
		})
	}
	return out, nil
}

// Find returns the published claim for tokenID and account.
func (c *ClaimsFile) Find(e Entry) (Claim, error) {
	for _, claim := range c.Claims {
		if claim.Account == e.Account && claim.TokenID != nil && e.TokenID != nil && claim.TokenID.Cmp(e.TokenID) == 0 {
			return claim, nil
		}
	}
	return Claim{}, fmt.Errorf("%w: token %v account %s", ErrLeafNotFound, e.TokenID, e.Account.Hex())
}

// ReadAllowList loads a JSON array of {"tokenId": .., "account": "0x.."}, or
// the same list as YAML when the file ends in .yaml or .yml. Token ids may be
// numbers or decimal / 0x strings.
func ReadAllowList(path string) ([]Entry, error) {
	data, err := readRegularFile(path)
	if err != nil {
		return nil, err
	}
	var rows []allowListRow
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rows)
	default:
		err = json.Unmarshal(data, &rows)
	}
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling allow list: %w", err)
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		tokenID, err := utils.ParseTokenID(string(row.TokenID))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		account, err := utils.ParseAddress(row.Account)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries[i] = Entry{TokenID: tokenID, Account: account}
	}
	return entries, nil
}

type allowListRow struct {
	TokenID tokenIDText `json:"tokenId" yaml:"tokenId"`
	Account string      `json:"account" yaml:"account"`
}

// tokenIDText keeps a JSON token id as written, quoted or not.
type tokenIDText string

func (t *tokenIDText) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = tokenIDText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = tokenIDText(n)
	return nil
}

func ReadClaimsFile(path string) (*ClaimsFile, error) {
	data, err := readRegularFile(path)
	if err != nil {
		return nil, err
	}
	var claims ClaimsFile
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, fmt.Errorf("error unmarshaling claims file: %w", err)
	}
	return &claims, nil
}

func WriteClaimsFile(path string, claims *ClaimsFile) error {
	data, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling claims file: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func readRegularFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}
		return nil, fmt.Errorf("error accessing file: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}
