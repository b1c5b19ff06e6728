package utils

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// CheckTokenID reports whether id fits the uint256 the contracts use.
func CheckTokenID(id *big.Int) error {
	if id == nil || id.Sign() < 0 || id.Cmp(maxUint256) > 0 {
		return ErrInvalidTokenID
	}
	return nil
}

// ParseTokenID accepts decimal or 0x-prefixed hex. Other base prefixes and
// digit separators are rejected.
func ParseTokenID(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	digits, base := s, 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		digits, base = s[2:], 16
	}
	id, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, WrapError(ErrInvalidTokenID, s)
	}
	if err := CheckTokenID(id); err != nil {
		return nil, WrapError(err, s)
	}
	return id, nil
}

func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return common.Address{}, ErrEmptyAddress
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, WrapError(ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

func ParseHash(s string) (common.Hash, error) {
	b, err := hexutil.Decode(strings.TrimSpace(s))
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, WrapError(ErrInvalidHash, s)
	}
	return common.BytesToHash(b), nil
}

// SplitURIs splits a comma separated list of metadata uris, dropping blanks.
func SplitURIs(s string) ([]string, error) {
	var uris []string
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			uris = append(uris, u)
		}
	}
	if len(uris) == 0 {
		return nil, ErrEmptyURIList
	}
	return uris, nil
}
