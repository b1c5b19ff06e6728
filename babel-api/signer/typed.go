package signer

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/kernel-community/nfteasy/babel-api/utils"
)

const (
	// ClaimPrimaryType is the struct name BabelAuthMint hashes claims under.
	ClaimPrimaryType = "NFT"
	SignatureLength  = crypto.SignatureLength

	DefaultDomainName    = "Babel"
	DefaultDomainVersion = "1.0.0"
)

var (
	// DomainTypeHash = keccak256("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)")
	DomainTypeHash = crypto.Keccak256Hash([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	// ClaimTypeHash = keccak256("NFT(uint256 tokenId,address account)")
	ClaimTypeHash = crypto.Keccak256Hash([]byte("NFT(uint256 tokenId,address account)"))

	ErrNilChainID         = errors.New("signing domain chain id is nil")
	ErrSignatureLength    = fmt.Errorf("signature must be %d bytes", SignatureLength)
	ErrSignatureRecoveryV = errors.New("signature recovery id must be 0, 1, 27 or 28")
	ErrSignatureValues    = errors.New("signature r/s values out of range")
)

var claimTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	ClaimPrimaryType: {
		{Name: "tokenId", Type: "uint256"},
		{Name: "account", Type: "address"},
	},
}

// SigningDomain binds a claim signature to one contract on one chain.
type SigningDomain struct {
	Name              string         `json:"name"`
	Version           string         `json:"version"`
	ChainID           *big.Int       `json:"chainId"`
	VerifyingContract common.Address `json:"verifyingContract"`
}

// ClaimRequest asks for TokenID to be minted to Account.
type ClaimRequest struct {
	TokenID *big.Int       `json:"tokenId"`
	Account common.Address `json:"account"`
}

// ClaimSignature is the 65 byte r || s || v blob, v in {27, 28}.
type ClaimSignature [SignatureLength]byte

func (s ClaimSignature) Bytes() []byte { return s[:] }

func (s ClaimSignature) Hex() string { return hexutil.Encode(s[:]) }

func (s ClaimSignature) String() string { return s.Hex() }

func (s ClaimSignature) MarshalText() ([]byte, error) {
	return hexutil.Bytes(s[:]).MarshalText()
}

func (s *ClaimSignature) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("ClaimSignature", input, s[:])
}

// ParseClaimSignature decodes a 0x-prefixed 65 byte signature.
func ParseClaimSignature(s string) (ClaimSignature, error) {
	var sig ClaimSignature
	b, err := hexutil.Decode(s)
	if err != nil {
		return sig, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(b) != SignatureLength {
		return sig, ErrSignatureLength
	}
	copy(sig[:], b)
	return sig, nil
}

func (d SigningDomain) validate() error {
	if d.ChainID == nil {
		return ErrNilChainID
	}
	return nil
}

// TypedData returns the EIP-712 document a wallet would be asked to sign.
func TypedData(domain SigningDomain, request ClaimRequest) (apitypes.TypedData, error) {
	if err := domain.validate(); err != nil {
		return apitypes.TypedData{}, err
	}
	if err := utils.CheckTokenID(request.TokenID); err != nil {
		return apitypes.TypedData{}, err
	}
	return apitypes.TypedData{
		Types:       claimTypes,
		PrimaryType: ClaimPrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              domain.Name,
			Version:           domain.Version,
			ChainId:           (*math.HexOrDecimal256)(new(big.Int).Set(domain.ChainID)),
			VerifyingContract: domain.VerifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"tokenId": request.TokenID.String(),
			"account": request.Account.Hex(),
		},
	}, nil
}

// ClaimDigest is keccak256("\x19\x01" || domainSeparator || hashStruct(claim)).
func ClaimDigest(domain SigningDomain, request ClaimRequest) (common.Hash, error) {
	typedData, err := TypedData(domain, request)
	if err != nil {
		return common.Hash{}, err
	}
	digest, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return common.BytesToHash(digest), nil
}

// BuildSignature has hs sign the claim digest. It does not check whether the
// signer is allowed to authorize mints; that is the verifier's decision.
func BuildSignature(domain SigningDomain, request ClaimRequest, hs HashSigner) (ClaimSignature, error) {
	var sig ClaimSignature
	digest, err := ClaimDigest(domain, request)
	if err != nil {
		return sig, err
	}
	raw, err := hs.SignHash(digest.Bytes())
	if err != nil {
		return sig, fmt.Errorf("failed to sign claim digest: %w", err)
	}
	if len(raw) != SignatureLength {
		return sig, ErrSignatureLength
	}
	copy(sig[:], raw)
	if sig[crypto.RecoveryIDOffset] < 27 {
		sig[crypto.RecoveryIDOffset] += 27
	}
	return sig, nil
}

// RecoverSigner returns the address whose key produced sig over the claim.
func RecoverSigner(domain SigningDomain, request ClaimRequest, sig ClaimSignature) (common.Address, error) {
	digest, err := ClaimDigest(domain, request)
	if err != nil {
		return common.Address{}, err
	}
	return RecoverHashSigner(digest, sig)
}

// RecoverHashSigner applies the same checks as OpenZeppelin's ECDSA.recover:
// v in {27, 28} (0 and 1 tolerated) and s in the lower half order.
func RecoverHashSigner(digest common.Hash, sig ClaimSignature) (common.Address, error) {
	raw := make([]byte, SignatureLength)
	copy(raw, sig[:])
	v := raw[crypto.RecoveryIDOffset]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return common.Address{}, ErrSignatureRecoveryV
	}
	raw[crypto.RecoveryIDOffset] = v

	r := new(big.Int).SetBytes(raw[:32])
	s := new(big.Int).SetBytes(raw[32:64])
	if !crypto.ValidateSignatureValues(v, r, s, true) {
		return common.Address{}, ErrSignatureValues
	}

	pub, err := crypto.SigToPub(digest.Bytes(), raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
