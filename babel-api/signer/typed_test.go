package signer

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernel-community/nfteasy/babel-api/utils"
)

var verifyingContract = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

func newSigner(t *testing.T) *PrivateKeySigner {
	t.Helper()
	s, err := NewPrivateKeySigner(newKey(t))
	require.NoError(t, err)
	return s
}

func babelDomain() SigningDomain {
	return SigningDomain{
		Name:              DefaultDomainName,
		Version:           DefaultDomainVersion,
		ChainID:           big.NewInt(31337),
		VerifyingContract: verifyingContract,
	}
}

// manualDigest re-derives the EIP-712 digest field by field.
func manualDigest(d SigningDomain, r ClaimRequest) common.Hash {
	domainSeparator := crypto.Keccak256(
		DomainTypeHash.Bytes(),
		crypto.Keccak256([]byte(d.Name)),
		crypto.Keccak256([]byte(d.Version)),
		common.LeftPadBytes(d.ChainID.Bytes(), 32),
		common.LeftPadBytes(d.VerifyingContract.Bytes(), 32),
	)
	structHash := crypto.Keccak256(
		ClaimTypeHash.Bytes(),
		common.LeftPadBytes(r.TokenID.Bytes(), 32),
		common.LeftPadBytes(r.Account.Bytes(), 32),
	)
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, domainSeparator, structHash)
}

func TestClaimDigestMatchesManualEncoding(t *testing.T) {
	account := crypto.PubkeyToAddress(newKey(t).PublicKey)
	var tests = map[string]ClaimRequest{
		"zero token":   {TokenID: big.NewInt(0), Account: account},
		"small token":  {TokenID: big.NewInt(1234), Account: account},
		"max uint256":  {TokenID: new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)), Account: account},
		"zero account": {TokenID: big.NewInt(7), Account: common.Address{}},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			digest, err := ClaimDigest(babelDomain(), req)
			require.NoError(t, err)
			assert.Equal(t, manualDigest(babelDomain(), req), digest)
		})
	}
}

func TestTypeHashes(t *testing.T) {
	assert.Equal(t, crypto.Keccak256Hash([]byte("NFT(uint256 tokenId,address account)")), ClaimTypeHash)
	assert.Equal(t, crypto.Keccak256Hash([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)")), DomainTypeHash)
}

func TestBuildSignatureRecoversSigner(t *testing.T) {
	alice := newSigner(t)
	for _, tokenID := range []int64{0, 1, 12, 13, 1234, 1 << 40} {
		req := ClaimRequest{TokenID: big.NewInt(tokenID), Account: crypto.PubkeyToAddress(newKey(t).PublicKey)}
		sig, err := BuildSignature(babelDomain(), req, alice)
		require.NoError(t, err)

		v := sig[crypto.RecoveryIDOffset]
		assert.True(t, v == 27 || v == 28, "v = %d", v)

		recovered, err := RecoverSigner(babelDomain(), req, sig)
		require.NoError(t, err)
		assert.Equal(t, alice.Address(), recovered)
	}
}

func TestChangedFieldRecoversOtherAddress(t *testing.T) {
	alice := newSigner(t)
	bob := crypto.PubkeyToAddress(newKey(t).PublicKey)
	req := ClaimRequest{TokenID: big.NewInt(1234), Account: bob}
	sig, err := BuildSignature(babelDomain(), req, alice)
	require.NoError(t, err)

	var tests = map[string]struct {
		domain  func(d SigningDomain) SigningDomain
		request func(r ClaimRequest) ClaimRequest
	}{
		"chain id": {
			domain: func(d SigningDomain) SigningDomain { d.ChainID = big.NewInt(1); return d },
		},
		"verifying contract": {
			domain: func(d SigningDomain) SigningDomain {
				d.VerifyingContract = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
				return d
			},
		},
		"domain name": {
			domain: func(d SigningDomain) SigningDomain { d.Name = "Babel2"; return d },
		},
		"domain version": {
			domain: func(d SigningDomain) SigningDomain { d.Version = "1.0.1"; return d },
		},
		"token id": {
			request: func(r ClaimRequest) ClaimRequest { r.TokenID = big.NewInt(1235); return r },
		},
		"claimant": {
			request: func(r ClaimRequest) ClaimRequest { r.Account = alice.Address(); return r },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d, r := babelDomain(), req
			if tt.domain != nil {
				d = tt.domain(d)
			}
			if tt.request != nil {
				r = tt.request(r)
			}

			origDigest, err := ClaimDigest(babelDomain(), req)
			require.NoError(t, err)
			digest, err := ClaimDigest(d, r)
			require.NoError(t, err)
			assert.NotEqual(t, origDigest, digest)

			recovered, err := RecoverSigner(d, r, sig)
			if err == nil {
				assert.NotEqual(t, alice.Address(), recovered)
			}
		})
	}
}

// Signature validity says nothing about minting rights: an arbitrary key
// produces a signature that recovers cleanly to itself.
func TestUnauthorizedSignerStillRecovers(t *testing.T) {
	alice := newSigner(t)
	bob := crypto.PubkeyToAddress(newKey(t).PublicKey)
	req := ClaimRequest{TokenID: big.NewInt(1234), Account: bob}

	sig, err := BuildSignature(babelDomain(), req, alice)
	require.NoError(t, err)
	recovered, err := RecoverSigner(babelDomain(), req, sig)
	require.NoError(t, err)
	assert.Equal(t, alice.Address(), recovered)
	assert.NotEqual(t, bob, recovered)
}

func TestInvalidInputs(t *testing.T) {
	alice := newSigner(t)
	account := alice.Address()
	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)

	var tests = map[string]struct {
		domain  SigningDomain
		request ClaimRequest
		wantErr error
	}{
		"nil chain id": {
			domain:  SigningDomain{Name: "Babel", Version: "1.0.0", VerifyingContract: verifyingContract},
			request: ClaimRequest{TokenID: big.NewInt(1), Account: account},
			wantErr: ErrNilChainID,
		},
		"nil token id": {
			domain:  babelDomain(),
			request: ClaimRequest{Account: account},
			wantErr: utils.ErrInvalidTokenID,
		},
		"negative token id": {
			domain:  babelDomain(),
			request: ClaimRequest{TokenID: big.NewInt(-1), Account: account},
			wantErr: utils.ErrInvalidTokenID,
		},
		"token id over 256 bits": {
			domain:  babelDomain(),
			request: ClaimRequest{TokenID: tooBig, Account: account},
			wantErr: utils.ErrInvalidTokenID,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sig, err := BuildSignature(tt.domain, tt.request, alice)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, ClaimSignature{}, sig)
		})
	}
}

type failingSigner struct{}

func (failingSigner) Address() common.Address { return common.Address{} }

func (failingSigner) SignHash([]byte) ([]byte, error) { return nil, ErrNoKey }

func TestSignerFailurePropagates(t *testing.T) {
	req := ClaimRequest{TokenID: big.NewInt(1), Account: verifyingContract}
	sig, err := BuildSignature(babelDomain(), req, failingSigner{})
	assert.True(t, errors.Is(err, ErrNoKey))
	assert.Equal(t, ClaimSignature{}, sig)
}

func TestRecoverRejectsMalformedSignatures(t *testing.T) {
	alice := newSigner(t)
	req := ClaimRequest{TokenID: big.NewInt(99), Account: alice.Address()}
	sig, err := BuildSignature(babelDomain(), req, alice)
	require.NoError(t, err)

	t.Run("bad recovery id", func(t *testing.T) {
		bad := sig
		bad[crypto.RecoveryIDOffset] = 30
		_, err := RecoverSigner(babelDomain(), req, bad)
		assert.ErrorIs(t, err, ErrSignatureRecoveryV)
	})

	t.Run("high s", func(t *testing.T) {
		n := crypto.S256().Params().N
		s := new(big.Int).SetBytes(sig[32:64])
		highS := new(big.Int).Sub(n, s)
		bad := sig
		copy(bad[32:64], common.LeftPadBytes(highS.Bytes(), 32))
		bad[crypto.RecoveryIDOffset] ^= 1
		_, err := RecoverSigner(babelDomain(), req, bad)
		assert.ErrorIs(t, err, ErrSignatureValues)
	})

	t.Run("raw recovery id accepted", func(t *testing.T) {
		raw := sig
		raw[crypto.RecoveryIDOffset] -= 27
		recovered, err := RecoverSigner(babelDomain(), req, raw)
		require.NoError(t, err)
		assert.Equal(t, alice.Address(), recovered)
	})
}

func TestClaimSignatureEncoding(t *testing.T) {
	alice := newSigner(t)
	req := ClaimRequest{TokenID: big.NewInt(5), Account: alice.Address()}
	sig, err := BuildSignature(babelDomain(), req, alice)
	require.NoError(t, err)

	parsed, err := ParseClaimSignature(sig.Hex())
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)

	out, err := json.Marshal(struct {
		Signature ClaimSignature `json:"signature"`
	}{sig})
	require.NoError(t, err)
	assert.JSONEq(t, `{"signature":"`+sig.Hex()+`"}`, string(out))

	_, err = ParseClaimSignature("0x1234")
	assert.ErrorIs(t, err, ErrSignatureLength)
	_, err = ParseClaimSignature("zz")
	assert.Error(t, err)
}

func TestKeystoreSigner(t *testing.T) {
	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	key := newKey(t)
	account, err := ks.ImportECDSA(key, "babel")
	require.NoError(t, err)

	ksSigner, err := NewKeystoreSigner(ks, account.Address, "babel")
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), ksSigner.Address())

	req := ClaimRequest{TokenID: big.NewInt(12), Account: common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906")}
	sig, err := BuildSignature(babelDomain(), req, ksSigner)
	require.NoError(t, err)
	recovered, err := RecoverSigner(babelDomain(), req, sig)
	require.NoError(t, err)
	assert.Equal(t, account.Address, recovered)

	wrongPwd, err := NewKeystoreSigner(ks, account.Address, "wrong")
	require.NoError(t, err)
	_, err = BuildSignature(babelDomain(), req, wrongPwd)
	assert.ErrorIs(t, err, ErrNoKey)

	_, err = NewKeystoreSigner(ks, common.HexToAddress("0x01"), "babel")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestPrivateKeySignerFromHex(t *testing.T) {
	// hardhat account #0
	s, err := NewPrivateKeySignerFromHex("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), s.Address())

	_, err = NewPrivateKeySignerFromHex("nothex")
	assert.ErrorIs(t, err, ErrNoKey)
	_, err = NewPrivateKeySigner(nil)
	assert.ErrorIs(t, err, ErrNoKey)
}
