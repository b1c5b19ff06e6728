package signer

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrNoKey = errors.New("signing key unavailable")

// HashSigner produces a recoverable secp256k1 signature over a 32 byte digest.
type HashSigner interface {
	Address() common.Address
	SignHash(hash []byte) ([]byte, error)
}

type PrivateKeySigner struct {
	key *ecdsa.PrivateKey
}

var _ HashSigner = (*PrivateKeySigner)(nil)

func NewPrivateKeySigner(key *ecdsa.PrivateKey) (*PrivateKeySigner, error) {
	if key == nil {
		return nil, ErrNoKey
	}
	return &PrivateKeySigner{key: key}, nil
}

// NewPrivateKeySignerFromHex accepts the key with or without 0x prefix.
func NewPrivateKeySignerFromHex(hexKey string) (*PrivateKeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoKey, err)
	}
	return &PrivateKeySigner{key: key}, nil
}

func (p *PrivateKeySigner) Address() common.Address {
	return crypto.PubkeyToAddress(p.key.PublicKey)
}

func (p *PrivateKeySigner) SignHash(hash []byte) ([]byte, error) {
	return crypto.Sign(hash, p.key)
}

// KeystoreSigner signs with an encrypted key held in a go-ethereum keystore.
type KeystoreSigner struct {
	ks         *keystore.KeyStore
	account    accounts.Account
	passphrase string
}

var _ HashSigner = (*KeystoreSigner)(nil)

func NewKeystoreSigner(ks *keystore.KeyStore, addr common.Address, passphrase string) (*KeystoreSigner, error) {
	account, err := ks.Find(accounts.Account{Address: addr})
	if err != nil {
		return nil, fmt.Errorf("%w: account %s: %v", ErrNoKey, addr.Hex(), err)
	}
	return &KeystoreSigner{ks: ks, account: account, passphrase: passphrase}, nil
}

func (k *KeystoreSigner) Address() common.Address {
	return k.account.Address
}

func (k *KeystoreSigner) SignHash(hash []byte) ([]byte, error) {
	sig, err := k.ks.SignHashWithPassphrase(k.account, k.passphrase, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoKey, err)
	}
	return sig, nil
}
