package util

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// Key is a bip32 child key used for both the chain wallet and identity
// derivation.
type Key struct {
	inner *bip32.Key
}

// LoadKey derives the key at the given account index from a bip39 mnemonic.
func LoadKey(mnemonic string, account uint32) (*Key, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	child, err := masterKey.NewChildKey(account)
	if err != nil {
		return nil, err
	}
	return &Key{inner: child}, nil
}

// NewMnemonic generates a fresh 24-word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func (key *Key) ECDSA() (*ecdsa.PrivateKey, error) {
	return crypto.ToECDSA(key.inner.Key)
}

func (key *Key) EvmAddress() (common.Address, error) {
	ecdsaKey, err := key.ECDSA()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(ecdsaKey.PublicKey), nil
}

// SignMessage signs an EIP-191 personal message with the key, used to derive
// the nostr identity deterministically from the wallet key.
func (key *Key) SignMessage(message string) ([]byte, error) {
	ecdsaKey, err := key.ECDSA()
	if err != nil {
		return nil, err
	}
	digest := crypto.Keccak256(
		[]byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)))
	return crypto.Sign(digest, ecdsaKey)
}
