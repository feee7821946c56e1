package wallet

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// HardhatMnemonic is the well known mnemonic of the hardhat development
// network accounts.
const HardhatMnemonic = "test test test test test test test test test test test junk"

const hardenedOffset = 0x80000000

// AccountPath returns m/44'/60'/0'/0/index.
func AccountPath(index uint32) accounts.DerivationPath {
	return accounts.DerivationPath{
		hardenedOffset + 44,
		hardenedOffset + 60,
		hardenedOffset + 0,
		0,
		index,
	}
}

// MnemonicSeed is the BIP-39 seed for a mnemonic and optional passphrase.
// The mnemonic checksum is verified.
func MnemonicSeed(mnemonic, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(norm.NFKD.String(mnemonic), norm.NFKD.String(passphrase))
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return seed, nil
}

// DeriveKey follows the BIP-32 private derivation of path from seed.
func DeriveKey(seed []byte, path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	hd, err := hdwallet.NewFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create hd wallet: %w", err)
	}

	account, err := hd.Derive(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to derive %s: %w", path, err)
	}

	privateKey, err := hd.PrivateKey(account)
	if err != nil {
		return nil, fmt.Errorf("failed to read derived key: %w", err)
	}
	return privateKey, nil
}
