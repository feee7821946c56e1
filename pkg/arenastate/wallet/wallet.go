package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	beecrypto "github.com/ethersphere/bee/v2/pkg/crypto"
)

// Key is a signing key resolved from a credential reference.
type Key struct {
	privateKey *ecdsa.PrivateKey
	ref        string
}

func NewKey(privateKey *ecdsa.PrivateKey, ref string) *Key {
	return &Key{
		privateKey: privateKey,
		ref:        ref,
	}
}

func (k *Key) PrivateKey() *ecdsa.PrivateKey {
	return k.privateKey
}

// Reference is the credential reference the key was resolved from.
func (k *Key) Reference() string {
	return k.ref
}

func (k *Key) Address() common.Address {
	return crypto.PubkeyToAddress(k.privateKey.PublicKey)
}

func (k *Key) Signer() beecrypto.Signer {
	return beecrypto.NewDefaultSigner(k.privateKey)
}

// SignMessage signs data with the Ethereum signed message prefix.
func (k *Key) SignMessage(data []byte) ([]byte, error) {
	signature, err := k.Signer().Sign(data)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	return signature, nil
}

func (k *Key) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(k.privateKey, chainID)
}
