package wallet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

var ErrUnknownReference = errors.New("unrecognised credential reference")

const (
	ProviderHardhat = "hardhat"

	keyCacheSize = 64
	keyCacheTTL  = 10 * time.Minute

	resolveConcurrency = 4
)

// Resolver turns credential references into keys. A reference is one of
//
//	provider:index  derived from the provider's mnemonic, e.g. hardhat:10
//	path            a file holding a hex encoded private key
//	hex             a hex encoded private key, with or without 0x
type Resolver struct {
	mnemonics map[string]string
	cache     *expirable.LRU[string, *Key]
}

func NewResolver() *Resolver {
	return &Resolver{
		mnemonics: map[string]string{ProviderHardhat: HardhatMnemonic},
		cache:     expirable.NewLRU[string, *Key](keyCacheSize, nil, keyCacheTTL),
	}
}

// WithMnemonic registers the mnemonic used for provider:index references.
func (r *Resolver) WithMnemonic(provider, mnemonic string) *Resolver {
	r.mnemonics[provider] = mnemonic
	return r
}

func (r *Resolver) Resolve(ctx context.Context, ref string) (*Key, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, fmt.Errorf("empty credential reference")
	}

	if key, ok := r.cache.Get(ref); ok {
		return key, nil
	}

	key, err := r.resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", Redact(ref), err)
	}

	r.cache.Add(ref, key)
	return key, nil
}

func (r *Resolver) resolve(ref string) (*Key, error) {
	if provider, index, ok := strings.Cut(ref, ":"); ok {
		if mnemonic, known := r.mnemonics[provider]; known {
			i, err := strconv.ParseUint(index, 10, 31)
			if err != nil {
				return nil, fmt.Errorf("invalid account index %q: %w", index, err)
			}
			seed, err := MnemonicSeed(mnemonic, "")
			if err != nil {
				return nil, err
			}
			privateKey, err := DeriveKey(seed, AccountPath(uint32(i)))
			if err != nil {
				return nil, err
			}
			return NewKey(privateKey, ref), nil
		}
	}

	if isFile(ref) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read key file: %w", err)
		}
		return hexKey(strings.TrimSpace(string(data)), ref)
	}

	if isHexKey(ref) {
		return hexKey(ref, ref)
	}

	return nil, ErrUnknownReference
}

// ResolveAll resolves every role's reference concurrently.
func (r *Resolver) ResolveAll(ctx context.Context, refs map[string]string) (map[string]*Key, error) {
	keys := make(map[string]*Key, len(refs))
	if len(refs) == 0 {
		return keys, nil
	}

	type resolved struct {
		role string
		key  *Key
	}

	pool := pond.NewResultPool[resolved](resolveConcurrency)
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for role, ref := range refs {
		group.SubmitErr(func() (resolved, error) {
			key, err := r.Resolve(ctx, ref)
			if err != nil {
				return resolved{}, fmt.Errorf("%s: %w", role, err)
			}
			return resolved{role: role, key: key}, nil
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		keys[res.role] = res.key
	}
	return keys, nil
}

// Redact makes a reference safe to log. Hex keys are masked; provider:index
// references and file paths are not secret.
func Redact(ref string) string {
	if !isHexKey(ref) {
		return ref
	}
	return ref[:min(len(ref), 6)] + "…"
}

func hexKey(s, ref string) (*Key, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	return NewKey(privateKey, ref), nil
}

func isHexKey(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
