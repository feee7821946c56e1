package setup

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
)

var (
	ErrEmptyArena            = errors.New(EnvArena + " is set but empty, unset it to deploy in process")
	ErrUnresolvedPlaceholder = errors.New("placeholder was not substituted")
)

type Mode int

const (
	// ModeInProcess deploys a fresh arena on an in-process chain.
	ModeInProcess Mode = iota
	// ModeExternal connects to an already deployed arena.
	ModeExternal
)

func (m Mode) String() string {
	if m == ModeExternal {
		return "external"
	}
	return "in-process"
}

type Config struct {
	LogLevel    string
	ProviderUrl string
	// Arena is nil when ARENASTATE_ARENA is not set, which selects
	// ModeInProcess.
	Arena       *common.Address
	DeployNonce *uint64
	ApiIpPort   string
	// Keys maps a role to its credential reference, e.g. "hardhat:1". The
	// references are resolved by the wallet package.
	Keys map[string]string

	OpenAi     OpenAiOptions
	NftStorage NftStorageOptions
	Maptool    MaptoolOptions
}

func NewConfigFromEnv() (*Config, error) {
	return NewConfig(envfile.OSEnv{})
}

func NewConfig(src envfile.Source) (*Config, error) {
	config := &Config{
		LogLevel:    lookupDefault(src, EnvLogLevel, DefaultLogLevel),
		ProviderUrl: lookupDefault(src, EnvProviderUrl, DefaultProviderUrl),
		ApiIpPort:   lookupDefault(src, EnvApiIpPort, ""),
		Keys:        make(map[string]string),
		OpenAi:      NewOpenAiOptions(src, OpenAiGroup),
		NftStorage:  NewNftStorageOptions(src, NftStorageGroup),
		Maptool:     NewMaptoolOptions(src, MaptoolGroup),
	}

	if v, ok := src.Lookup(EnvArena); ok {
		if v == "" {
			return nil, ErrEmptyArena
		}
		if !common.IsHexAddress(v) {
			return nil, fmt.Errorf("%s is not an address: %q", EnvArena, v)
		}
		arena := common.HexToAddress(v)
		config.Arena = &arena
	}

	if v, ok := src.Lookup(EnvDeployNonce); ok && v != "" {
		nonce, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", EnvDeployNonce, err)
		}
		config.DeployNonce = &nonce
	}

	for _, rk := range roleKeys {
		if v, ok := src.Lookup(rk.Env); ok && v != "" {
			config.Keys[rk.Role] = v
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Mode() Mode {
	if c.Arena == nil {
		return ModeInProcess
	}
	return ModeExternal
}

func (c *Config) Validate() error {
	for _, rk := range roleKeys {
		if _, ok := envfile.IsPlaceholder(c.Keys[rk.Role]); ok {
			return fmt.Errorf("%s: %w", rk.Env, ErrUnresolvedPlaceholder)
		}
	}

	if c.Mode() == ModeExternal {
		if c.ProviderUrl == "" {
			return errors.New(EnvProviderUrl + " is required when " + EnvArena + " is set")
		}
		if c.Keys[RoleOwner] == "" {
			return errors.New(EnvOwnerKey + " is required when " + EnvArena + " is set")
		}
	}

	return nil
}

// Key returns the credential reference for role and whether one is set.
func (c *Config) Key(role string) (string, bool) {
	ref, ok := c.Keys[role]
	return ref, ok && ref != ""
}

func lookupDefault(src envfile.Source, name, def string) string {
	if v, ok := src.Lookup(name); ok {
		return v
	}
	return def
}
