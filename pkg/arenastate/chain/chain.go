package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/ethclient/simulated"

	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
	"github.com/NethermindEth/arenastate/pkg/arenastate/wallet"
)

type Client interface {
	bind.ContractBackend
	bind.DeployBackend
	ethereum.ChainStateReader
	ethereum.BlockNumberReader
	ethereum.ChainIDReader
}

// InProcessBalance funds each resolved key on the in-process chain.
var InProcessBalance = new(big.Int).Mul(big.NewInt(10_000), big.NewInt(1e18))

// Connection is the chain the arena lives on. In ModeInProcess the arena is
// not deployed yet and Arena is the zero address until SetArena is called.
type Connection struct {
	Client  Client
	Mode    setup.Mode
	ChainID *big.Int

	arena   common.Address
	backend *simulated.Backend
	closeFn func()
}

func Connect(ctx context.Context, config *setup.Config, keys map[string]*wallet.Key) (*Connection, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}

	var conn *Connection
	switch config.Mode() {
	case setup.ModeInProcess:
		conn = newInProcess(keys)
	case setup.ModeExternal:
		ethClient, err := ethclient.DialContext(ctx, config.ProviderUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to dial ethereum client: %w", err)
		}
		conn = &Connection{
			Client:  ethClient,
			Mode:    setup.ModeExternal,
			arena:   *config.Arena,
			closeFn: ethClient.Close,
		}
	}

	chainID, err := conn.Client.ChainID(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	conn.ChainID = chainID

	slog.Info("connected", "mode", conn.Mode.String(), "chainId", chainID, "arena", conn.arena.Hex())
	return conn, nil
}

func newInProcess(keys map[string]*wallet.Key) *Connection {
	alloc := types.GenesisAlloc{}
	for _, key := range keys {
		alloc[key.Address()] = types.Account{Balance: InProcessBalance}
	}

	backend := simulated.NewBackend(alloc)
	return &Connection{
		Client:  backend.Client(),
		Mode:    setup.ModeInProcess,
		backend: backend,
		closeFn: func() { backend.Close() },
	}
}

func (c *Connection) Arena() common.Address {
	return c.arena
}

// SetArena records the address of an arena deployed in process.
func (c *Connection) SetArena(arena common.Address) error {
	if c.Mode != setup.ModeInProcess {
		return errors.New("the arena address of an external connection is fixed by configuration")
	}
	c.arena = arena
	return nil
}

// Commit mines pending transactions on the in-process chain.
func (c *Connection) Commit() (common.Hash, error) {
	if c.backend == nil {
		return common.Hash{}, errors.New("commit is only available in process")
	}
	return c.backend.Commit(), nil
}

func (c *Connection) Close() {
	if c.closeFn != nil {
		c.closeFn()
		c.closeFn = nil
	}
}
