package arenastate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dstack-TEE/dstack/sdk/go/tappd"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/NethermindEth/arenastate/pkg/arenastate/chain"
	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
	"github.com/NethermindEth/arenastate/pkg/arenastate/wallet"
)

// State is a running arenastate: the configuration surface, the keys it
// resolved and the chain it connected to.
type State struct {
	config      *setup.Config
	surface     *envfile.Surface
	keys        map[string]*wallet.Key
	conn        *chain.Connection
	tappdClient TappdClient
	apiRouter   *gin.Engine
	apiIpPort   string
}

type StateConfig struct {
	Config     *setup.Config
	Surface    *envfile.Surface
	Keys       map[string]*wallet.Key
	Connection *chain.Connection
	// TappdClient is optional. Without it /quote is unavailable.
	TappdClient TappdClient
}

func NewState(ctx context.Context, config *StateConfig) (*State, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}
	if config.Config == nil || config.Surface == nil || config.Connection == nil {
		return nil, errors.New("config, surface and connection are required")
	}

	keys := config.Keys
	if keys == nil {
		keys = map[string]*wallet.Key{}
	}

	state := &State{
		config:      config.Config,
		surface:     config.Surface,
		keys:        keys,
		conn:        config.Connection,
		tappdClient: config.TappdClient,
		apiIpPort:   config.Config.ApiIpPort,
	}

	state.apiRouter = state.generateRouter()

	return state, nil
}

// NewStateConfigFromSetupResult resolves the configured keys and connects to
// the chain the configuration selects.
func NewStateConfigFromSetupResult(ctx context.Context, setupResult *setup.SetupResult, dstackTappdEndpoint string) (*StateConfig, error) {
	if setupResult == nil {
		return nil, errors.New("setup result is nil")
	}

	keys, err := wallet.NewResolver().ResolveAll(ctx, setupResult.Config.Keys)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve keys: %w", err)
	}

	conn, err := chain.Connect(ctx, setupResult.Config, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	var tappdClient TappdClient
	if dstackTappdEndpoint != "" {
		tappdClient = tappd.NewTappdClient(tappd.WithEndpoint(dstackTappdEndpoint))
	}

	return &StateConfig{
		Config:      setupResult.Config,
		Surface:     setupResult.Surface,
		Keys:        keys,
		Connection:  conn,
		TappdClient: tappdClient,
	}, nil
}

// Start serves the api until ctx is done.
func (s *State) Start(ctx context.Context) error {
	if err := s.StartServer(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	s.conn.Close()
	return ctx.Err()
}

func (s *State) Mode() setup.Mode {
	return s.config.Mode()
}

func (s *State) Arena() common.Address {
	return s.conn.Arena()
}

// LocateArena returns the arena, deriving it from the deploy key once an
// in-process deployment has been mined.
func (s *State) LocateArena(ctx context.Context) (common.Address, error) {
	if arena := s.conn.Arena(); arena != (common.Address{}) {
		return arena, nil
	}

	arena, err := chain.ArenaAddress(ctx, s.config, s.keys, s.conn.Client)
	if err != nil {
		return common.Address{}, err
	}
	if err := s.conn.SetArena(arena); err != nil {
		return common.Address{}, err
	}
	return arena, nil
}

// Address returns the address of the key resolved for role.
func (s *State) Address(role string) (common.Address, bool) {
	key, ok := s.keys[role]
	if !ok {
		return common.Address{}, false
	}
	return key.Address(), true
}

// Env is the substituted surface with credential values masked.
func (s *State) Env() string {
	return s.surface.Redacted().String()
}

func (s *State) ApiIpPort() string {
	return s.apiIpPort
}

func (s *State) Quote(ctx context.Context) (string, error) {
	if s.tappdClient == nil {
		return "", errors.New("no tappd endpoint configured")
	}

	reportDataBytes, err := generateReportDataBytes(s.Arena(), s.surface.String())
	if err != nil {
		return "", err
	}

	quote, err := s.tappdClient.TdxQuote(ctx, reportDataBytes)
	if err != nil {
		return "", err
	}

	slog.Debug("generated quote", "arena", s.Arena().Hex())
	return quote.Quote, nil
}
