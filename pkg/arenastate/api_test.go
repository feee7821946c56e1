package arenastate_test

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dstack-TEE/dstack/sdk/go/tappd"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/arenastate/pkg/arenastate"
	"github.com/NethermindEth/arenastate/pkg/arenastate/chain"
	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
	"github.com/NethermindEth/arenastate/pkg/arenastate/wallet"
)

const testEnv = `export ARENASTATE_LOGLEVEL=DEBUG
export ARENASTATE_DEPLOY_KEY=hardhat:10
export ARENASTATE_OWNER_KEY=hardhat:11
export ARENASTATE_OPENAI_API_KEY=sk-secret
`

type mockTappdClient struct {
	tdxQuote func(ctx context.Context, reportData []byte) (*tappd.TdxQuoteResponse, error)
}

func (m *mockTappdClient) TdxQuote(ctx context.Context, reportData []byte) (*tappd.TdxQuoteResponse, error) {
	return m.tdxQuote(ctx, reportData)
}

func setupTestState(t *testing.T, opts ...func(*arenastate.StateConfig)) *arenastate.State {
	ctx := context.Background()

	surface, err := envfile.ParseString(testEnv)
	require.NoError(t, err)

	config, err := setup.NewConfig(surface)
	require.NoError(t, err)

	keys, err := wallet.NewResolver().ResolveAll(ctx, config.Keys)
	require.NoError(t, err)

	conn, err := chain.Connect(ctx, config, keys)
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	stateConfig := &arenastate.StateConfig{
		Config:     config,
		Surface:    surface,
		Keys:       keys,
		Connection: conn,
	}

	for _, opt := range opts {
		opt(stateConfig)
	}

	state, err := arenastate.NewState(ctx, stateConfig)
	require.NoError(t, err)
	return state
}

func get(t *testing.T, state *arenastate.State, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	state.GetRouter().ServeHTTP(w, req)
	return w
}

func TestNewState_Errors(t *testing.T) {
	_, err := arenastate.NewState(context.Background(), nil)
	assert.Error(t, err)

	_, err = arenastate.NewState(context.Background(), &arenastate.StateConfig{})
	assert.Error(t, err)
}

func TestStateApi_GetRouter(t *testing.T) {
	state := setupTestState(t)

	t.Run("GET /healthz", func(t *testing.T) {
		w := get(t, state, "/healthz")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("GET /mode", func(t *testing.T) {
		w := get(t, state, "/mode")
		assert.Equal(t, http.StatusOK, w.Code)

		var mode map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&mode))
		assert.Equal(t, "in-process", mode["mode"])
		assert.Equal(t, float64(1337), mode["chainId"])
		assert.NotContains(t, mode, "arena")
	})

	t.Run("GET /env", func(t *testing.T) {
		w := get(t, state, "/env")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "export ARENASTATE_DEPLOY_KEY=hardhat:10\n")
		assert.Contains(t, w.Body.String(), "export ARENASTATE_OPENAI_API_KEY=")
		assert.NotContains(t, w.Body.String(), "sk-secret")
	})

	t.Run("GET /address/:role", func(t *testing.T) {
		address, ok := state.Address(setup.RoleOwner)
		require.True(t, ok)

		w := get(t, state, "/address/owner")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, address.String(), w.Body.String())

		w = get(t, state, "/address/guardian")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /quote without tappd", func(t *testing.T) {
		w := get(t, state, "/quote")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestState_LocateArena(t *testing.T) {
	var conn *chain.Connection
	state := setupTestState(t, func(c *arenastate.StateConfig) {
		conn = c.Connection
	})

	_, err := state.LocateArena(context.Background())
	assert.ErrorIs(t, err, chain.ErrNotDeployed)

	deployer, ok := state.Address(setup.RoleDeploy)
	require.True(t, ok)
	key, err := wallet.NewResolver().Resolve(context.Background(), "hardhat:10")
	require.NoError(t, err)
	require.Equal(t, deployer, key.Address())

	auth, err := key.Transactor(conn.ChainID)
	require.NoError(t, err)
	deployed, _, _, err := bind.DeployContract(auth, abi.ABI{}, common.FromHex("600a600c600039600a6000f3602a60005260206000f3"), conn.Client)
	require.NoError(t, err)
	_, err = conn.Commit()
	require.NoError(t, err)

	arena, err := state.LocateArena(context.Background())
	require.NoError(t, err)
	assert.Equal(t, deployed, arena)
	assert.Equal(t, deployed, state.Arena())

	w := get(t, state, "/mode")
	var mode map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&mode))
	assert.Equal(t, deployed.Hex(), mode["arena"])
}

func TestStateApi_Quote(t *testing.T) {
	arena := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	var reportData []byte
	state := setupTestState(t, func(config *arenastate.StateConfig) {
		config.TappdClient = &mockTappdClient{
			tdxQuote: func(ctx context.Context, data []byte) (*tappd.TdxQuoteResponse, error) {
				reportData = data
				return &tappd.TdxQuoteResponse{Quote: "test-quote"}, nil
			},
		}
		require.NoError(t, config.Connection.SetArena(arena))
	})

	w := get(t, state, "/quote")
	assert.Equal(t, http.StatusOK, w.Code)

	var quote string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))
	assert.Equal(t, "test-quote", quote)

	digest := sha256.Sum256([]byte(testEnv))
	assert.Equal(t, append(arena.Bytes(), digest[:]...), reportData)

	w = get(t, state, "/mode")
	assert.Contains(t, w.Body.String(), arena.Hex())
}

func TestStateApi_QuoteError(t *testing.T) {
	state := setupTestState(t, func(config *arenastate.StateConfig) {
		config.TappdClient = &mockTappdClient{
			tdxQuote: func(ctx context.Context, reportData []byte) (*tappd.TdxQuoteResponse, error) {
				return nil, assert.AnError
			},
		}
	})

	w := get(t, state, "/quote")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, assert.AnError.Error(), w.Body.String())
}

func TestState_Start(t *testing.T) {
	state := setupTestState(t)
	assert.Equal(t, "", state.ApiIpPort())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, state.Start(ctx), context.Canceled)
}

func TestNewStateConfigFromSetupResult(t *testing.T) {
	_, err := arenastate.NewStateConfigFromSetupResult(context.Background(), nil, "")
	assert.Error(t, err)

	surface, err := envfile.ParseString(testEnv)
	require.NoError(t, err)
	config, err := setup.NewConfig(surface)
	require.NoError(t, err)

	stateConfig, err := arenastate.NewStateConfigFromSetupResult(context.Background(), &setup.SetupResult{
		Config:  config,
		Surface: surface,
	}, "")
	require.NoError(t, err)
	defer stateConfig.Connection.Close()

	assert.Nil(t, stateConfig.TappdClient)
	assert.Len(t, stateConfig.Keys, 2)
	assert.Equal(t, setup.ModeInProcess, stateConfig.Connection.Mode)
}
