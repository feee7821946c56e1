package setup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

func TestConfig_Mode(t *testing.T) {
	t.Run("arena unset selects in-process", func(t *testing.T) {
		config, err := setup.NewConfig(envfile.MapSource{})
		require.NoError(t, err)
		assert.Nil(t, config.Arena)
		assert.Equal(t, setup.ModeInProcess, config.Mode())
		assert.Equal(t, "in-process", config.Mode().String())
	})

	t.Run("arena set selects external", func(t *testing.T) {
		config, err := setup.NewConfig(envfile.MapSource{
			setup.EnvArena:    arenaAddress,
			setup.EnvOwnerKey: "hardhat:1",
		})
		require.NoError(t, err)
		require.NotNil(t, config.Arena)
		assert.Equal(t, arenaAddress, config.Arena.Hex())
		assert.Equal(t, setup.ModeExternal, config.Mode())
		assert.Equal(t, "external", config.Mode().String())
	})

	t.Run("arena set but empty is rejected", func(t *testing.T) {
		_, err := setup.NewConfig(envfile.MapSource{setup.EnvArena: ""})
		assert.ErrorIs(t, err, setup.ErrEmptyArena)
	})

	t.Run("arena must be an address", func(t *testing.T) {
		_, err := setup.NewConfig(envfile.MapSource{setup.EnvArena: "arena"})
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		env     envfile.MapSource
		wantErr error
	}{
		{
			name: "external without owner key",
			env:  envfile.MapSource{setup.EnvArena: arenaAddress},
		},
		{
			name: "external with empty provider",
			env: envfile.MapSource{
				setup.EnvArena:       arenaAddress,
				setup.EnvOwnerKey:    "hardhat:1",
				setup.EnvProviderUrl: "",
			},
		},
		{
			name:    "unsubstituted key",
			env:     envfile.MapSource{setup.EnvGuardianKey: "$ARENASTATE_GUARDIAN_KEY"},
			wantErr: setup.ErrUnresolvedPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := setup.NewConfig(tt.env)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Keys(t *testing.T) {
	config, err := setup.NewConfig(envfile.MapSource{
		setup.EnvDeployKey: "hardhat:0",
		setup.EnvUser3Key:  "",
	})
	require.NoError(t, err)

	ref, ok := config.Key(setup.RoleDeploy)
	assert.True(t, ok)
	assert.Equal(t, "hardhat:0", ref)

	_, ok = config.Key(setup.RoleUser3)
	assert.False(t, ok)
	_, ok = config.Key(setup.RoleOwner)
	assert.False(t, ok)

	assert.Equal(t, []string{"deploy", "owner", "guardian", "user1", "user2", "user3", "user4"}, setup.Roles())
}

func TestConfig_DeployNonce(t *testing.T) {
	config, err := setup.NewConfig(envfile.MapSource{setup.EnvDeployNonce: "7"})
	require.NoError(t, err)
	require.NotNil(t, config.DeployNonce)
	assert.Equal(t, uint64(7), *config.DeployNonce)

	_, err = setup.NewConfig(envfile.MapSource{setup.EnvDeployNonce: "-1"})
	assert.Error(t, err)
}

func TestGroup_Have(t *testing.T) {
	tests := []struct {
		name  string
		group setup.Group
		env   envfile.MapSource
		want  bool
	}{
		{
			name:  "empty prefix",
			group: setup.NftStorageGroup.WithPrefix(""),
			env:   envfile.MapSource{"URL": "url", "API_KEY": "key"},
			want:  true,
		},
		{
			name:  "custom prefix",
			group: setup.NftStorageGroup.WithPrefix("PUBLIC_"),
			env:   envfile.MapSource{"PUBLIC_URL": "url", "PUBLIC_API_KEY": "key"},
			want:  true,
		},
		{
			name:  "optional names are not needed",
			group: setup.OpenAiGroup,
			env: envfile.MapSource{
				"ARENASTATE_OPENAI_API_KEY":    "key",
				"ARENASTATE_OPENAI_IMAGES_URL": "url",
			},
			want: true,
		},
		{
			name:  "missing required",
			group: setup.MaptoolGroup,
			env: envfile.MapSource{
				"ARENASTATE_MAPTOOL_URL":   "url",
				"ARENASTATE_MAPTOOL_IMAGE": "image",
			},
			want: false,
		},
		{
			name:  "empty required",
			group: setup.OpenAiGroup,
			env: envfile.MapSource{
				"ARENASTATE_OPENAI_API_KEY":    "",
				"ARENASTATE_OPENAI_IMAGES_URL": "url",
			},
			want: false,
		},
		{
			name:  "placeholder required",
			group: setup.OpenAiGroup,
			env: envfile.MapSource{
				"ARENASTATE_OPENAI_API_KEY":    "$ARENASTATE_OPENAI_API_KEY",
				"ARENASTATE_OPENAI_IMAGES_URL": "url",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.group.Have(tt.env))
		})
	}
}

func TestGroup_Unusable(t *testing.T) {
	s, err := setup.DefaultSurface()
	require.NoError(t, err)

	assert.Equal(t, []string{"API_KEY"}, setup.OpenAiGroup.Unusable(s))
	assert.Equal(t, []string{"API_KEY"}, setup.NftStorageGroup.Unusable(s))
	assert.Empty(t, setup.MaptoolGroup.Unusable(s))
	assert.Equal(t, []string{"URL", "IMAGE", "IMAGE_DIGEST"}, setup.MaptoolGroup.Unusable(envfile.MapSource{}))
}

func TestGroup_Get(t *testing.T) {
	got := setup.OpenAiGroup.WithPrefix("").Get(envfile.MapSource{
		"IMAGES_URL": "url",
		"API_KEY":    "key",
	})
	assert.Equal(t, map[string]string{"IMAGES_URL": "url", "API_KEY": "key"}, got.Values)
	assert.Equal(t, []string{"IMAGE_PROMPT"}, got.Missing)
	assert.True(t, got.MissingAny())

	got = setup.MaptoolGroup.Get(envfile.MapSource{"ARENASTATE_MAPTOOL_URL": "url"})
	assert.Equal(t, map[string]string{"URL": "url"}, got.Values)
	assert.Equal(t, []string{"IMAGE", "IMAGE_DIGEST"}, got.Missing)
}

func TestGroupOptions(t *testing.T) {
	s, err := setup.DefaultSurface()
	require.NoError(t, err)

	maptool := setup.NewMaptoolOptions(s, setup.MaptoolGroup)
	assert.True(t, maptool.Configured)
	assert.Equal(t, "eu.gcr.io/hoy-dev-1/chaintrap-maptool:main-20", maptool.Image)

	openai := setup.NewOpenAiOptions(s, setup.OpenAiGroup)
	assert.False(t, openai.Configured)
	assert.Equal(t, "https://api.openai.com/v1/images/generations", openai.ImagesUrl)

	nft := setup.NewNftStorageOptions(s, setup.NftStorageGroup)
	assert.False(t, nft.Configured)
	assert.Equal(t, "https://api.nft.storage", nft.Url)
}
