package art_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/arenastate/pkg/arenastate/art"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

func newImagesServer(t *testing.T, prompts *[]string, data []map[string]string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Prompt string `json:"prompt"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*prompts = append(*prompts, req.Prompt)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"created": 1,
			"data":    data,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBaseUrl(t *testing.T) {
	assert.Equal(t, "https://api.openai.com/v1", art.BaseUrl("https://api.openai.com/v1/images/generations"))
	assert.Equal(t, "https://api.openai.com/v1", art.BaseUrl("https://api.openai.com/v1/images/generations/"))
	assert.Equal(t, "http://proxy/v1", art.BaseUrl("http://proxy/v1"))
	assert.Equal(t, "", art.BaseUrl(""))
}

func TestOpenAiGenerator_GenerateUrl(t *testing.T) {
	var prompts []string
	server := newImagesServer(t, &prompts, []map[string]string{{"url": "https://images.example/icon.png"}})

	g := art.NewOpenAiGenerator("test-key", server.URL+"/v1/images/generations", art.DefaultModel)

	url, err := g.GenerateUrl(context.Background(), "a dungeon")
	require.NoError(t, err)
	assert.Equal(t, "https://images.example/icon.png", url)

	_, err = g.GenerateUrl(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"a dungeon", art.DefaultImagePrompt}, prompts)
}

func TestOpenAiGenerator_NoData(t *testing.T) {
	var prompts []string
	server := newImagesServer(t, &prompts, []map[string]string{})

	g := art.NewOpenAiGenerator("test-key", server.URL+"/v1/images/generations", art.DefaultModel)

	_, err := g.GenerateUrl(context.Background(), "a dungeon")
	assert.ErrorContains(t, err, "no image data")
}

func TestNewOpenAiGeneratorFromOptions(t *testing.T) {
	_, err := art.NewOpenAiGeneratorFromOptions(setup.OpenAiOptions{})
	assert.ErrorContains(t, err, setup.EnvOpenAiApiKey)

	g, err := art.NewOpenAiGeneratorFromOptions(setup.OpenAiOptions{
		ApiKey:      "test-key",
		ImagePrompt: "a castle",
		Configured:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "a castle", g.DefaultPrompt())

	g, err = art.NewOpenAiGeneratorFromOptions(setup.OpenAiOptions{ApiKey: "test-key", Configured: true})
	require.NoError(t, err)
	assert.Equal(t, art.DefaultImagePrompt, g.DefaultPrompt())
}
