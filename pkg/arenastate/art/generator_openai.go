package art

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

const (
	DefaultImagePrompt = "A stylised icon representing a turn based random dungeon crawler game"
	DefaultModel       = openai.CreateImageModelDallE3

	imagesPath = "/images/generations"
)

type OpenAiGenerator struct {
	model         string
	defaultPrompt string
	client        *openai.Client
}

var _ Generator = (*OpenAiGenerator)(nil)

func NewOpenAiGenerator(apiKey string, imagesUrl string, model string) *OpenAiGenerator {
	config := openai.DefaultConfig(apiKey)
	if baseUrl := BaseUrl(imagesUrl); baseUrl != "" {
		config.BaseURL = baseUrl
	}

	return &OpenAiGenerator{
		model:         model,
		defaultPrompt: DefaultImagePrompt,
		client:        openai.NewClientWithConfig(config),
	}
}

func NewOpenAiGeneratorFromOptions(options setup.OpenAiOptions) (*OpenAiGenerator, error) {
	if !options.Configured {
		return nil, errors.New("openai is not configured, set " + setup.EnvOpenAiApiKey)
	}

	g := NewOpenAiGenerator(options.ApiKey, options.ImagesUrl, DefaultModel)
	if options.ImagePrompt != "" {
		g.defaultPrompt = options.ImagePrompt
	}
	return g, nil
}

// BaseUrl strips the images endpoint from an images URL, leaving the API
// base the client appends paths to.
func BaseUrl(imagesUrl string) string {
	return strings.TrimSuffix(strings.TrimSuffix(imagesUrl, "/"), imagesPath)
}

func (g *OpenAiGenerator) DefaultPrompt() string {
	return g.defaultPrompt
}

// GenerateUrl uses the default prompt when prompt is empty.
func (g *OpenAiGenerator) GenerateUrl(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		prompt = g.defaultPrompt
	}

	req := openai.ImageRequest{
		Prompt:         prompt,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              1,
		Model:          g.model,
	}

	resp, err := g.client.CreateImage(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create image: %w", err)
	}

	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no image data returned")
	}

	return resp.Data[0].URL, nil
}
