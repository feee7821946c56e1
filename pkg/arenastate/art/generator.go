package art

import "context"

type Generator interface {
	// GenerateUrl returns a URL the generated image can be fetched from.
	GenerateUrl(ctx context.Context, prompt string) (string, error)
}
