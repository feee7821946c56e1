package arenastate

import (
	"context"

	"github.com/Dstack-TEE/dstack/sdk/go/tappd"
)

type TappdClient interface {
	TdxQuote(ctx context.Context, reportData []byte) (*tappd.TdxQuoteResponse, error)
}
