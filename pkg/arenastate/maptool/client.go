package maptool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

const (
	commitPath   = "commit/"
	generatePath = "generate/"

	defaultTimeout = 2 * time.Minute
	maxErrorBody   = 512
)

// Committed is the maptool's VRF commitment for a set of parameters. Raw
// holds the full response, which includes secrets that are lost if not
// saved.
type Committed struct {
	PublicKey string `json:"public_key"`
	Alpha     string `json:"alpha"`
	Beta      string `json:"beta"`
	Pi        string `json:"pi"`

	Raw json.RawMessage `json:"-"`
}

type Client struct {
	baseUrl    string
	httpClient *http.Client
}

func NewClient(url string) (*Client, error) {
	if url == "" {
		return nil, errors.New("maptool url is empty, set " + setup.EnvMaptoolUrl)
	}
	return &Client{
		baseUrl:    NormalizeUrl(url),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

func NewClientFromOptions(options setup.MaptoolOptions) (*Client, error) {
	return NewClient(options.Url)
}

// NormalizeUrl returns the base the commit/ and generate/ paths are relative
// to. A commit url is accepted in place of the base.
func NormalizeUrl(url string) string {
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return strings.TrimSuffix(url, commitPath)
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

func (c *Client) Commit(ctx context.Context, params Params) (*Committed, error) {
	body, err := c.post(ctx, c.baseUrl+commitPath, map[string]interface{}{"gp": params})
	if err != nil {
		return nil, fmt.Errorf("failed to commit map parameters: %w", err)
	}

	committed := &Committed{Raw: body}
	if err := json.Unmarshal(body, committed); err != nil {
		return nil, fmt.Errorf("failed to parse commit response: %w", err)
	}
	if committed.Alpha == "" {
		return nil, errors.New("commit response has no alpha")
	}

	slog.Debug("map parameters committed", "alpha", committed.Alpha)
	return committed, nil
}

// Generate returns the map json for a commitment.
func (c *Client) Generate(ctx context.Context, committed *Committed) (json.RawMessage, error) {
	body, err := c.post(ctx, c.baseUrl+generatePath, generateRequest(committed))
	if err != nil {
		return nil, fmt.Errorf("failed to generate map: %w", err)
	}
	if !json.Valid(body) {
		return nil, errors.New("generate response is not json")
	}
	return body, nil
}

// GenerateSvg returns an svg render of the committed map.
func (c *Client) GenerateSvg(ctx context.Context, committed *Committed) ([]byte, error) {
	body, err := c.post(ctx, c.baseUrl+generatePath+"?svg=true", generateRequest(committed))
	if err != nil {
		return nil, fmt.Errorf("failed to render map: %w", err)
	}
	return body, nil
}

func generateRequest(committed *Committed) map[string]string {
	return map[string]string{
		"public_key": committed.PublicKey,
		"alpha":      committed.Alpha,
		"beta":       committed.Beta,
		"pi":         committed.Pi,
	}
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
