package kitties

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
)

const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a registry response is read
const maxBodyBytes = 1 << 20

type client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	// BaseURL is the root of the kitty registry, e.g. https://kitties.example/api
	BaseURL string

	HttpClient *http.Client
}

type kittyResponse struct {
	ID    json.Number `json:"id"`
	Genes string      `json:"genes"`
}

// New creates an HTTP backed registry client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, zerr.InvalidArgument("kitty client config is required")
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, zerr.Newf(zerr.CodeInvalidArgument, "kitty registry url %q is invalid", cfg.BaseURL)
	}

	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &client{
		baseURL:    base,
		httpClient: httpClient,
	}, nil
}

func (c *client) GetKitty(ctx context.Context, id uint64) (*Kitty, error) {
	endpoint := fmt.Sprintf("%s/kitties/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, zerr.OracleUnavailable(err, "failed to build kitty request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.OracleUnavailable(err, "kitty registry unreachable").
			WithMeta("kitty_id", id)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, zerr.OracleUnavailable(nil, fmt.Sprintf("kitty registry returned %d", resp.StatusCode)).
			WithMeta("kitty_id", id).
			WithMeta("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, zerr.OracleUnavailable(err, "failed to read kitty response").
			WithMeta("kitty_id", id)
	}

	var payload kittyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, zerr.OracleUnavailable(err, "malformed kitty response").
			WithMeta("kitty_id", id)
	}

	genes, ok := new(big.Int).SetString(strings.TrimSpace(payload.Genes), 10)
	if !ok || genes.Sign() < 0 {
		return nil, zerr.OracleUnavailable(nil, fmt.Sprintf("unparsable genes %q", payload.Genes)).
			WithMeta("kitty_id", id)
	}

	kittyID := id
	if payload.ID != "" {
		if parsed, err := strconv.ParseUint(payload.ID.String(), 10, 64); err == nil {
			kittyID = parsed
		}
	}

	return &Kitty{ID: kittyID, Genes: genes}, nil
}
