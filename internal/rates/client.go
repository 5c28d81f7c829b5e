// Package rates fetches and applies currency conversion rates.
//
// Rates are quoted from a base currency (the room default) to each target:
// rate = target units per one base unit. An amount entered in a target
// currency is divided by the rate to get the room-currency amount.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Frankfurter API endpoint.
const DefaultBaseURL = "https://api.frankfurter.app"

// Client fetches conversion rates from a Frankfurter-compatible API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a rates client. An empty baseURL selects the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// latestResponse mirrors the API's /latest payload.
type latestResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Latest returns the current rates from base to each target currency.
func (c *Client) Latest(ctx context.Context, base string, targets []string) (map[string]float64, error) {
	if len(targets) == 0 {
		return map[string]float64{}, nil
	}

	endpoint := fmt.Sprintf("%s/latest?from=%s&to=%s",
		c.baseURL, url.QueryEscape(base), url.QueryEscape(strings.Join(targets, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates API returned status %d for base %s", resp.StatusCode, base)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}

	return payload.Rates, nil
}
