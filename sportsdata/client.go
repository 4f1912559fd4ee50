package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sportsbook/domain/entities"
	"sportsbook/domain/interfaces"

	"github.com/shopspring/decimal"
)

// Client talks to the external sports-data API over HTTP. Calls are bounded by
// the client timeout; failures surface as upstream errors, never retried here.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a sports-data client with a bounded request timeout
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

type fixtureResponse struct {
	ID           int64 `json:"id"`
	HomeGoals    int   `json:"home_goals"`
	AwayGoals    int   `json:"away_goals"`
	IsFinal      bool  `json:"is_final"`
	WageringOpen bool  `json:"wagering_open"`
}

type oddsResponse struct {
	Selections map[string]string `json:"selections"`
}

// GetFixture returns the current snapshot of a fixture
func (c *Client) GetFixture(ctx context.Context, fixtureID int64) (*entities.Fixture, error) {
	url := fmt.Sprintf("%s/fixtures/%d", c.BaseURL, fixtureID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fixture request: %w", err)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: id %d", entities.ErrFixtureNotFound, fixtureID)
	}
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: fixture request returned %d", entities.ErrUpstreamUnavailable, res.StatusCode)
	}

	var out fixtureResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrUpstreamUnavailable, err)
	}

	return &entities.Fixture{
		ID:           out.ID,
		HomeGoals:    out.HomeGoals,
		AwayGoals:    out.AwayGoals,
		IsFinal:      out.IsFinal,
		WageringOpen: out.WageringOpen,
	}, nil
}

// GetOdds returns the multiplier per selection for a fixture and bet type.
// A selection missing from the map is not an error at this layer.
func (c *Client) GetOdds(ctx context.Context, fixtureID int64, betType entities.BetType) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/fixtures/%d/odds/%s", c.BaseURL, fixtureID, betType)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build odds request: %w", err)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		// No market published yet; the caller maps an empty set to its own error
		return map[string]decimal.Decimal{}, nil
	}
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: odds request returned %d", entities.ErrUpstreamUnavailable, res.StatusCode)
	}

	var out oddsResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrUpstreamUnavailable, err)
	}

	multipliers := make(map[string]decimal.Decimal, len(out.Selections))
	for selection, quote := range out.Selections {
		multiplier, err := decimal.NewFromString(quote)
		if err != nil {
			return nil, fmt.Errorf("%w: bad odds quote %q for %s", entities.ErrUpstreamUnavailable, quote, selection)
		}
		multipliers[selection] = multiplier
	}

	return multipliers, nil
}

var (
	_ interfaces.FixtureProvider = (*Client)(nil)
	_ interfaces.OddsProvider    = (*Client)(nil)
)
