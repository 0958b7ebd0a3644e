// Package exchange implements the per-venue tradable-pair fetchers used by
// the cross-traded-pairs reconciliation workflow.
package exchange

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"trading_go/internal/domain"
)

// Default public endpoints. Each fetcher accepts an override for tests.
const (
	BitfinexPairsURL = "https://api-pub.bitfinex.com/v2/conf/pub:list:pair:exchange"
	BitstampPairsURL = "https://www.bitstamp.net/api/v2/trading-pairs-info/"
	KrakenPairsURL   = "https://api.kraken.com/0/public/AssetPairs"
)

const requestTimeout = 10 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:    10,
			IdleConnTimeout: 30 * time.Second,
		},
	}
}

// getJSON performs a GET against a provider endpoint and returns the raw
// body. Any transport or status failure comes back as an
// ExternalDependencyError tagged with the venue.
func getJSON(ctx context.Context, client *http.Client, venue domain.Exchange, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewExternalDependencyError(venue, "build request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.NewExternalDependencyError(venue, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewExternalDependencyError(venue,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewExternalDependencyError(venue, "read response", err)
	}
	return body, nil
}
