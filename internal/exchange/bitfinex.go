package exchange

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"trading_go/internal/domain"
	"trading_go/internal/symbols"
)

// BitfinexFetcher retrieves Bitfinex's tradable pair list. The endpoint
// returns a nested array of compact symbol strings, e.g. [["BTCUSD",...]].
type BitfinexFetcher struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewBitfinexFetcher creates a fetcher for the given endpoint;
// an empty url selects the public API.
func NewBitfinexFetcher(url string) *BitfinexFetcher {
	if url == "" {
		url = BitfinexPairsURL
	}
	return &BitfinexFetcher{
		url:        url,
		httpClient: newHTTPClient(),
		logger:     slog.Default().With("module", "bitfinex_fetcher"),
	}
}

// Exchange returns the venue this fetcher serves.
func (f *BitfinexFetcher) Exchange() domain.Exchange {
	return domain.ExchangeBitfinex
}

// Fetch downloads and normalizes the full tradable pair set.
func (f *BitfinexFetcher) Fetch(ctx context.Context) (domain.PairSet, error) {
	body, err := getJSON(ctx, f.httpClient, f.Exchange(), f.url)
	if err != nil {
		return nil, err
	}

	var lists [][]string
	if err := json.Unmarshal(body, &lists); err != nil {
		return nil, domain.NewExternalDependencyError(f.Exchange(), "decode response", err)
	}

	var raw []string
	for _, list := range lists {
		raw = append(raw, list...)
	}

	pairs, dropped, err := symbols.NormalizeAll(raw)
	if err != nil {
		return nil, domain.NewExternalDependencyError(f.Exchange(), "no parseable symbols", err)
	}
	if len(dropped) > 0 {
		f.logger.Debug("dropped unparseable symbols", slog.Int("count", len(dropped)))
	}
	return pairs, nil
}
