package exchange

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"trading_go/internal/domain"
	"trading_go/internal/symbols"
)

// bitstampPairInfo is one entry of Bitstamp's trading-pairs-info response.
type bitstampPairInfo struct {
	Name string `json:"name"` // e.g. "BTC/USD"
}

// BitstampFetcher retrieves Bitstamp's tradable pair list.
type BitstampFetcher struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewBitstampFetcher creates a fetcher for the given endpoint;
// an empty url selects the public API.
func NewBitstampFetcher(url string) *BitstampFetcher {
	if url == "" {
		url = BitstampPairsURL
	}
	return &BitstampFetcher{
		url:        url,
		httpClient: newHTTPClient(),
		logger:     slog.Default().With("module", "bitstamp_fetcher"),
	}
}

// Exchange returns the venue this fetcher serves.
func (f *BitstampFetcher) Exchange() domain.Exchange {
	return domain.ExchangeBitstamp
}

// Fetch downloads and normalizes the full tradable pair set.
func (f *BitstampFetcher) Fetch(ctx context.Context) (domain.PairSet, error) {
	body, err := getJSON(ctx, f.httpClient, f.Exchange(), f.url)
	if err != nil {
		return nil, err
	}

	var infos []bitstampPairInfo
	if err := json.Unmarshal(body, &infos); err != nil {
		return nil, domain.NewExternalDependencyError(f.Exchange(), "decode response", err)
	}

	raw := make([]string, 0, len(infos))
	for _, info := range infos {
		raw = append(raw, info.Name)
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
