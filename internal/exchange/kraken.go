package exchange

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"trading_go/internal/domain"
	"trading_go/internal/symbols"
)

// krakenResponse mirrors Kraken's AssetPairs envelope: results are keyed
// by internal pair ids, and a non-empty error array voids the payload.
type krakenResponse struct {
	Error  []string                  `json:"error"`
	Result map[string]krakenPairInfo `json:"result"`
}

type krakenPairInfo struct {
	WSName string `json:"wsname"` // "BASE/QUOTE", empty for dark pools
}

// KrakenFetcher retrieves Kraken's tradable pair list.
type KrakenFetcher struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewKrakenFetcher creates a fetcher for the given endpoint;
// an empty url selects the public API.
func NewKrakenFetcher(url string) *KrakenFetcher {
	if url == "" {
		url = KrakenPairsURL
	}
	return &KrakenFetcher{
		url:        url,
		httpClient: newHTTPClient(),
		logger:     slog.Default().With("module", "kraken_fetcher"),
	}
}

// Exchange returns the venue this fetcher serves.
func (f *KrakenFetcher) Exchange() domain.Exchange {
	return domain.ExchangeKraken
}

// Fetch downloads and normalizes the full tradable pair set.
func (f *KrakenFetcher) Fetch(ctx context.Context) (domain.PairSet, error) {
	body, err := getJSON(ctx, f.httpClient, f.Exchange(), f.url)
	if err != nil {
		return nil, err
	}

	var resp krakenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewExternalDependencyError(f.Exchange(), "decode response", err)
	}
	if len(resp.Error) > 0 {
		return nil, domain.NewExternalDependencyError(f.Exchange(),
			"provider error: "+strings.Join(resp.Error, "; "), nil)
	}

	raw := make([]string, 0, len(resp.Result))
	for _, info := range resp.Result {
		if info.WSName == "" {
			continue
		}
		raw = append(raw, info.WSName)
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
