package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketQuote is a single bid/ask observation for a pair on one exchange.
// Pair keeps the raw string form as received from the feed. Immutable once
// constructed.
type MarketQuote struct {
	Pair      string          `json:"pair"`     // Raw feed symbol (e.g. "BTC-USD")
	Exchange  Exchange        `json:"exchange"` // Originating venue
	BidPrice  decimal.Decimal `json:"bid_price"`
	BidSize   decimal.Decimal `json:"bid_size"`
	AskPrice  decimal.Decimal `json:"ask_price"`
	AskSize   decimal.Decimal `json:"ask_size"`
	Timestamp int64           `json:"timestamp"` // Source time, epoch millis
}

// CachedQuote is a MarketQuote plus the local receipt time. A newer quote
// for the same (pair, exchange) replaces it unconditionally.
type CachedQuote struct {
	Quote      MarketQuote `json:"quote"`
	ReceivedAt time.Time   `json:"received_at"`
}

// MarketDataSnapshot is a point-in-time copy of the quote cache,
// keyed by raw pair, then by exchange. Read-only projection.
type MarketDataSnapshot struct {
	TakenAt time.Time                            `json:"taken_at"`
	Quotes  map[string]map[Exchange]CachedQuote `json:"quotes"`
}

// CrossTradedPairsSnapshot is the persisted result of one reconciliation
// run: pairs tradable on at least two exchanges at fetch time, sorted by
// canonical key. Immutable once saved; each refresh replaces the previous
// snapshot wholesale.
type CrossTradedPairsSnapshot struct {
	ComputedAt time.Time      `json:"computedAt"`
	Pairs      []CurrencyPair `json:"pairs"`
}

// PairKeys returns the canonical keys of the snapshot's pairs, in order.
func (s CrossTradedPairsSnapshot) PairKeys() []string {
	keys := make([]string, len(s.Pairs))
	for i, p := range s.Pairs {
		keys[i] = p.Key()
	}
	return keys
}
