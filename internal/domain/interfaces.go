package domain

import (
	"context"
)

// SnapshotRepository is the durable store for the cross-traded-pairs
// snapshot. Save replaces the previous snapshot wholesale; Latest returns
// (nil, nil) when nothing has been saved yet.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot CrossTradedPairsSnapshot) error
	Latest(ctx context.Context) (*CrossTradedPairsSnapshot, error)
}

// QuoteStore is the durable sink for individual market quotes.
type QuoteStore interface {
	Insert(ctx context.Context, quote MarketQuote) error
}

// PairFetcher retrieves one exchange's full list of tradable pairs.
type PairFetcher interface {
	Exchange() Exchange
	Fetch(ctx context.Context) (PairSet, error)
}
