package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteRecord is the persisted form of a MarketQuote (insert-only sink).
type QuoteRecord struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Pair       string          `gorm:"index" json:"pair"`
	Exchange   string          `gorm:"index" json:"exchange"`
	BidPrice   decimal.Decimal `gorm:"type:numeric" json:"bid_price"`
	BidSize    decimal.Decimal `gorm:"type:numeric" json:"bid_size"`
	AskPrice   decimal.Decimal `gorm:"type:numeric" json:"ask_price"`
	AskSize    decimal.Decimal `gorm:"type:numeric" json:"ask_size"`
	SourceTime int64           `json:"source_time"` // Feed timestamp, epoch millis
	CreatedAt  time.Time       `json:"created_at"`
}

// PairSnapshotRecord is the persisted cross-traded-pairs snapshot.
// A single row (fixed key) holds the latest snapshot; each refresh
// overwrites it wholesale.
type PairSnapshotRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ComputedAt time.Time `json:"computed_at"`
	Pairs      string    `json:"pairs"` // JSON array of canonical "BASE-QUOTE" keys
	UpdatedAt  time.Time `json:"updated_at"`
}
