package stream

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"trading_go/internal/domain"
)

// quoteRecord is one element of an inbound frame. Pointer fields
// distinguish absent keys from zero values: a record without an exchange
// id is a status event, a recognized record missing any required numeric
// field is dropped on its own.
type quoteRecord struct {
	Event      string   `json:"ev"`
	Pair       string   `json:"pair"`
	ExchangeID *int     `json:"x"`
	BidPrice   *float64 `json:"bp"`
	BidSize    *float64 `json:"bs"`
	AskPrice   *float64 `json:"ap"`
	AskSize    *float64 `json:"as"`
	Timestamp  *int64   `json:"t"`
}

func (r quoteRecord) complete() bool {
	return r.Pair != "" && r.BidPrice != nil && r.BidSize != nil &&
		r.AskPrice != nil && r.AskSize != nil && r.Timestamp != nil
}

// ParseFrame decodes a text frame into market quotes. The frame must be a
// JSON array; anything else is a fatal parse error. Individual records are
// skipped without error: status events (no exchange id), unrecognized
// exchange ids, and incomplete quote records. The skipped count is
// returned for observability.
func ParseFrame(frame []byte) ([]domain.MarketQuote, int, error) {
	var records []quoteRecord
	if err := json.Unmarshal(frame, &records); err != nil {
		return nil, 0, fmt.Errorf("malformed frame: %w", err)
	}

	quotes := make([]domain.MarketQuote, 0, len(records))
	skipped := 0
	for _, rec := range records {
		if rec.ExchangeID == nil {
			// Control/status event, not a quote.
			continue
		}
		venue, ok := domain.ExchangeFromWireID(*rec.ExchangeID)
		if !ok {
			skipped++
			continue
		}
		if !rec.complete() {
			skipped++
			continue
		}
		quotes = append(quotes, domain.MarketQuote{
			Pair:      rec.Pair,
			Exchange:  venue,
			BidPrice:  decimal.NewFromFloat(*rec.BidPrice),
			BidSize:   decimal.NewFromFloat(*rec.BidSize),
			AskPrice:  decimal.NewFromFloat(*rec.AskPrice),
			AskSize:   decimal.NewFromFloat(*rec.AskSize),
			Timestamp: *rec.Timestamp,
		})
	}
	return quotes, skipped, nil
}
