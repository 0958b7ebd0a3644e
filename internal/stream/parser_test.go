package stream

import (
	"testing"

	"trading_go/internal/domain"
)

func TestParseFrame(t *testing.T) {
	t.Run("decodes quote records", func(t *testing.T) {
		frame := []byte(`[
			{"ev":"XQ","pair":"BTC-USD","x":6,"bp":50000.5,"bs":1.2,"ap":50001.0,"as":0.8,"t":1700000000000},
			{"ev":"XQ","pair":"ETH-USD","x":2,"bp":3000.0,"bs":5.0,"ap":3001.0,"as":4.0,"t":1700000000001}
		]`)

		quotes, skipped, err := ParseFrame(frame)
		if err != nil {
			t.Fatalf("ParseFrame failed: %v", err)
		}
		if skipped != 0 {
			t.Errorf("expected no skipped records, got %d", skipped)
		}
		if len(quotes) != 2 {
			t.Fatalf("expected 2 quotes, got %d", len(quotes))
		}
		if quotes[0].Exchange != domain.ExchangeBitfinex {
			t.Errorf("expected BITFINEX for x=6, got %s", quotes[0].Exchange)
		}
		if quotes[1].Exchange != domain.ExchangeKraken {
			t.Errorf("expected KRAKEN for x=2, got %s", quotes[1].Exchange)
		}
		if quotes[0].BidPrice.String() != "50000.5" {
			t.Errorf("bid price mismatch: %s", quotes[0].BidPrice)
		}
	})

	t.Run("status events without exchange id are ignored", func(t *testing.T) {
		frame := []byte(`[{"ev":"status","message":"connected"}]`)

		quotes, skipped, err := ParseFrame(frame)
		if err != nil {
			t.Fatalf("ParseFrame failed: %v", err)
		}
		if len(quotes) != 0 || skipped != 0 {
			t.Errorf("status event should be silently ignored, got %d quotes, %d skipped", len(quotes), skipped)
		}
	})

	t.Run("unrecognized exchange id drops the record only", func(t *testing.T) {
		frame := []byte(`[
			{"ev":"XQ","pair":"BTC-USD","x":99,"bp":1,"bs":1,"ap":1,"as":1,"t":1},
			{"ev":"XQ","pair":"BTC-USD","x":23,"bp":1,"bs":1,"ap":1,"as":1,"t":1}
		]`)

		quotes, skipped, err := ParseFrame(frame)
		if err != nil {
			t.Fatalf("ParseFrame failed: %v", err)
		}
		if len(quotes) != 1 || quotes[0].Exchange != domain.ExchangeBitstamp {
			t.Fatalf("expected only the Bitstamp quote, got %v", quotes)
		}
		if skipped != 1 {
			t.Errorf("expected 1 skipped record, got %d", skipped)
		}
	})

	t.Run("incomplete record drops without aborting batch", func(t *testing.T) {
		frame := []byte(`[
			{"ev":"XQ","pair":"BTC-USD","x":6,"bp":1,"bs":1,"t":1},
			{"ev":"XQ","pair":"ETH-USD","x":6,"bp":2,"bs":2,"ap":2,"as":2,"t":2}
		]`)

		quotes, skipped, err := ParseFrame(frame)
		if err != nil {
			t.Fatalf("ParseFrame failed: %v", err)
		}
		if len(quotes) != 1 || quotes[0].Pair != "ETH-USD" {
			t.Fatalf("expected only the complete record, got %v", quotes)
		}
		if skipped != 1 {
			t.Errorf("expected 1 skipped record, got %d", skipped)
		}
	})

	t.Run("non-array frame is fatal", func(t *testing.T) {
		if _, _, err := ParseFrame([]byte(`{"ev":"XQ"}`)); err == nil {
			t.Error("expected error for non-array frame")
		}
		if _, _, err := ParseFrame([]byte(`not json`)); err == nil {
			t.Error("expected error for malformed frame")
		}
	})
}
