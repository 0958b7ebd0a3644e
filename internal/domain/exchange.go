package domain

import "fmt"

// Exchange identifies one of the supported venues.
type Exchange string

const (
	ExchangeBitfinex Exchange = "BITFINEX"
	ExchangeBitstamp Exchange = "BITSTAMP"
	ExchangeKraken   Exchange = "KRAKEN"
)

// Wire identifiers used by the streaming feed to tag quote records.
const (
	wireIDBitfinex = 6
	wireIDBitstamp = 23
	wireIDKraken   = 2
)

// Exchanges lists all supported venues in a stable order.
func Exchanges() []Exchange {
	return []Exchange{ExchangeBitfinex, ExchangeBitstamp, ExchangeKraken}
}

// WireID returns the numeric identifier the streaming feed uses for the venue.
func (e Exchange) WireID() (int, error) {
	switch e {
	case ExchangeBitfinex:
		return wireIDBitfinex, nil
	case ExchangeBitstamp:
		return wireIDBitstamp, nil
	case ExchangeKraken:
		return wireIDKraken, nil
	}
	return 0, fmt.Errorf("unknown exchange: %s", e)
}

// ExchangeFromWireID maps a streaming feed identifier back to a venue.
// The second result is false for unrecognized identifiers.
func ExchangeFromWireID(id int) (Exchange, bool) {
	switch id {
	case wireIDBitfinex:
		return ExchangeBitfinex, true
	case wireIDBitstamp:
		return ExchangeBitstamp, true
	case wireIDKraken:
		return ExchangeKraken, true
	}
	return "", false
}
