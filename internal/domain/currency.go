package domain

import (
	"strings"
)

// PairKeySeparator joins base and quote in the canonical pair key.
const PairKeySeparator = "-"

// CurrencySymbol is a validated currency code (e.g. "BTC").
// The zero value is invalid; construct via NewCurrencySymbol.
type CurrencySymbol struct {
	value string
}

// NewCurrencySymbol validates and normalizes a raw currency code.
// Input is trimmed and upper-cased; empty input is rejected.
func NewCurrencySymbol(raw string) (CurrencySymbol, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return CurrencySymbol{}, NewValidationError("currency symbol must not be empty")
	}
	return CurrencySymbol{value: v}, nil
}

// String returns the normalized code.
func (s CurrencySymbol) String() string {
	return s.value
}

// IsZero reports whether the symbol was never constructed via validation.
func (s CurrencySymbol) IsZero() bool {
	return s.value == ""
}

// CurrencyPair is an ordered (base, quote) pair of validated symbols.
type CurrencyPair struct {
	base  CurrencySymbol
	quote CurrencySymbol
}

// NewCurrencyPair builds a pair from two validated symbols.
func NewCurrencyPair(base, quote CurrencySymbol) (CurrencyPair, error) {
	if base.IsZero() || quote.IsZero() {
		return CurrencyPair{}, NewValidationError("currency pair requires validated base and quote symbols")
	}
	return CurrencyPair{base: base, quote: quote}, nil
}

// NewCurrencyPairFromCodes validates both raw codes and builds a pair.
func NewCurrencyPairFromCodes(base, quote string) (CurrencyPair, error) {
	b, err := NewCurrencySymbol(base)
	if err != nil {
		return CurrencyPair{}, err
	}
	q, err := NewCurrencySymbol(quote)
	if err != nil {
		return CurrencyPair{}, err
	}
	return NewCurrencyPair(b, q)
}

// Base returns the base currency.
func (p CurrencyPair) Base() CurrencySymbol { return p.base }

// Quote returns the quote currency.
func (p CurrencyPair) Quote() CurrencySymbol { return p.quote }

// Key returns the canonical storage key, e.g. "BTC-USD".
// ParsePairKey(p.Key()) always yields p back.
func (p CurrencyPair) Key() string {
	return p.base.value + PairKeySeparator + p.quote.value
}

// String is an alias for Key.
func (p CurrencyPair) String() string { return p.Key() }

// ParsePairKey decodes a canonical "BASE-QUOTE" key back into a pair.
func ParsePairKey(key string) (CurrencyPair, error) {
	parts := strings.Split(key, PairKeySeparator)
	if len(parts) != 2 {
		return CurrencyPair{}, NewValidationError("malformed pair key: " + key)
	}
	return NewCurrencyPairFromCodes(parts[0], parts[1])
}

// PairSet is a deduplicated set of currency pairs.
type PairSet map[CurrencyPair]struct{}

// Add inserts a pair into the set.
func (s PairSet) Add(p CurrencyPair) {
	s[p] = struct{}{}
}

// Contains reports set membership.
func (s PairSet) Contains(p CurrencyPair) bool {
	_, ok := s[p]
	return ok
}
