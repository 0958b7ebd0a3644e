// Package symbols parses heterogeneous exchange symbol strings
// (e.g. "tBTCUSD", "BTC/USD", "btcusdt") into validated currency pairs.
package symbols

import (
	"sort"
	"strings"

	"trading_go/internal/domain"
)

// separators tried in fixed order; the first one producing exactly two
// non-empty parts wins.
var separators = []string{"-", "_", "/", ":"}

// knownQuotes is the fixed list of quote currencies used for suffix
// matching of compact symbols like "BTCUSD".
var knownQuotes = []string{
	"USDT", "USDC", "EURT",
	"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD",
	"TRY", "KRW", "BRL",
	"BTC", "ETH", "XBT", "DAI", "UST", "PAX",
}

// derivativeMarkers are trailing venue markers for perpetual/derivative
// listings, stripped before suffix matching.
var derivativeMarkers = []string{"F0", "T0"}

// quotesBySuffixLength caches knownQuotes sorted longest-first so that
// "USDT" is tried before "USD".
var quotesBySuffixLength = func() []string {
	qs := make([]string, len(knownQuotes))
	copy(qs, knownQuotes)
	sort.SliceStable(qs, func(i, j int) bool {
		return len(qs[i]) > len(qs[j])
	})
	return qs
}()

// Normalize parses one raw exchange symbol into a currency pair.
// Returns a domain.ValidationError when the symbol has no recognizable
// pair structure or either side is not a 3-letter currency code.
func Normalize(raw string) (domain.CurrencyPair, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return domain.CurrencyPair{}, domain.NewValidationError("empty symbol")
	}

	for _, sep := range separators {
		parts := strings.Split(s, sep)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return pairFromParts(parts[0], parts[1])
		}
	}

	// Compact form: strip the "t" disambiguation prefix and any
	// derivative marker, then match against known quote suffixes.
	stripped, hadPrefix := stripTickerPrefix(s)
	stripped = stripDerivativeMarker(stripped)

	pair, err := splitByQuoteSuffix(stripped)
	if err == nil {
		return pair, nil
	}
	if hadPrefix {
		// Symbols like "TRXUSD" start with a real T; retry unstripped.
		if pair, retryErr := splitByQuoteSuffix(stripDerivativeMarker(s)); retryErr == nil {
			return pair, nil
		}
	}
	return domain.CurrencyPair{}, err
}

// NormalizeAll parses a batch of raw symbols best-effort: successes are
// collected into a deduplicated set, individual failures are returned in
// dropped for observability. The batch fails only when nothing parses,
// surfacing the first individual error.
func NormalizeAll(raw []string) (domain.PairSet, []error, error) {
	if len(raw) == 0 {
		return nil, nil, domain.NewValidationError("no symbols to parse")
	}

	set := make(domain.PairSet)
	var dropped []error
	for _, r := range raw {
		pair, err := Normalize(r)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		set.Add(pair)
	}

	if len(set) == 0 {
		return nil, dropped, dropped[0]
	}
	return set, dropped, nil
}

func stripTickerPrefix(s string) (string, bool) {
	if len(s) > 3 && s[0] == 'T' {
		return s[1:], true
	}
	return s, false
}

func stripDerivativeMarker(s string) string {
	for _, m := range derivativeMarkers {
		if len(s) > len(m) && strings.HasSuffix(s, m) {
			return s[:len(s)-len(m)]
		}
	}
	return s
}

func splitByQuoteSuffix(s string) (domain.CurrencyPair, error) {
	for _, quote := range quotesBySuffixLength {
		if len(s) > len(quote) && strings.HasSuffix(s, quote) {
			return pairFromParts(s[:len(s)-len(quote)], quote)
		}
	}
	return domain.CurrencyPair{}, domain.NewValidationError("unrecognized symbol format: " + s)
}

func pairFromParts(base, quote string) (domain.CurrencyPair, error) {
	if !isCurrencyCode(base) || !isCurrencyCode(quote) {
		return domain.CurrencyPair{}, domain.NewValidationError(
			"currency codes must be 3 letters: " + base + "/" + quote)
	}
	return domain.NewCurrencyPairFromCodes(base, quote)
}

// isCurrencyCode reports whether s is exactly 3 alphabetic characters.
func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
