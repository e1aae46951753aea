package coinfolio

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// cryptoQuotes are the quote currencies that are coins themselves, unknown to go-money.
var cryptoQuotes = []string{"BTC", "ETH"}

// ValidateCurrency checks that code is a known quote currency, fiat
// (ISO 4217) or one of the crypto quotes, and returns it lower-cased as the
// market data API expects it.
func ValidateCurrency(code string) (string, error) {
	up := strings.ToUpper(strings.TrimSpace(code))
	if up == "" {
		return "", fmt.Errorf("%w: empty currency", ErrMissingCurrency)
	}
	for _, c := range cryptoQuotes {
		if up == c {
			return strings.ToLower(up), nil
		}
	}
	if money.GetCurrency(up) == nil {
		return "", fmt.Errorf("unknown currency %q", code)
	}
	return strings.ToLower(up), nil
}
