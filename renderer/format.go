package renderer

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"try": "₺",
	"btc": "₿",
	"eth": "Ξ",
}

// CurrencySymbol returns the symbol of a quote currency, "$" when unknown.
func CurrencySymbol(currency string) string {
	if s, ok := currencySymbols[strings.ToLower(currency)]; ok {
		return s
	}
	return "$"
}

// Price formats a unit price, abbreviating millions and thousands. Prices
// below 1 keep 6 decimals.
func Price(v float64, currency string) string {
	sym := CurrencySymbol(currency)
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%s%.2fM", sym, v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%s%.2fK", sym, v/1e3)
	case v >= 1:
		return fmt.Sprintf("%s%.2f", sym, v)
	default:
		return fmt.Sprintf("%s%.6f", sym, v)
	}
}

// Percentage formats a percentage with its sign and two decimals.
func Percentage(p float64) string {
	if p >= 0 {
		return fmt.Sprintf("+%.2f%%", p)
	}
	return fmt.Sprintf("%.2f%%", p)
}

// MarketCap formats a large amount with T, B or M suffixes.
func MarketCap(v float64, currency string) string {
	sym := CurrencySymbol(currency)
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%s%.2fT", sym, v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%s%.2fB", sym, v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%s%.2fM", sym, v/1e6)
	default:
		return fmt.Sprintf("%s%.2f", sym, v)
	}
}

// Volume formats a traded volume like a market cap.
func Volume(v float64, currency string) string { return MarketCap(v, currency) }

// Number formats v with thousand separators and at most two decimals.
func Number(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Date formats t like "Jan 2, 2006".
func Date(t time.Time) string { return t.Format("Jan 2, 2006") }

// escape makes s safe inside a markdown table cell.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
