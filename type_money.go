package coinfolio

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// cryptoFraction is the number of digits kept when formatting amounts quoted
// in a currency unknown to go-money (btc, eth...).
const cryptoFraction = 8

// Money represents a monetary value in a quote currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string          // upper case currency code, "" for no currency.
}

// M returns the Money for value in currency. Currency codes are case
// insensitive ("usd" and "USD" are the same).
func M[T number](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: strings.ToUpper(currency)}
}

// ParseMoney parses a decimal string like "30000.5" into a Money in currency.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return M(d, currency), nil
}

// String returns the string representation of the money value, using the
// currency conventions when go-money knows the currency.
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		s := m.value.StringFixed(cryptoFraction)
		if m.cur == "" {
			return s
		}
		return s + " " + m.cur
	}
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// Simple wrapper around decimal.Decimal

func (m Money) Currency() string                { return m.cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Float64() float64                { return m.value.InexactFloat64() }
func (m Money) StringFixed(places int32) string { return m.value.StringFixed(places) }

// Div divides m by q. Dividing by a zero quantity returns a zero Money.
func (m Money) Div(q Quantity) Money {
	if q.IsZero() {
		return Money{cur: m.cur}
	}
	return Money{value: m.value.Div(q.value), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// sameCurrency reports whether m and n can be added: same currency, or one
// of them without currency.
func sameCurrency(m, n Money) bool { return m.cur == "" || n.cur == "" || m.cur == n.cur }

// makes the "" currency totally weak.
//
// Mixing two different currencies is a programming error: callers check
// sameCurrency first.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// percentOf returns part as a percentage of whole, and exactly 0 when whole
// is zero.
func percentOf(part, whole Money) Percent {
	if whole.IsZero() {
		return 0
	}
	return Percent(part.value.Div(whole.value).Mul(hundred).InexactFloat64())
}

var hundred = decimal.NewFromInt(100)

// MarshalJSON implements the json.Marshaler interface. Money is persisted
// with all its digits.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value)
	return w.MarshalJSON()
}
