package coinfolio

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/coinfolio/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// TxType is the direction of a trade.
type TxType string

// Transaction types.
const (
	Buy  TxType = "buy"
	Sell TxType = "sell"
)

// ParseTxType parses "buy" or "sell".
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(s); t {
	case Buy, Sell:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q, want %q or %q", s, Buy, Sell)
	}
}

// Transaction is one recorded trade of a single coin.
//
// Coin name and symbol are copied when the transaction is created, they are
// not derived again later.
type Transaction struct {
	ID         string    // ID is unique and time-ordered, assigned on creation.
	CoinID     string    // CoinID is the market data identifier of the coin, like "bitcoin".
	CoinName   string    // CoinName is the display name, like "Bitcoin".
	CoinSymbol string    // CoinSymbol is the ticker, like "btc".
	Amount     Quantity  // Amount is the quantity of coins traded.
	BuyPrice   Money     // BuyPrice is the unit price at trade time.
	Date       date.Date // Date is the day of the trade.
	Type       TxType    // Type is either Buy or Sell.
	Memo       string    // Memo is an optional note.
}

// NewTransaction creates a new Transaction with a fresh ID.
func NewTransaction(day date.Date, typ TxType, coinID, coinName, coinSymbol string, amount Quantity, price Money) Transaction {
	return Transaction{
		ID:         newID(),
		CoinID:     coinID,
		CoinName:   coinName,
		CoinSymbol: coinSymbol,
		Amount:     amount,
		BuyPrice:   price,
		Date:       day,
		Type:       typ,
	}
}

// newID returns a new, time-ordered, unique transaction identifier.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}

// Errors returned by Transaction.Validate.
var (
	ErrMissingCoin     = errors.New("coin identifier is missing")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrMissingCurrency = errors.New("price currency is missing")
)

// Validate checks the transaction fields. This is the only place where
// transactions are checked: the valuation functions assume valid transactions.
func (t Transaction) Validate() error {
	var errs error
	if t.CoinID == "" {
		errs = errors.Join(errs, ErrMissingCoin)
	}
	if !t.Amount.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("%w, got %s", ErrInvalidAmount, t.Amount))
	}
	if t.BuyPrice.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("%w, got %s", ErrInvalidPrice, t.BuyPrice))
	}
	if t.BuyPrice.Currency() == "" {
		errs = errors.Join(errs, ErrMissingCurrency)
	}
	if _, err := ParseTxType(string(t.Type)); err != nil {
		errs = errors.Join(errs, fmt.Errorf("%w: %w", ErrInvalidType, err))
	}
	return errs
}

// Cost returns the total value of the trade: amount times price.
func (t Transaction) Cost() Money { return t.BuyPrice.Mul(t.Amount) }

// Equal reports whether t and o hold the same values.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID && t.CoinID == o.CoinID && t.CoinName == o.CoinName && t.CoinSymbol == o.CoinSymbol &&
		t.Amount.Equal(o.Amount) && t.BuyPrice.Equal(o.BuyPrice) && t.Date == o.Date && t.Type == o.Type && t.Memo == o.Memo
}

// coinRef is the persisted form of the coin fields.
type coinRef struct {
	ID     string `json:"coin"`
	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.EmbedFrom(coinRef{ID: t.CoinID, Name: t.CoinName, Symbol: t.CoinSymbol})
	w.Append("amount", t.Amount)
	w.Append("price", t.BuyPrice.value)
	w.Optional("currency", t.BuyPrice.Currency())
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
// It handles the custom structure where price and currency are separate fields.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		coinRef
		ID       string          `json:"id"`
		Date     date.Date       `json:"date"`
		Type     TxType          `json:"type"`
		Amount   Quantity        `json:"amount"`
		Price    decimal.Decimal `json:"price"`
		Currency string          `json:"currency"`
		Memo     string          `json:"memo"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Transaction{
		ID:         temp.ID,
		CoinID:     temp.coinRef.ID,
		CoinName:   temp.Name,
		CoinSymbol: temp.Symbol,
		Amount:     temp.Amount,
		BuyPrice:   M(temp.Price, temp.Currency),
		Date:       temp.Date,
		Type:       temp.Type,
		Memo:       temp.Memo,
	}
	return nil
}
