package coinfolio

import "errors"

// PriceOracle gives the current unit price of a coin.
type PriceOracle interface {
	// Price returns the current price of coinID, and false when it is unknown.
	Price(coinID string) (Money, bool)
}

// Prices is a PriceOracle backed by a map of coin identifier to price.
type Prices map[string]Money

// Price implements PriceOracle.
func (p Prices) Price(coinID string) (Money, bool) {
	price, ok := p[coinID]
	return price, ok
}

// lookup is a nil-safe PriceOracle lookup: a nil oracle knows no price.
func lookup(oracle PriceOracle, coinID string) (Money, bool) {
	if oracle == nil {
		return Money{}, false
	}
	return oracle.Price(coinID)
}

// ErrTransactionNotFound is returned when a transaction ID is unknown to a store.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionStore is an ordered collection of transactions.
//
// Transactions are returned in insertion order. Update replaces all the
// fields of a transaction but its ID.
type TransactionStore interface {
	Transactions() []Transaction
	Append(tx Transaction) (Transaction, error)
	Remove(id string) error
	Update(id string, tx Transaction) error
	Clear() error
}
