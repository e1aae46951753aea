package coinfolio

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/etnz/coinfolio/date"
)

// Ledger is an in-memory TransactionStore.
//
// In a Ledger transactions are kept in insertion order, not in chronological
// order. It is safe for concurrent use.
type Ledger struct {
	mu           sync.RWMutex
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Transactions returns a copy of the transactions in insertion order.
func (l *Ledger) Transactions() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.transactions)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.transactions)
}

// Coin returns the transactions of a single coin, in insertion order.
func (l *Ledger) Coin(coinID string) iter.Seq[Transaction] {
	txs := l.Transactions()
	return func(yield func(Transaction) bool) {
		for _, tx := range txs {
			if tx.CoinID == coinID && !yield(tx) {
				return
			}
		}
	}
}

// Get returns the transaction with this id.
func (l *Ledger) Get(id string) (Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := l.index(id)
	if i < 0 {
		return Transaction{}, fmt.Errorf("%w: %q", ErrTransactionNotFound, id)
	}
	return l.transactions[i], nil
}

// Append validates tx and appends it to the ledger.
//
// Quick fixes are applied first: a missing ID is assigned and a missing date
// defaults to today. The stored transaction is returned.
func (l *Ledger) Append(tx Transaction) (Transaction, error) {
	if tx.ID == "" {
		tx.ID = newID()
	}
	if tx.Date.IsZero() {
		tx.Date = date.Today()
	}
	if err := tx.Validate(); err != nil {
		return tx, fmt.Errorf("invalid %s transaction of %q: %w", tx.Type, tx.CoinID, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index(tx.ID) >= 0 {
		return tx, fmt.Errorf("duplicate transaction id %q", tx.ID)
	}
	l.transactions = append(l.transactions, tx)
	return tx, nil
}

// Remove deletes the transaction with this id.
func (l *Ledger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrTransactionNotFound, id)
	}
	l.transactions = slices.Delete(l.transactions, i, i+1)
	return nil
}

// Update replaces all the fields of the transaction with this id by the
// fields of tx. The id and the position in the ledger are preserved.
func (l *Ledger) Update(id string, tx Transaction) error {
	tx.ID = id
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid update of %q: %w", id, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrTransactionNotFound, id)
	}
	l.transactions[i] = tx
	return nil
}

// Clear removes all transactions.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = make([]Transaction, 0)
	return nil
}

// index returns the position of id, or -1. Callers hold the lock.
func (l *Ledger) index(id string) int {
	return slices.IndexFunc(l.transactions, func(tx Transaction) bool { return tx.ID == id })
}
