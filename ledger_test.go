package coinfolio

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/coinfolio/date"
)

func TestLedger_AppendKeepsInsertionOrder(t *testing.T) {
	l := NewLedger()
	txs := []Transaction{
		buy("2025-03-01", "bitcoin", 1, 100),
		buy("2025-01-01", "ethereum", 1, 10),
		sell("2025-02-01", "bitcoin", 0.5, 120),
	}
	for _, tx := range txs {
		if _, err := l.Append(tx); err != nil {
			t.Fatalf("Append() unexpected error: %v", err)
		}
	}
	got := l.Transactions()
	if !slices.EqualFunc(got, txs, Transaction.Equal) {
		t.Errorf("Transactions() = %v, want %v", got, txs)
	}
	var n int
	for range l.Coin("bitcoin") {
		n++
	}
	if n != 2 {
		t.Errorf("Coin(bitcoin) yields %d transactions, want 2", n)
	}
}

func TestLedger_AppendQuickFixes(t *testing.T) {
	l := NewLedger()
	tx := Transaction{CoinID: "bitcoin", Amount: Q(1), BuyPrice: USD(10), Type: Buy}
	got, err := l.Append(tx)
	if err != nil {
		t.Fatalf("Append() unexpected error: %v", err)
	}
	if got.ID == "" {
		t.Errorf("Append() did not assign an ID")
	}
	if got.Date != date.Today() {
		t.Errorf("Append().Date = %v, want today %v", got.Date, date.Today())
	}
}

func TestLedger_AppendRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"no coin", Transaction{Amount: Q(1), BuyPrice: USD(1), Type: Buy}, ErrMissingCoin},
		{"zero amount", Transaction{CoinID: "bitcoin", Amount: Q(0), BuyPrice: USD(1), Type: Buy}, ErrInvalidAmount},
		{"negative amount", Transaction{CoinID: "bitcoin", Amount: Q(-1), BuyPrice: USD(1), Type: Buy}, ErrInvalidAmount},
		{"negative price", Transaction{CoinID: "bitcoin", Amount: Q(1), BuyPrice: USD(-1), Type: Buy}, ErrInvalidPrice},
		{"no currency", Transaction{CoinID: "bitcoin", Amount: Q(1), BuyPrice: NO(1), Type: Buy}, ErrMissingCurrency},
		{"bad type", Transaction{CoinID: "bitcoin", Amount: Q(1), BuyPrice: USD(1), Type: "swap"}, ErrInvalidType},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			if _, err := l.Append(tc.tx); !errors.Is(err, tc.want) {
				t.Errorf("Append() error = %v, want %v", err, tc.want)
			}
			if l.Len() != 0 {
				t.Errorf("Len() = %d after a rejected Append, want 0", l.Len())
			}
		})
	}
}

func TestLedger_AppendDuplicateID(t *testing.T) {
	l := NewLedger()
	tx := buy("2025-01-01", "bitcoin", 1, 10)
	if _, err := l.Append(tx); err != nil {
		t.Fatalf("Append() unexpected error: %v", err)
	}
	if _, err := l.Append(tx); err == nil {
		t.Errorf("Append() of a duplicate id expected an error")
	}
}

func TestLedger_RemoveUpdate(t *testing.T) {
	l := NewLedger()
	a, _ := l.Append(buy("2025-01-01", "bitcoin", 1, 100))
	b, _ := l.Append(buy("2025-01-02", "ethereum", 2, 10))
	c, _ := l.Append(buy("2025-01-03", "solana", 3, 1))

	edited := b
	edited.ID = "ignored"
	edited.Amount = Q(5)
	edited.Memo = "fixed amount"
	if err := l.Update(b.ID, edited); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	got, err := l.Get(b.ID)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.ID != b.ID || !got.Amount.Equal(Q(5)) || got.Memo != "fixed amount" {
		t.Errorf("Get() = %+v, want the updated transaction with id %q", got, b.ID)
	}

	if err := l.Remove(a.ID); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}
	ids := []string{}
	for _, tx := range l.Transactions() {
		ids = append(ids, tx.ID)
	}
	if !slices.Equal(ids, []string{b.ID, c.ID}) {
		t.Errorf("ids = %v, want %v", ids, []string{b.ID, c.ID})
	}

	if err := l.Remove(a.ID); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Remove() of a removed id error = %v, want %v", err, ErrTransactionNotFound)
	}
	if err := l.Update("nope", edited); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Update() of an unknown id error = %v, want %v", err, ErrTransactionNotFound)
	}

	if err := l.Clear(); err != nil {
		t.Fatalf("Clear() unexpected error: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear(), want 0", l.Len())
	}
}

func TestLedger_TransactionsIsACopy(t *testing.T) {
	l := NewLedger()
	l.Append(buy("2025-01-01", "bitcoin", 1, 100))
	txs := l.Transactions()
	txs[0].CoinID = "changed"
	if got := l.Transactions()[0].CoinID; got != "bitcoin" {
		t.Errorf("CoinID = %q, want %q", got, "bitcoin")
	}
}
