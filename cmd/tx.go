package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/coingecko"
	"github.com/etnz/coinfolio/date"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

// coinInfo is what a transaction copies from the market data.
type coinInfo struct {
	Name, Symbol string
	Price        float64
	Priced       bool // false when the market data has no price.
}

// lookupCoin resolves a coin from the first markets page, or from its detail
// for coins beyond it.
func lookupCoin(ctx context.Context, client *coingecko.Client, id, currency string) (coinInfo, error) {
	coins, err := client.Markets(ctx, currency, 1)
	if err != nil {
		return coinInfo{}, err
	}
	if c, ok := coingecko.Find(coins, id); ok {
		p, ok := c.Price()
		return coinInfo{Name: c.Name, Symbol: c.Symbol, Price: p, Priced: ok}, nil
	}
	d, err := client.Coin(ctx, id)
	if err != nil {
		return coinInfo{}, err
	}
	p, ok := d.MarketData.CurrentPrice[currency]
	return coinInfo{Name: d.Name, Symbol: d.Symbol, Price: p, Priced: ok}, nil
}

// matchID returns the id of the only transaction whose id is ref, or ends
// with ref, like the short ids of the log.
func matchID(txs []coinfolio.Transaction, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("missing transaction id")
	}
	var found []string
	for _, tx := range txs {
		if tx.ID == ref {
			return tx.ID, nil
		}
		if strings.HasSuffix(tx.ID, ref) {
			found = append(found, tx.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %q", coinfolio.ErrTransactionNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("ambiguous transaction id %q matches %d transactions", ref, len(found))
	}
}

// txFlags are the fields of a transaction on the command line.
type txFlags struct {
	coin   string
	amount string
	price  string
	typ    string
	date   string
	memo   string
}

func (t *txFlags) SetFlags(f *flag.FlagSet, typ string) {
	f.StringVar(&t.coin, "coin", "", "Coin id, like bitcoin")
	f.StringVar(&t.amount, "amount", "", "Quantity of coins traded")
	f.StringVar(&t.price, "price", "", "Unit price in the quote currency. Defaults to the current price")
	f.StringVar(&t.typ, "type", typ, "Transaction type: buy or sell")
	f.StringVar(&t.date, "d", "", "Date of the trade (YYYY-MM-DD). Defaults to today")
	f.StringVar(&t.memo, "m", "", "Optional memo")
}

// apply sets the fields of tx from the flags that were set on f. Coin name
// and symbol are resolved when the coin changes and the price is the
// current price when the coin changes without a price.
func (t *txFlags) apply(ctx context.Context, f *flag.FlagSet, client *coingecko.Client, currency string, tx coinfolio.Transaction) (coinfolio.Transaction, error) {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var err error
	if set["type"] || tx.Type == "" {
		if tx.Type, err = coinfolio.ParseTxType(t.typ); err != nil {
			return tx, err
		}
	}
	if set["amount"] {
		if tx.Amount, err = coinfolio.ParseQuantity(t.amount); err != nil {
			return tx, fmt.Errorf("invalid amount: %w", err)
		}
	}
	if set["d"] {
		if tx.Date, err = date.Parse(t.date); err != nil {
			return tx, err
		}
	}
	if set["m"] {
		tx.Memo = t.memo
	}
	if set["price"] {
		if tx.BuyPrice, err = coinfolio.ParseMoney(t.price, currency); err != nil {
			return tx, fmt.Errorf("invalid price: %w", err)
		}
	}
	if set["coin"] {
		tx.CoinID = strings.ToLower(strings.TrimSpace(t.coin))
		info, err := lookupCoin(ctx, client, tx.CoinID, currency)
		if err != nil {
			return tx, fmt.Errorf("cannot find coin %q: %w", tx.CoinID, err)
		}
		tx.CoinName, tx.CoinSymbol = info.Name, info.Symbol
		if !set["price"] {
			if !info.Priced {
				return tx, fmt.Errorf("coin %q has no current price, set one with -price", tx.CoinID)
			}
			tx.BuyPrice = coinfolio.M(info.Price, currency)
		}
	}
	return tx, nil
}

type addCmd struct {
	txFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a buy or a sell" }
func (*addCmd) Usage() string {
	return `coins add -coin <id> -amount <q> [-price <p>] [-type buy|sell] [-d <date>] [-m <memo>]

  Records a transaction. The coin name and symbol are taken from the market
  data, and the price defaults to the current price.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.txFlags.SetFlags(f, string(coinfolio.Buy)) }

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.coin == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: add requires -coin and -amount.")
		return subcommands.ExitUsageError
	}
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	store, err := openStore(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := c.apply(ctx, f, newClient(ctx, s), s.Currency, coinfolio.Transaction{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, err = store.Append(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %s of %s %s at %s (%s) to %s\n", tx.Type, tx.Amount, tx.CoinSymbol, tx.BuyPrice, tx.ID, store.Path())
	return subcommands.ExitSuccess
}

type editCmd struct {
	txFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change the fields of a transaction" }
func (*editCmd) Usage() string {
	return `coins edit [-coin <id>] [-amount <q>] [-price <p>] [-type buy|sell] [-d <date>] [-m <memo>] <id>

  Changes only the fields given as flags. The transaction keeps its id and
  its position in the log. The id can be the short id shown by the log.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) { c.txFlags.SetFlags(f, string(coinfolio.Buy)) }

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: edit requires exactly one transaction id.")
		return subcommands.ExitUsageError
	}
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	store, err := openStore(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	id, err := matchID(store.Transactions(), f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, err := store.Get(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err = c.apply(ctx, f, newClient(ctx, s), s.Currency, tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Update(id, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %s\n", id)
	return subcommands.ExitSuccess
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a transaction" }
func (*rmCmd) Usage() string {
	return `coins rm <id>

  Deletes a transaction. The id can be the short id shown by the log.
`
}
func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: rm requires exactly one transaction id.")
		return subcommands.ExitUsageError
	}
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	store, err := openStore(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	id, err := matchID(store.Transactions(), f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Remove(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %s\n", id)
	return subcommands.ExitSuccess
}

type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete all transactions" }
func (*clearCmd) Usage() string {
	return `coins clear -y

  Deletes all the transactions of the portfolio.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Confirm the deletion")
}

func (c *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: clear deletes all transactions, confirm with -y.")
		return subcommands.ExitUsageError
	}
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	store, err := openStore(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	n := store.Len()
	if err := store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %d transactions\n", n)
	return subcommands.ExitSuccess
}

type logCmd struct {
	coin string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list the transactions" }
func (*logCmd) Usage() string {
	return `coins log [-coin <id>]

  Lists the transactions in the order they were recorded.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.coin, "coin", "", "Only list the transactions of this coin")
}

func (c *logCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	store, err := openStore(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	txs := store.Transactions()
	if c.coin != "" {
		txs = nil
		for tx := range store.Coin(strings.ToLower(c.coin)) {
			txs = append(txs, tx)
		}
	}
	printMarkdown(s, renderer.Transactions(txs, s.Currency))
	return subcommands.ExitSuccess
}
