package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	method string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the coins held and their profit" }
func (*holdingsCmd) Usage() string {
	return `coins holdings [-method additive|average|fifo]

  Displays the amount held of each coin, its average buy price, current
  value and profit.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", coinfolio.Additive.String(), "Cost basis method: additive, average or fifo")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	method, err := coinfolio.ParseCostBasisMethod(c.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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
	txs := store.Transactions()
	if err := checkCurrency(txs, s.Currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	holdings := coinfolio.NewHoldingsWithMethod(txs, fetchPrices(ctx, s), method)
	printMarkdown(s, renderer.Holdings(holdings, s.Currency, method))
	return subcommands.ExitSuccess
}

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	html string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio value, holdings and allocation" }
func (*summaryCmd) Usage() string {
	return `coins summary [-html <file>]

  Displays the total value, invested amount and profit of the portfolio,
  then its holdings and allocation. With -html the report is saved as an
  HTML page instead.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.html, "html", "", "Save the report as an HTML page in this file")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := checkCurrency(txs, s.Currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := summaryMarkdown(txs, fetchPrices(ctx, s), s.Currency)
	if c.html == "" {
		printMarkdown(s, md)
		return subcommands.ExitSuccess
	}
	if err := exportHTML(c.html, "Portfolio summary", md); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting summary: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Summary saved to %s\n", c.html)
	return subcommands.ExitSuccess
}

// summaryMarkdown renders the summary report of the transactions.
func summaryMarkdown(txs []coinfolio.Transaction, prices coinfolio.PriceOracle, currency string) string {
	holdings := coinfolio.NewHoldings(txs, prices)
	var b strings.Builder
	b.WriteString(renderer.PortfolioSummary(coinfolio.SumHoldings(holdings), currency, len(holdings), len(txs)))
	b.WriteString("\n")
	b.WriteString(renderer.Holdings(holdings, currency, coinfolio.Additive))
	b.WriteString("\n")
	b.WriteString(renderer.Allocation(coinfolio.NewAllocation(holdings), currency))
	return b.String()
}
