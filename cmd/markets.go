package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/coingecko"
	"github.com/etnz/coinfolio/logger"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

type marketsCmd struct {
	query string
	sort  string
	desc  bool
	fav   bool
	page  int
}

func (*marketsCmd) Name() string     { return "markets" }
func (*marketsCmd) Synopsis() string { return "list coins by market cap with their prices" }
func (*marketsCmd) Usage() string {
	return `coins markets [-q <term>] [-sort <key>] [-desc] [-fav] [-page <n>]

  Lists a page of 100 coins, in decreasing market cap order by default,
  below the global market figures.
`
}

func (c *marketsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Only show coins whose name or symbol contains this term")
	f.StringVar(&c.sort, "sort", coingecko.ByRank, "Sort key: "+strings.Join(coingecko.SortKeys, ", "))
	f.BoolVar(&c.desc, "desc", false, "Sort in decreasing order")
	f.BoolVar(&c.fav, "fav", false, "Only show favorite coins")
	f.IntVar(&c.page, "page", 1, "Page of the market list, starting at 1")
}

func (c *marketsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	favorites, err := coinfolio.LoadFavorites(s.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading favorites: %v\n", err)
		return subcommands.ExitFailure
	}

	client := newClient(ctx, s)
	coins, err := client.Markets(ctx, s.Currency, c.page)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching markets: %v\n", err)
		return subcommands.ExitFailure
	}
	hot := coingecko.Hot(coins, coingecko.HotThreshold)

	coins = coingecko.Filter(coins, c.query)
	if c.fav {
		coins = coingecko.OnlyFavorites(coins, favorites)
	}
	if err := coingecko.SortCoins(coins, c.sort, c.desc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var md strings.Builder
	if g, err := client.Global(ctx); err != nil {
		lg := logger.FromContext(ctx)
		lg.Warn().Err(err).Msg("global market figures are unavailable")
	} else {
		md.WriteString(renderer.GlobalHeader(g, s.Currency, hot))
		md.WriteString("\n")
	}
	md.WriteString(renderer.Markets(coins, s.Currency, favorites))
	printMarkdown(s, md.String())
	return subcommands.ExitSuccess
}

type coinCmd struct{}

func (*coinCmd) Name() string     { return "coin" }
func (*coinCmd) Synopsis() string { return "show the detail of a coin" }
func (*coinCmd) Usage() string {
	return `coins coin <id>

  Shows the market data, supply and description of a coin, like "bitcoin".
`
}
func (*coinCmd) SetFlags(f *flag.FlagSet) {}

func (*coinCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: coin requires exactly one coin id.")
		return subcommands.ExitUsageError
	}
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	favorites, err := coinfolio.LoadFavorites(s.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading favorites: %v\n", err)
		return subcommands.ExitFailure
	}

	id := strings.ToLower(f.Arg(0))
	d, err := newClient(ctx, s).Coin(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching coin %q: %v\n", id, err)
		return subcommands.ExitFailure
	}
	printMarkdown(s, renderer.CoinDetail(d, s.Currency, favorites.Has(d.ID)))
	return subcommands.ExitSuccess
}

// chartDays are the ranges offered by the chart command.
var chartDays = []int{1, 7, 30, 365}

type chartCmd struct {
	days int
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "show the price history of a coin" }
func (*chartCmd) Usage() string {
	return `coins chart [-days 1|7|30|365] <id>

  Shows the price history of a coin with its minimum, maximum and change
  over the range.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 7, "Range of the history in days: 1, 7, 30 or 365")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: chart requires exactly one coin id.")
		return subcommands.ExitUsageError
	}
	if !slices.Contains(chartDays, c.days) {
		fmt.Fprintf(os.Stderr, "Error: invalid -days %d, want one of %v\n", c.days, chartDays)
		return subcommands.ExitUsageError
	}
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	id := strings.ToLower(f.Arg(0))
	chart, err := newClient(ctx, s).Chart(ctx, id, c.days, s.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching chart of %q: %v\n", id, err)
		return subcommands.ExitFailure
	}
	printMarkdown(s, renderer.Chart(chart))
	return subcommands.ExitSuccess
}

type globalCmd struct{}

func (*globalCmd) Name() string     { return "global" }
func (*globalCmd) Synopsis() string { return "show the global market figures" }
func (*globalCmd) Usage() string {
	return `coins global

  Shows the total market cap and volume, the dominance of bitcoin and ether
  and the number of hot coins.
`
}
func (*globalCmd) SetFlags(f *flag.FlagSet) {}

func (*globalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	client := newClient(ctx, s)
	g, err := client.Global(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching global market: %v\n", err)
		return subcommands.ExitFailure
	}
	hot := 0
	if coins, err := client.Markets(ctx, s.Currency, 1); err != nil {
		lg := logger.FromContext(ctx)
		lg.Warn().Err(err).Msg("cannot count hot coins")
	} else {
		hot = coingecko.Hot(coins, coingecko.HotThreshold)
	}
	printMarkdown(s, renderer.GlobalHeader(g, s.Currency, hot))
	return subcommands.ExitSuccess
}

type trendingCmd struct{}

func (*trendingCmd) Name() string     { return "trending" }
func (*trendingCmd) Synopsis() string { return "list the most searched coins" }
func (*trendingCmd) Usage() string {
	return `coins trending

  Lists the coins most searched for in the last 24 hours.
`
}
func (*trendingCmd) SetFlags(f *flag.FlagSet) {}

func (*trendingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	coins, err := newClient(ctx, s).Trending(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching trending coins: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(s, renderer.Trending(coins))
	return subcommands.ExitSuccess
}
