// Package cmd implements the coins command line application: market data
// browsing and a personal crypto portfolio.
package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/coingecko"
	"github.com/etnz/coinfolio/config"
	"github.com/etnz/coinfolio/logger"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataDir  = flag.String("data-dir", "", "Directory of the transactions, favorites and settings. Defaults to $COINS_DATA_DIR or ~/.coinfolio")
	currency = flag.String("currency", "", "Quote currency, overrides the saved setting")
	Verbose  = flag.Bool("verbose", false, "Log requests and cache hits on stderr")
)

// group is a set of subcommands listed together in the help.
type group struct {
	name     string
	commands []subcommands.Command
}

// groups returns the subcommands of the application.
func groups() []group {
	return []group{
		{"market", []subcommands.Command{&marketsCmd{}, &coinCmd{}, &chartCmd{}, &globalCmd{}, &trendingCmd{}}},
		{"portfolio", []subcommands.Command{&addCmd{}, &rmCmd{}, &editCmd{}, &clearCmd{}, &logCmd{}, &holdingsCmd{}, &summaryCmd{}}},
		{"favorites", []subcommands.Command{&favCmd{}}},
		{"settings", []subcommands.Command{&currencyCmd{}, &themeCmd{}}},
		{"help", []subcommands.Command{&topicCmd{}}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups() {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// IsRegistered reports whether name is one of the application subcommands.
func IsRegistered(name string) bool {
	for _, g := range groups() {
		if slices.ContainsFunc(g.commands, func(c subcommands.Command) bool { return c.Name() == name }) {
			return true
		}
	}
	return false
}

// WithLogger returns ctx carrying the application logger. It is verbose when
// the -verbose flag or the verbose setting is set.
func WithLogger(ctx context.Context) context.Context {
	verbose := *Verbose
	if s, err := loadSettings(); err == nil {
		verbose = s.Verbose
	}
	return logger.WithContext(ctx, logger.New(verbose))
}

// loadSettings loads the saved settings and applies the global flags.
func loadSettings() (config.Settings, error) {
	s, err := config.Load(*dataDir)
	if err != nil {
		return s, err
	}
	if *currency != "" {
		s.Currency = *currency
	}
	if *Verbose {
		s.Verbose = true
	}
	err = s.Validate()
	return s, err
}

// openStore opens the transactions file of the data directory.
func openStore(s config.Settings) (*coinfolio.FileStore, error) {
	return coinfolio.OpenFileStore(s.DataDir)
}

// clientOptions are applied last to every market data client.
var clientOptions []coingecko.Option

// newClient returns a market data client logging through the context logger.
func newClient(ctx context.Context, s config.Settings) *coingecko.Client {
	log := logger.WithFields(logger.FromContext(ctx), map[string]any{"currency": s.Currency})
	opts := []coingecko.Option{coingecko.WithLogger(log)}
	if s.APIKey != "" {
		opts = append(opts, coingecko.WithAPIKey(s.APIKey))
	}
	return coingecko.New(append(opts, clientOptions...)...)
}

// fetchPrices returns the current prices. Without a connection the portfolio
// is still shown, with every coin unpriced.
func fetchPrices(ctx context.Context, s config.Settings) coinfolio.PriceOracle {
	prices, err := newClient(ctx, s).Prices(ctx, s.Currency)
	if err != nil {
		lg := logger.FromContext(ctx)
		lg.Warn().Err(err).Msg("prices are unavailable")
		return nil
	}
	return prices
}

// checkCurrency fails if a transaction is priced in another currency than
// the quote currency. Amounts are never converted.
func checkCurrency(txs []coinfolio.Transaction, quote string) error {
	for _, tx := range txs {
		if c := tx.BuyPrice.Currency(); c != "" && !strings.EqualFold(c, quote) {
			return fmt.Errorf("transaction %s is priced in %s, not in %s: switch back with `coins currency %s`", tx.ID, c, strings.ToUpper(quote), strings.ToLower(c))
		}
	}
	return nil
}

// printMarkdown renders md on the terminal in the theme of the settings.
func printMarkdown(s config.Settings, md string) {
	out, err := renderTerminal(md, s.Theme)
	if err != nil {
		// raw markdown is still readable.
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// renderTerminal styles md for a terminal.
func renderTerminal(md, theme string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

const htmlPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
%s</body>
</html>
`

// toHTML converts md to a standalone HTML page.
func toHTML(title, md string) ([]byte, error) {
	var body bytes.Buffer
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := gm.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("could not convert to HTML: %w", err)
	}
	return fmt.Appendf(nil, htmlPage, title, body.String()), nil
}

// exportHTML writes md as an HTML page in file.
func exportHTML(file, title, md string) error {
	data, err := toHTML(title, md)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(file, data, 0o644)
}
