package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio/config"
	"github.com/google/subcommands"
)

type currencyCmd struct{}

func (*currencyCmd) Name() string     { return "currency" }
func (*currencyCmd) Synopsis() string { return "show or change the quote currency" }
func (*currencyCmd) Usage() string {
	return `coins currency [<code>]

  Shows the quote currency, or saves a new one, like usd, eur, try or btc.
`
}
func (*currencyCmd) SetFlags(f *flag.FlagSet) {}

func (*currencyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	switch f.NArg() {
	case 0:
		fmt.Println(s.Currency)
		return subcommands.ExitSuccess
	case 1:
	default:
		fmt.Fprintln(os.Stderr, "Error: currency takes at most one currency code.")
		return subcommands.ExitUsageError
	}

	s.Currency = f.Arg(0)
	if err := s.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := config.Save(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving currency: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Currency set to %s\n", s.Currency)
	return subcommands.ExitSuccess
}

type themeCmd struct{}

func (*themeCmd) Name() string     { return "theme" }
func (*themeCmd) Synopsis() string { return "show or change the terminal theme" }
func (*themeCmd) Usage() string {
	return `coins theme [dark|light]

  Shows the theme used to display reports, or saves a new one.
`
}
func (*themeCmd) SetFlags(f *flag.FlagSet) {}

func (*themeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	switch f.NArg() {
	case 0:
		fmt.Println(s.Theme)
		return subcommands.ExitSuccess
	case 1:
	default:
		fmt.Fprintln(os.Stderr, "Error: theme takes at most one theme.")
		return subcommands.ExitUsageError
	}

	s.Theme = f.Arg(0)
	if err := s.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := config.Save(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving theme: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Theme set to %s\n", s.Theme)
	return subcommands.ExitSuccess
}
