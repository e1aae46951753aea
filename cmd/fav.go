package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/logger"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

type favCmd struct{}

func (*favCmd) Name() string     { return "fav" }
func (*favCmd) Synopsis() string { return "manage the favorite coins" }
func (*favCmd) Usage() string {
	return `coins fav add|rm|toggle <id>...
coins fav list

  Adds coins to the favorites, removes them, toggles them, or lists the
  favorites with their current price.
`
}
func (*favCmd) SetFlags(f *flag.FlagSet) {}

func (*favCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: fav requires an action: add, rm, toggle or list.")
		return subcommands.ExitUsageError
	}
	action, ids := f.Arg(0), f.Args()[1:]
	if action != "list" && len(ids) == 0 {
		fmt.Fprintf(os.Stderr, "Error: fav %s requires at least one coin id.\n", action)
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

	switch action {
	case "list":
		coins, err := newClient(ctx, s).Markets(ctx, s.Currency, 1)
		if err != nil {
			// favorites are still listed, without prices.
			lg := logger.FromContext(ctx)
			lg.Warn().Err(err).Msg("prices are unavailable")
		}
		printMarkdown(s, renderer.Favorites(favorites, coins, s.Currency))
		return subcommands.ExitSuccess
	case "add", "rm", "toggle":
		changed := editFavorites(favorites, action, ids)
		if err := coinfolio.SaveFavorites(s.DataDir, favorites); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving favorites: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%d favorites changed, %d favorites\n", changed, favorites.Len())
		return subcommands.ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown fav action %q, want add, rm, toggle or list.\n", action)
		return subcommands.ExitUsageError
	}
}

// editFavorites adds, removes or toggles ids and returns how many changed.
func editFavorites(favorites *coinfolio.Favorites, action string, ids []string) int {
	changed := 0
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		switch action {
		case "add":
			if favorites.Add(id) {
				changed++
			}
		case "rm":
			if favorites.Remove(id) {
				changed++
			}
		case "toggle":
			favorites.Toggle(id)
			changed++
		}
	}
	return changed
}
