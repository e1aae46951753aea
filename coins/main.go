// Command coins browses the crypto markets and values a personal portfolio.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/coinfolio/cmd"
	"github.com/etnz/coinfolio/logger"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("coins")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	ctx := cmd.WithLogger(context.Background())

	if sub := flag.Arg(0); sub != "" && !isBuiltin(sub) && !cmd.IsRegistered(sub) {
		if found, code := cmd.RunExtension(logger.FromContext(ctx), sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(ctx)))
}

func isBuiltin(name string) bool {
	return name == "help" || name == "flags" || name == "commands"
}
