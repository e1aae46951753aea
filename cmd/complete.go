package cmd

import (
	"flag"

	"github.com/etnz/coinfolio/coingecko"
	"github.com/etnz/coinfolio/config"
	"github.com/etnz/coinfolio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes the values of flags with a fixed set of values.
var flagPredictors = map[string]complete.Predictor{
	"sort":     predict.Set(coingecko.SortKeys),
	"method":   predict.Set{"additive", "average", "fifo"},
	"type":     predict.Set{"buy", "sell"},
	"days":     predict.Set{"1", "7", "30", "365"},
	"html":     predict.Files("*.html"),
	"data-dir": predict.Dirs("*"),
}

// argPredictors completes the positional arguments of a subcommand.
var argPredictors = map[string]complete.Predictor{
	"fav":   predict.Set{"add", "rm", "toggle", "list"},
	"theme": predict.Set{config.Dark, config.Light},
	"topic": predict.Set(append(docs.AllTopics(), "*")),
}

// Completion returns the shell completion of the coins command, derived from
// the flags of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(flag.CommandLine),
	}
	for _, g := range groups() {
		for _, c := range g.commands {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: predictFlags(fs)}
			if p, ok := argPredictors[c.Name()]; ok {
				sub.Args = p
			}
			root.Sub[c.Name()] = sub
		}
	}
	return root
}

// predictFlags returns the predictor of each flag of fs.
func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch p, ok := flagPredictors[f.Name]; {
		case ok:
			flags[f.Name] = p
		case isBool(f):
			flags[f.Name] = predict.Nothing
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

// isBool reports whether f takes no value.
func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
