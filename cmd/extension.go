package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
)

// Environment variables passed to extensions. They are also read by
// config.Load, so an extension sees the same settings as coins.
const (
	EnvDataDir  = "COINS_DATA_DIR"
	EnvCurrency = "COINS_CURRENCY"
	EnvVerbose  = "COINS_VERBOSE"
)

// extensionEnv returns the environment of an extension: the current one plus
// the global flags that were set.
func extensionEnv() []string {
	env := os.Environ()
	if *dataDir != "" {
		env = append(env, EnvDataDir+"="+*dataDir)
	}
	if *currency != "" {
		env = append(env, EnvCurrency+"="+*currency)
	}
	if *Verbose {
		env = append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	}
	return env
}

// RunExtension attempts to find and execute an external coins-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(log zerolog.Logger, subcommand string, args []string) (bool, int) {
	name := "coins-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("extension", name).Msg("extension not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	log.Debug().Str("extension", lp).Strs("args", args).Msg("running extension")
	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
