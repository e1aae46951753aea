package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// writeExtension installs a shell script as the coins-<name> extension.
func writeExtension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "coins-"+name), []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("cannot write extension: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestExtensionMechanism(t *testing.T) {
	writeExtension(t, "hello", `env > "$1"`)

	oldDir, oldCur, oldVerbose := *dataDir, *currency, *Verbose
	t.Cleanup(func() { *dataDir, *currency, *Verbose = oldDir, oldCur, oldVerbose })
	*dataDir, *currency, *Verbose = "/tmp/random-coins", "xyz", true

	out := filepath.Join(t.TempDir(), "env.txt")
	found, code := RunExtension(zerolog.Nop(), "hello", []string{out})
	if !found || code != 0 {
		t.Fatalf("RunExtension() = %v, %d, want true, 0", found, code)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("extension did not run: %v", err)
	}
	for _, want := range []string{EnvDataDir + "=/tmp/random-coins", EnvCurrency + "=xyz", EnvVerbose + "=true"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("extension environment does not contain %q:\n%s", want, data)
		}
	}
}

func TestExtensionExitCode(t *testing.T) {
	writeExtension(t, "fail", "exit 3\n")
	found, code := RunExtension(zerolog.Nop(), "fail", nil)
	if !found || code != 3 {
		t.Errorf("RunExtension() = %v, %d, want true, 3", found, code)
	}
}

func TestExtensionNotFound(t *testing.T) {
	found, _ := RunExtension(zerolog.Nop(), "does-not-exist-anywhere", nil)
	if found {
		t.Errorf("RunExtension() found a missing extension")
	}
}
