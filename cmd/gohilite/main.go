// Package main is the entry point for the gohilite CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gohilite/internal/cli"
	"github.com/yaklabco/gohilite/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Sentinel errors carry an exit code and were already reported.
		switch {
		case errors.Is(err, cli.ErrRunFailures):
			return cli.ExitRunErrors
		case errors.Is(err, cli.ErrStrictFallback):
			return cli.ExitStrictFallback
		case errors.Is(err, cli.ErrGrammarInvalid):
			return cli.ExitGrammarError
		}

		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
		return cli.ExitRunErrors
	}

	return cli.ExitSuccess
}
