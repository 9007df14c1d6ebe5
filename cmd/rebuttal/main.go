// Package main provides the entry point for the rebuttal CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/rebuttal/internal/cli"
)

// Build information, set via ldflags at release time.
var (
	version = "dev"     //nolint:gochecknoglobals // set by ldflags
	commit  = "none"    //nolint:gochecknoglobals // set by ldflags
	date    = "unknown" //nolint:gochecknoglobals // set by ldflags
)

func main() {
	ctx := context.Background()

	err := cli.Execute(ctx, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	cli.CloseLogFile()

	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
