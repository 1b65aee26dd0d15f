// Package main runs the gildedrose inventory CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/gildedrose/internal/cli"
	"github.com/roach88/gildedrose/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}

	if err := cli.NewRootCommandWithConfig(cfg).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
