package main

import (
	"os"

	"land.dev/land/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)

	// Help counts as a usage error: print usage, exit 1
	if cli.HandleHelp(os.Args, rootCmd) {
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
