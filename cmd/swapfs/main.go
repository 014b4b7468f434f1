package main

import (
	"os"

	"github.com/artisanexperiences/swapfs/internal/cli"
	"github.com/artisanexperiences/swapfs/internal/config"
	"github.com/artisanexperiences/swapfs/internal/fs"
)

// These variables are set at build time via -ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = date
	if err := cli.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch fs.CodeOf(err) {
	case fs.CodeNotFound:
		return config.ExitPathNotFound
	case fs.CodeAlreadyExists, fs.CodeNotEmpty, fs.CodeWrongKind:
		return config.ExitTransferFailed
	default:
		return config.ExitGeneralError
	}
}
