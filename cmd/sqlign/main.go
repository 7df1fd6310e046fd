package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pseudomuto/sqlign/pkg/cmd"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cmd.Run(ctx, &cmd.Version{
		Version:   version,
		Commit:    commit,
		Timestamp: date,
	}, os.Args)
	if err != nil {
		slog.Error("Error running command", "err", err)
		stop()
		os.Exit(1)
	}
}
