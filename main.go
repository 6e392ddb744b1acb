package main

import (
	"context"
	"log"
	"log/slog"
	"opi/cmd"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/pterm/pterm"
)

func main() {
	if runtime.GOOS != "linux" {
		log.Fatal("opi is only supported on Linux")
	}

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	slog.SetDefault(logger)

	// Cancelling the context stops running installers; the root filesystem
	// is still restored before the process exits.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := cmd.Cli()
	if err := cli.RunContext(ctx, os.Args); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}
