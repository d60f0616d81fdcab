package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/crmarques/restrecord/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, cli.Dependencies{})
	stop()
	os.Exit(cli.ExitCodeForError(err))
}
