package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/taskio/internal/client/cli"
	"github.com/dmitrijs2005/taskio/internal/client/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)

}
