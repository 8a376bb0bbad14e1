// Package main is the entry point for the chaintask CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chaintask/internal/cli"
	"chaintask/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.GatewayFactory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
