// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"go.uber.org/zap"

	"chaintask/internal/config"
	"chaintask/internal/contract"
)

// Backend is a chain connection that can also decode its own query results.
type Backend interface {
	contract.Connection
	contract.Decoder
}

// Deps carries the collaborators a command runs against.
type Deps struct {
	// Backend is nil if NeedsConnection() returns false.
	Backend Backend

	// Logger is never nil when built by the dispatcher.
	Logger *zap.Logger
}

func (d *Deps) logger() *zap.Logger {
	if d == nil || d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsConnection returns true if the command talks to the chain.
	// Commands like help, version, connect, disconnect return false.
	NeedsConnection() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// deps.Backend is nil if NeedsConnection() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int
}
