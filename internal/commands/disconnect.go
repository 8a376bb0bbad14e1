package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"chaintask/internal/config"
	"chaintask/internal/exitcode"
	"chaintask/internal/session"
)

func init() {
	Register(&DisconnectCmd{})
}

// DisconnectCmd implements the disconnect command.
type DisconnectCmd struct{}

func (c *DisconnectCmd) Name() string          { return "disconnect" }
func (c *DisconnectCmd) Aliases() []string     { return []string{"logout"} }
func (c *DisconnectCmd) Synopsis() string      { return "Forget the stored wallet account" }
func (c *DisconnectCmd) Usage() string         { return "chaintask disconnect [common flags]" }
func (c *DisconnectCmd) NeedsConnection() bool { return false }

func (c *DisconnectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DisconnectCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	store := session.NewFileStore(cfg.SessionPath())
	if !store.Exists() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not connected")
		}
		return exitcode.Success
	}

	if err := store.Remove(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove session: %v\n", err)
		return exitcode.WalletError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
