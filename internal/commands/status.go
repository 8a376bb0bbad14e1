package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"chaintask/internal/config"
	"chaintask/internal/exitcode"
	"chaintask/internal/notify"
	"chaintask/internal/output"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd implements the status command.
type StatusCmd struct{}

func (c *StatusCmd) Name() string          { return "status" }
func (c *StatusCmd) Aliases() []string     { return nil }
func (c *StatusCmd) Synopsis() string      { return "Print contract and wallet status" }
func (c *StatusCmd) Usage() string         { return "chaintask status [common flags]" }
func (c *StatusCmd) NeedsConnection() bool { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	ws, err := openWorkspace(cfg, deps, notify.NewWriter(out, errOut, cfg.Quiet))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ws.resolve(ctx)
	output.FormatStatus(out, ws.ctrl.State(), ws.account(), ws.signer())
	return exitcode.Success
}
