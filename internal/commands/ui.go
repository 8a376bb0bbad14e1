package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"chaintask/internal/config"
	"chaintask/internal/exitcode"
	"chaintask/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the interactive ui command.
type UICmd struct{}

func (c *UICmd) Name() string          { return "ui" }
func (c *UICmd) Aliases() []string     { return []string{"tui"} }
func (c *UICmd) Synopsis() string      { return "Open the interactive task list" }
func (c *UICmd) Usage() string         { return "chaintask ui [common flags]" }
func (c *UICmd) NeedsConnection() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	n := tui.NewNotifier()
	ws, err := openWorkspace(cfg, deps, n)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	err = tui.Run(ctx, tui.Options{
		Controller: ws.ctrl,
		Notifier:   n,
		Resolve:    ws.resolve,
		Account:    ws.account(),
		Input:      os.Stdin,
		Output:     out,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
