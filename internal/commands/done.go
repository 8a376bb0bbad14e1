package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"chaintask/internal/config"
	"chaintask/internal/exitcode"
	"chaintask/internal/notify"
	"chaintask/internal/tasksync"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string          { return "done" }
func (c *DoneCmd) Aliases() []string     { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string      { return "Mark a task completed" }
func (c *DoneCmd) Usage() string         { return "chaintask done <n>" }
func (c *DoneCmd) NeedsConnection() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ws, err := openWorkspace(cfg, deps, notify.NewWriter(out, errOut, cfg.Quiet))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if ws.handle == nil {
		fmt.Fprintln(errOut, notDeployed(cfg))
		return exitcode.UserError
	}

	// Numbers refer to the list as it is now on chain.
	ws.resolve(ctx)
	if !ws.ctrl.State().Loaded {
		return exitcode.BackendError
	}

	switch ws.ctrl.Complete(ctx, num) {
	case tasksync.Invalid:
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return exitcode.UserError
	case tasksync.Refused:
		return exitcode.WalletError
	case tasksync.Failed:
		return exitcode.BackendError
	}

	return printList(cfg, ws, false, out)
}
