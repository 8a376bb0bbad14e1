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
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `chaintask` (no args) and `chaintask list`.
type ListCmd struct {
	header bool
}

// SetHeader enables the contract header (for testing).
func (c *ListCmd) SetHeader(on bool) {
	c.header = on
}

func (c *ListCmd) Name() string          { return "list" }
func (c *ListCmd) Aliases() []string     { return []string{"ls"} }
func (c *ListCmd) Synopsis() string      { return "List tasks" }
func (c *ListCmd) Usage() string         { return "chaintask list [--header]" }
func (c *ListCmd) NeedsConnection() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.header, "header", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
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

	ws.resolve(ctx)
	return printList(cfg, ws, c.header, out)
}

// printList prints the controller's list after a fetch. A failed fetch has
// already been reported by the controller.
func printList(cfg *config.Config, ws *workspace, header bool, out io.Writer) int {
	state := ws.ctrl.State()
	if !state.Loaded {
		return exitcode.BackendError
	}

	if header {
		output.FormatContractHeader(out, state)
	}
	if len(state.Tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}
	output.FormatTasks(out, state.Tasks)
	return exitcode.Success
}
