package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"chaintask/internal/config"
	"chaintask/internal/exitcode"
	"chaintask/internal/notify"
	"chaintask/internal/tasks"
	"chaintask/internal/tasksync"
)

func init() {
	Register(&AddCmd{})
	Register(&CreateCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string          { return "add" }
func (c *AddCmd) Aliases() []string     { return nil }
func (c *AddCmd) Synopsis() string      { return "Create a task" }
func (c *AddCmd) Usage() string         { return "chaintask add <description...>" }
func (c *AddCmd) NeedsConnection() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, deps, args, out, errOut)
}

// CreateCmd is an alias for AddCmd.
type CreateCmd struct{}

func (c *CreateCmd) Name() string          { return "create" }
func (c *CreateCmd) Aliases() []string     { return nil }
func (c *CreateCmd) Synopsis() string      { return "Create a task (alias for add)" }
func (c *CreateCmd) Usage() string         { return "chaintask create <description...>" }
func (c *CreateCmd) NeedsConnection() bool { return true }

func (c *CreateCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CreateCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, deps, args, out, errOut)
}

// argsForm is the add form filled from the command line.
type argsForm struct {
	description string
}

func (f *argsForm) Value() tasks.AddTaskDescription {
	return tasks.AddTaskDescription{Description: f.description}
}

func (f *argsForm) Reset() { f.description = "" }

// runAdd is the shared implementation for add and create commands.
// The description is sent as typed; an explicit empty argument is allowed.
func runAdd(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	ws, err := openWorkspace(cfg, deps, notify.NewWriter(out, errOut, cfg.Quiet))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ws.resolve(ctx)

	form := &argsForm{description: strings.Join(args, " ")}
	switch ws.ctrl.Submit(ctx, form) {
	case tasksync.Refused:
		return exitcode.WalletError
	case tasksync.Failed:
		return exitcode.BackendError
	}

	return printList(cfg, ws, false, out)
}
