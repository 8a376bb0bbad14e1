package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"chaintask/internal/tasksync"
)

// Options configures Run.
type Options struct {
	// Controller must have been created with Notifier.
	Controller *tasksync.Controller
	Notifier   *Notifier

	// Resolve publishes the contract handle and so starts the first fetch.
	Resolve func(context.Context)

	// Account is shown in the header.
	Account string

	Input  io.Reader
	Output io.Writer
}

// Run starts the interactive list and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Controller == nil || opts.Resolve == nil {
		return errors.New("tui: controller and resolve are required")
	}

	var progOpts []tea.ProgramOption
	progOpts = append(progOpts, tea.WithContext(ctx), tea.WithAltScreen())
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	var p *tea.Program
	send := func(msg tea.Msg) { p.Send(msg) }

	p = tea.NewProgram(newModel(ctx, opts, send), progOpts...)

	if opts.Notifier != nil {
		opts.Notifier.Attach(send)
	}
	opts.Controller.Subscribe(func(s tasksync.State) {
		send(stateMsg(s))
	})

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
