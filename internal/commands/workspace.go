package commands

import (
	"context"
	"fmt"

	"chaintask/internal/config"
	"chaintask/internal/contract"
	"chaintask/internal/notify"
	"chaintask/internal/session"
	"chaintask/internal/tasks"
	"chaintask/internal/tasksync"
)

// workspace is the controller wiring shared by the chain commands.
type workspace struct {
	ctrl   *tasksync.Controller
	ref    *contract.Ref
	handle *contract.Handle
	record *session.Record
}

// openWorkspace loads the deployments registry and the stored session and
// builds a controller watching the contract ref. Nothing is fetched until
// resolve is called.
func openWorkspace(cfg *config.Config, deps *Deps, n notify.Notifier) (*workspace, error) {
	registry, err := contract.LoadRegistry(cfg.DeploymentsPath())
	if err != nil {
		return nil, err
	}

	record, err := session.NewFileStore(cfg.SessionPath()).Load()
	if err != nil {
		return nil, err
	}

	var conn contract.Connection
	var decoder contract.Decoder
	if deps != nil && deps.Backend != nil {
		conn, decoder = deps.Backend, deps.Backend
	}

	ctrl := tasksync.New(tasks.NewClient(decoder, n), n, deps.logger())
	ctrl.SetSession(session.FromRecord(record, conn))

	ref := contract.NewRef()
	ctrl.Watch(ref)

	return &workspace{
		ctrl:   ctrl,
		ref:    ref,
		handle: registry.Resolve(cfg.ContractID, cfg.Network),
		record: record,
	}, nil
}

// resolve publishes the registry handle, which triggers the first fetch.
func (w *workspace) resolve(ctx context.Context) {
	w.ref.Set(ctx, w.handle)
}

func (w *workspace) account() string {
	if w.record == nil {
		return ""
	}
	return w.record.Account
}

func (w *workspace) signer() string {
	if w.record == nil {
		return ""
	}
	return w.record.Signer
}

func notDeployed(cfg *config.Config) string {
	return fmt.Sprintf("error: contract not deployed: %s on %s", cfg.ContractID, cfg.Network)
}
