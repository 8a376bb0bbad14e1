// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"chaintask/internal/contract"
)

// ErrUnknownMethod is returned for calls the fake contract does not implement.
var ErrUnknownMethod = errors.New("unknown method")

// FakeTask is a task as stored by the fake contract.
type FakeTask struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// FakeConnection is an in-memory task management contract. It implements
// both contract.Connection and contract.Decoder.
type FakeConnection struct {
	mu    sync.Mutex
	tasks []FakeTask

	queryCalls    int
	transactCalls int
	lastTx        contract.Tx

	// Error injection for testing
	QueryErr    error
	TransactErr error

	// DecodeError makes getTasks decode with IsError set and this message.
	DecodeError string

	// RawOutput replaces the getTasks output when non-nil.
	RawOutput json.RawMessage

	// Hooks run at the start of a call, outside the fake's lock.
	OnQuery    func(ctx context.Context)
	OnTransact func(ctx context.Context, tx contract.Tx)
}

// NewFakeConnection creates a FakeConnection holding the given tasks.
func NewFakeConnection(tasks ...FakeTask) *FakeConnection {
	return &FakeConnection{tasks: tasks}
}

// AddTask appends a task directly to the fake contract storage.
func (f *FakeConnection) AddTask(description string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, FakeTask{Description: description, Completed: completed})
}

// Tasks returns a copy of the stored tasks.
func (f *FakeConnection) Tasks() []FakeTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]FakeTask, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// QueryCalls returns the number of Query calls.
func (f *FakeConnection) QueryCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queryCalls
}

// TransactCalls returns the number of Transact calls.
func (f *FakeConnection) TransactCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.transactCalls
}

// LastTx returns the last submitted transaction.
func (f *FakeConnection) LastTx() contract.Tx {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastTx
}

type envelope struct {
	Output        json.RawMessage `json:"output"`
	IsError       bool            `json:"isError"`
	DecodedOutput string          `json:"decodedOutput"`
}

// Query implements contract.Connection.
func (f *FakeConnection) Query(ctx context.Context, caller string, h *contract.Handle, method string, args ...any) (contract.RawResult, error) {
	if f.OnQuery != nil {
		f.OnQuery(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++

	if f.QueryErr != nil {
		return nil, f.QueryErr
	}
	if method != "getTasks" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}

	var env envelope
	switch {
	case f.DecodeError != "":
		env = envelope{IsError: true, DecodedOutput: f.DecodeError}
	case f.RawOutput != nil:
		env = envelope{Output: f.RawOutput, DecodedOutput: string(f.RawOutput)}
	default:
		tasks := f.tasks
		if tasks == nil {
			tasks = []FakeTask{}
		}
		out, err := json.Marshal(tasks)
		if err != nil {
			return nil, err
		}
		env = envelope{Output: out, DecodedOutput: string(out)}
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	return contract.RawResult(data), nil
}

// Transact implements contract.Connection.
func (f *FakeConnection) Transact(ctx context.Context, tx contract.Tx) (contract.TxResult, error) {
	if f.OnTransact != nil {
		f.OnTransact(ctx, tx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactCalls++
	f.lastTx = tx

	if f.TransactErr != nil {
		return contract.TxResult{}, f.TransactErr
	}

	switch tx.Method {
	case "createTask":
		if len(tx.Args) != 1 {
			return contract.TxResult{}, fmt.Errorf("createTask: expected 1 argument, got %d", len(tx.Args))
		}
		desc, ok := tx.Args[0].(string)
		if !ok {
			return contract.TxResult{}, fmt.Errorf("createTask: description must be a string")
		}
		f.tasks = append(f.tasks, FakeTask{Description: desc})
	case "completeTask":
		if len(tx.Args) != 1 {
			return contract.TxResult{}, fmt.Errorf("completeTask: expected 1 argument, got %d", len(tx.Args))
		}
		idx, ok := tx.Args[0].(uint16)
		if !ok {
			return contract.TxResult{}, fmt.Errorf("completeTask: index must be uint16")
		}
		// Out of range indexes are ignored, like the contract does.
		if int(idx) < len(f.tasks) {
			f.tasks[idx].Completed = true
		}
	default:
		return contract.TxResult{}, fmt.Errorf("%w: %s", ErrUnknownMethod, tx.Method)
	}

	return contract.TxResult{Hash: fmt.Sprintf("0x%04x", f.transactCalls), Status: "finalized"}, nil
}

// Decode implements contract.Decoder.
func (f *FakeConnection) Decode(raw contract.RawResult, h *contract.Handle, method string) contract.Decoded {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return contract.Decoded{IsError: true, DecodedOutput: err.Error()}
	}
	return contract.Decoded{Output: env.Output, IsError: env.IsError, DecodedOutput: env.DecodedOutput}
}

// TestHandle returns the handle used throughout tests.
func TestHandle() *contract.Handle {
	return &contract.Handle{ID: "taskManagement", Network: "development", Address: "5FakeTaskManagementAddress"}
}
