package tasks

import (
	"context"
	"fmt"

	"chaintask/internal/contract"
	"chaintask/internal/notify"
	"chaintask/internal/session"
)

// Client performs the task contract calls. The connection and contract
// handle are passed on every call; checking that they are present is up to
// the caller.
type Client struct {
	decoder  contract.Decoder
	notifier notify.Notifier
}

// NewClient creates a Client. Transaction progress is reported to n.
func NewClient(decoder contract.Decoder, n notify.Notifier) *Client {
	if n == nil {
		n = notify.Discard
	}
	return &Client{decoder: decoder, notifier: n}
}

// FetchAll queries the full task list.
func (c *Client) FetchAll(ctx context.Context, conn contract.Connection, h *contract.Handle) (Collection, error) {
	raw, err := conn.Query(ctx, "", h, MethodGetTasks)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", MethodGetTasks, err)
	}
	return DecodeTasks(c.decoder.Decode(raw, h, MethodGetTasks))
}

// AppendTask creates a task and waits for the transaction to be included.
func (c *Client) AppendTask(ctx context.Context, sess session.Session, h *contract.Handle, form AddTaskDescription) error {
	return c.transact(ctx, sess, h, MethodCreateTask, form.Args())
}

// CompleteTask marks the task at the 0-based index as completed.
func (c *Client) CompleteTask(ctx context.Context, sess session.Session, h *contract.Handle, index uint16) error {
	return c.transact(ctx, sess, h, MethodCompleteTask, []any{index})
}

func (c *Client) transact(ctx context.Context, sess session.Session, h *contract.Handle, method string, args []any) error {
	tx := contract.Tx{
		Account: sess.Account,
		Signer:  sess.Signer,
		Handle:  h,
		Method:  method,
		Args:    args,
	}
	if _, err := contract.TransactWithNotify(ctx, sess.Conn, c.notifier, tx); err != nil {
		return &TransactionError{Method: method, Err: err}
	}
	return nil
}
