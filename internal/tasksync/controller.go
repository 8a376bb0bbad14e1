// Package tasksync keeps a local view of the contract's task list in step
// with the chain. It decides when the list is queried, tracks the loading
// state of each operation and re-reads the list after every mutation attempt.
package tasksync

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"chaintask/internal/contract"
	"chaintask/internal/notify"
	"chaintask/internal/session"
	"chaintask/internal/tasks"
)

// User-facing messages.
const (
	MsgFetchFailed     = "Error while fetching tasks. Try again..."
	MsgWalletMissing   = "Wallet not connected. Try again..."
	AddressPlaceholder = "Loading…"
)

// Outcome reports what a mutation request did.
type Outcome int

const (
	// Submitted means the transaction was included and the list re-fetched.
	Submitted Outcome = iota

	// Failed means the transaction was attempted but failed. The list was
	// still re-fetched.
	Failed

	// Refused means the session gate failed; nothing was sent.
	Refused

	// Invalid means the request did not address an existing task.
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Submitted:
		return "submitted"
	case Failed:
		return "failed"
	case Refused:
		return "refused"
	case Invalid:
		return "invalid"
	}
	return "unknown"
}

// Store is the remote task store the controller drives.
type Store interface {
	FetchAll(ctx context.Context, conn contract.Connection, h *contract.Handle) (tasks.Collection, error)
	AppendTask(ctx context.Context, sess session.Session, h *contract.Handle, form tasks.AddTaskDescription) error
	CompleteTask(ctx context.Context, sess session.Session, h *contract.Handle, index uint16) error
}

// Form is the add task form. The controller reads its value when a
// submission starts and resets it once the transaction has settled.
type Form interface {
	Value() tasks.AddTaskDescription
	Reset()
}

// Listener receives a state snapshot after every change.
type Listener func(State)

// Controller orchestrates queries and transactions against the task store.
// It is safe for concurrent use. Overlapping fetches are not deduplicated:
// the one that completes last wins.
type Controller struct {
	store    Store
	notifier notify.Notifier
	log      *zap.Logger

	mu              sync.Mutex
	sess            session.Session
	handle          *contract.Handle
	tasks           tasks.Collection
	loaded          bool
	fetchLoading    bool
	createLoading   bool
	completeLoading bool
	listeners       []Listener
}

// New creates a Controller.
func New(store Store, n notify.Notifier, log *zap.Logger) *Controller {
	if n == nil {
		n = notify.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		store:    store,
		notifier: n,
		log:      log,
		tasks:    tasks.Collection{},
	}
}

// Subscribe registers a listener for state changes.
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Watch registers the controller on ref so that every change of the
// resolved contract triggers a fetch.
func (c *Controller) Watch(ref *contract.Ref) {
	ref.Subscribe(c.OnContractChanged)
}

// SetSession replaces the wallet session. It does not trigger a fetch.
func (c *Controller) SetSession(s session.Session) {
	c.update(func() { c.sess = s })
}

// OnContractChanged records the new contract handle and fetches the list.
func (c *Controller) OnContractChanged(ctx context.Context, h *contract.Handle) {
	c.update(func() { c.handle = h })
	c.Refresh(ctx)
}

// Refresh fetches the task list. It does nothing while the contract or the
// connection is absent. On failure the list is cleared and the user notified.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	h, conn := c.handle, c.sess.Conn
	c.mu.Unlock()

	if h == nil || conn == nil {
		return
	}

	c.update(func() { c.fetchLoading = true })

	list, err := c.store.FetchAll(ctx, conn, h)
	if err != nil {
		c.fetchFailed(err)
		c.update(func() {
			c.tasks = tasks.Collection{}
			c.loaded = false
			c.fetchLoading = false
		})
		return
	}

	c.update(func() {
		c.tasks = list
		c.loaded = true
		c.fetchLoading = false
	})
}

func (c *Controller) fetchFailed(err error) {
	var de *tasks.QueryDecodeError
	if errors.As(err, &de) {
		c.log.Error("decode tasks", zap.String("decoded", de.Message), zap.Error(err))
	} else {
		c.log.Error("fetch tasks", zap.Error(err))
	}
	c.notifier.Error(MsgFetchFailed)
}

// Submit creates a task from the form value. When the session gate passes it
// always resets the form and re-fetches the list after the transaction
// settles, whether it succeeded or not. Transaction failures are only logged;
// the transaction mechanism has already told the user.
func (c *Controller) Submit(ctx context.Context, form Form) Outcome {
	value := form.Value()

	sess, h, ok := c.gate()
	if !ok {
		return Refused
	}

	c.update(func() { c.createLoading = true })

	outcome := Submitted
	if err := c.store.AppendTask(ctx, sess, h, value); err != nil {
		c.transactionFailed(err)
		outcome = Failed
	}

	c.update(func() { c.createLoading = false })
	form.Reset()
	c.Refresh(ctx)
	return outcome
}

// Complete marks the task with the 1-based number in the current list as
// completed, then re-fetches the list like Submit does.
func (c *Controller) Complete(ctx context.Context, number int) Outcome {
	c.mu.Lock()
	n := len(c.tasks)
	c.mu.Unlock()

	if number < 1 || number > n || number-1 > maxIndex {
		return Invalid
	}

	sess, h, ok := c.gate()
	if !ok {
		return Refused
	}

	c.update(func() { c.completeLoading = true })

	outcome := Submitted
	if err := c.store.CompleteTask(ctx, sess, h, uint16(number-1)); err != nil {
		c.transactionFailed(err)
		outcome = Failed
	}

	c.update(func() { c.completeLoading = false })
	c.Refresh(ctx)
	return outcome
}

// maxIndex is the largest task index the contract accepts (u16).
const maxIndex = 1<<16 - 1

func (c *Controller) gate() (session.Session, *contract.Handle, bool) {
	c.mu.Lock()
	sess, h := c.sess, c.handle
	c.mu.Unlock()

	if err := session.Check(sess, h); err != nil {
		c.log.Warn("mutation refused", zap.Error(err))
		c.notifier.Error(MsgWalletMissing)
		return sess, h, false
	}
	return sess, h, true
}

func (c *Controller) transactionFailed(err error) {
	var te *tasks.TransactionError
	if errors.As(err, &te) {
		c.log.Error("transaction failed", zap.String("method", te.Method), zap.Error(te.Err))
		return
	}
	c.log.Error("transaction failed", zap.Error(err))
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	list := make(tasks.Collection, len(c.tasks))
	copy(list, c.tasks)

	s := State{
		Tasks:           list,
		Loaded:          c.loaded,
		FetchLoading:    c.fetchLoading,
		CreateLoading:   c.createLoading,
		CompleteLoading: c.completeLoading,
	}
	if c.handle != nil {
		s.ContractResolved = true
		s.ContractAddress = c.handle.Address
	}
	return s
}

// update applies fn under the lock and then notifies listeners.
func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	s := c.snapshot()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(s)
	}
}
