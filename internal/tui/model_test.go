package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"chaintask/internal/contract"
	"chaintask/internal/session"
	"chaintask/internal/tasks"
	"chaintask/internal/tasksync"
	"chaintask/internal/testutil"
)

// harness wires a model to a controller over a fake connection. Messages the
// program would receive are queued and fed back by drain.
type harness struct {
	conn *testutil.FakeConnection
	ref  *contract.Ref

	mu    sync.Mutex
	queue []tea.Msg
}

func newHarness(t *testing.T, sess func(conn contract.Connection) session.Session, fake ...testutil.FakeTask) (*harness, model) {
	t.Helper()

	h := &harness{conn: testutil.NewFakeConnection(fake...), ref: contract.NewRef()}
	send := func(msg tea.Msg) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.queue = append(h.queue, msg)
	}

	n := NewNotifier()
	n.Attach(send)

	ctrl := tasksync.New(tasks.NewClient(h.conn, n), n, zap.NewNop())
	ctrl.SetSession(sess(h.conn))
	ctrl.Watch(h.ref)
	ctrl.Subscribe(func(s tasksync.State) { send(stateMsg(s)) })

	m := newModel(context.Background(), Options{
		Controller: ctrl,
		Notifier:   n,
		Resolve:    func(ctx context.Context) { h.ref.Set(ctx, testutil.TestHandle()) },
		Account:    "5Alice",
	}, send)
	return h, m
}

func (h *harness) drain(m model) model {
	for {
		h.mu.Lock()
		if len(h.queue) == 0 {
			h.mu.Unlock()
			return m
		}
		msg := h.queue[0]
		h.queue = h.queue[1:]
		h.mu.Unlock()

		next, _ := m.Update(msg)
		m = next.(model)
	}
}

// press feeds a key and runs the resulting command synchronously.
func (h *harness) press(m model, k tea.KeyMsg) model {
	next, cmd := m.Update(k)
	m = next.(model)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			if _, isOutcome := msg.(outcomeMsg); isOutcome {
				next, _ = m.Update(msg)
				m = next.(model)
			}
		}
	}
	return h.drain(m)
}

func connected(conn contract.Connection) session.Session {
	return session.Session{Account: "5Alice", Signer: session.NamedSigner("polkadot-js"), Conn: conn}
}

func readOnly(conn contract.Connection) session.Session {
	return session.Session{Conn: conn}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ResolveLoadsTasks(t *testing.T) {
	h, m := newHarness(t, connected, testutil.FakeTask{Description: "buy milk"})

	if !strings.Contains(m.View(), tasksync.AddressPlaceholder) {
		t.Error("expected address placeholder before resolve")
	}

	m.resolve(context.Background())
	m = h.drain(m)

	if len(m.state.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(m.state.Tasks))
	}
	view := m.View()
	if !strings.Contains(view, "buy milk") {
		t.Errorf("expected task in view, got:\n%s", view)
	}
	if !strings.Contains(view, testutil.TestHandle().Address) {
		t.Errorf("expected contract address in view, got:\n%s", view)
	}
}

func TestModel_SubmitAddsTaskAndResetsInput(t *testing.T) {
	h, m := newHarness(t, connected, testutil.FakeTask{Description: "buy milk"})
	m.resolve(context.Background())
	m = h.drain(m)

	m.input.SetValue("call mom")
	m = h.press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(m.state.Tasks) != 2 || m.state.Tasks[1].Description != "call mom" {
		t.Fatalf("expected new task after submit, got %+v", m.state.Tasks)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input reset, got %q", m.input.Value())
	}
	if m.state.CreateLoading {
		t.Error("expected create loading cleared")
	}
	if m.notice == nil || m.notice.kind != noticeSuccess || m.notice.text != contract.MsgTxSuccess {
		t.Errorf("expected success notice, got %+v", m.notice)
	}
}

func TestModel_SubmitWithoutWallet(t *testing.T) {
	h, m := newHarness(t, readOnly, testutil.FakeTask{Description: "buy milk"})
	m.resolve(context.Background())
	m = h.drain(m)

	m.input.SetValue("call mom")
	m = h.press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if h.conn.TransactCalls() != 0 {
		t.Errorf("expected no transaction, got %d", h.conn.TransactCalls())
	}
	if m.input.Value() != "call mom" {
		t.Errorf("expected input kept, got %q", m.input.Value())
	}
	if m.notice == nil || m.notice.kind != noticeError || m.notice.text != tasksync.MsgWalletMissing {
		t.Errorf("expected wallet notice, got %+v", m.notice)
	}
}

func TestModel_SubmitDisabledWhileCreating(t *testing.T) {
	_, m := newHarness(t, connected)
	m.state.CreateLoading = true

	if cmd := m.submit(); cmd != nil {
		t.Error("expected no command while a create is in flight")
	}
}

func TestModel_SubmitDisabledWhileFetching(t *testing.T) {
	h, m := newHarness(t, connected)
	m.state.FetchLoading = true
	m.input.SetValue("call mom")

	if cmd := m.submit(); cmd != nil {
		t.Error("expected no command while a fetch is in flight")
	}

	m = h.press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if h.conn.TransactCalls() != 0 {
		t.Errorf("expected no transaction, got %d", h.conn.TransactCalls())
	}
	if m.input.Value() != "call mom" {
		t.Errorf("expected input kept, got %q", m.input.Value())
	}
}

func TestModel_InputReadOnlyWhileCreating(t *testing.T) {
	_, m := newHarness(t, connected)
	m.input.SetValue("call")
	m.state.CreateLoading = true

	next, _ := m.Update(runes("x"))
	if got := next.(model).input.Value(); got != "call" {
		t.Errorf("expected input unchanged while creating, got %q", got)
	}

	m.state.CreateLoading = false
	next, _ = m.Update(runes("x"))
	if got := next.(model).input.Value(); got != "callx" {
		t.Errorf("expected typing to resume after create, got %q", got)
	}
}

func TestModel_CompleteSelectedTask(t *testing.T) {
	h, m := newHarness(t, connected,
		testutil.FakeTask{Description: "buy milk"},
		testutil.FakeTask{Description: "call mom"},
	)
	m.resolve(context.Background())
	m = h.drain(m)

	m = h.press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusList {
		t.Fatal("expected list focus after tab")
	}
	m = h.press(m, runes("j"))
	m = h.press(m, runes("x"))

	if !m.state.Tasks[1].Completed || m.state.Tasks[0].Completed {
		t.Errorf("expected only the second task completed, got %+v", m.state.Tasks)
	}
	if h.conn.LastTx().Method != tasks.MethodCompleteTask {
		t.Errorf("expected completeTask, got %q", h.conn.LastTx().Method)
	}
}

func TestModel_FetchFailureShowsNotice(t *testing.T) {
	h, m := newHarness(t, connected, testutil.FakeTask{Description: "buy milk"})
	h.conn.DecodeError = "Contract reverted"

	m.resolve(context.Background())
	m = h.drain(m)

	if len(m.state.Tasks) != 0 {
		t.Errorf("expected empty list, got %+v", m.state.Tasks)
	}
	if m.notice == nil || m.notice.text != tasksync.MsgFetchFailed {
		t.Errorf("expected fetch notice, got %+v", m.notice)
	}
	if !strings.Contains(m.View(), "No tasks yet") {
		t.Error("expected empty list view")
	}
}

func TestModel_QuitOnlyFromList(t *testing.T) {
	_, m := newHarness(t, connected)

	next, _ := m.Update(runes("q"))
	if got := next.(model).input.Value(); got != "q" {
		t.Errorf("q should type into the input while it has focus, got %q", got)
	}

	m.focus = focusList
	m.input.Blur()
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Error("expected quit message")
	}
}
