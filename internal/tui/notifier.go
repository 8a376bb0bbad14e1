package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeKind classifies a notification for rendering.
type noticeKind int

const (
	noticeError noticeKind = iota
	noticeSuccess
	noticeLoading
)

// noticeMsg carries a user notification into the program.
type noticeMsg struct {
	kind noticeKind
	text string
}

// Notifier forwards notifications to a running program. Notifications sent
// before Attach are dropped.
type Notifier struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewNotifier creates a detached Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Attach routes notifications to send.
func (n *Notifier) Attach(send func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

func (n *Notifier) post(kind noticeKind, msg string) {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()
	if send != nil {
		send(noticeMsg{kind: kind, text: msg})
	}
}

func (n *Notifier) Error(msg string)   { n.post(noticeError, msg) }
func (n *Notifier) Success(msg string) { n.post(noticeSuccess, msg) }
func (n *Notifier) Loading(msg string) { n.post(noticeLoading, msg) }
