// Package tui is the interactive task list. It renders controller state
// and turns key presses into controller calls.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chaintask/internal/tasks"
	"chaintask/internal/tasksync"
)

// stateMsg delivers a controller snapshot.
type stateMsg tasksync.State

// outcomeMsg reports a finished mutation request.
type outcomeMsg struct {
	method  string
	outcome tasksync.Outcome
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type keyMap struct {
	Quit     key.Binding
	Switch   key.Binding
	Submit   key.Binding
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Refresh  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("q", "quit")),
		Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Complete: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "complete")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

type model struct {
	ctx     context.Context
	ctrl    *tasksync.Controller
	resolve func(context.Context)
	send    func(tea.Msg)
	account string

	state   tasksync.State
	cursor  int
	focus   focusArea
	input   textinput.Model
	spinner spinner.Model
	notice  *noticeMsg
	keys    keyMap
}

func newModel(ctx context.Context, opts Options, send func(tea.Msg)) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add task description..."
	ti.CharLimit = 280
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = accentStyle

	return model{
		ctx:     ctx,
		ctrl:    opts.Controller,
		resolve: opts.Resolve,
		send:    send,
		account: opts.Account,
		state:   opts.Controller.State(),
		focus:   focusInput,
		input:   ti,
		spinner: sp,
		keys:    newKeyMap(),
	}
}

// Init resolves the contract, which starts the first fetch.
func (m model) Init() tea.Cmd {
	ctx, resolve := m.ctx, m.resolve
	return tea.Batch(m.spinner.Tick, textinput.Blink, func() tea.Msg {
		resolve(ctx)
		return nil
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = tasksync.State(msg)
		m.clampCursor()
		return m, nil

	case noticeMsg:
		m.notice = &msg
		return m, nil

	case formResetMsg:
		m.input.SetValue("")
		return m, nil

	case outcomeMsg:
		if msg.outcome == tasksync.Invalid {
			m.notice = &noticeMsg{kind: noticeError, text: "No task selected"}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Switch) {
		if m.focus == focusInput {
			m.focus = focusList
			m.input.Blur()
			return m, nil
		}
		m.focus = focusInput
		return m, m.input.Focus()
	}

	if m.focus == focusInput {
		if key.Matches(msg, m.keys.Submit) {
			return m, m.submit()
		}
		if msg.String() == "esc" {
			m.focus = focusList
			m.input.Blur()
			return m, nil
		}
		// The input is read-only while a create is in flight.
		if m.state.CreateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Complete):
		return m, m.complete()
	case key.Matches(msg, m.keys.Refresh):
		ctrl, ctx := m.ctrl, m.ctx
		return m, func() tea.Msg {
			ctrl.Refresh(ctx)
			return nil
		}
	}
	return m, nil
}

// submit sends the input as a new task. The button is disabled while any
// operation is in flight.
func (m model) submit() tea.Cmd {
	if m.state.Busy() {
		return nil
	}
	form := &inputForm{value: m.input.Value(), send: m.send}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return outcomeMsg{method: tasks.MethodCreateTask, outcome: ctrl.Submit(ctx, form)}
	}
}

func (m model) complete() tea.Cmd {
	if m.state.CompleteLoading || len(m.state.Tasks) == 0 {
		return nil
	}
	if m.state.Tasks[m.cursor].Completed {
		return nil
	}
	number := m.cursor + 1
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return outcomeMsg{method: tasks.MethodCompleteTask, outcome: ctrl.Complete(ctx, number)}
	}
}

func (m *model) clampCursor() {
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = len(m.state.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(m.formView())
	b.WriteString("\n")
	if m.notice != nil {
		b.WriteString(noticeView(*m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab switch focus • enter add • space complete • r refresh • q quit"))
	return panelStyle.Render(b.String())
}

func (m model) headerView() string {
	done := 0
	for _, t := range m.state.Tasks {
		if t.Completed {
			done++
		}
	}
	title := fmt.Sprintf("%s   %s %d/%d",
		titleStyle.Render("Tasks"),
		successStyle.Render("✔"), done, len(m.state.Tasks),
	)

	account := m.account
	if account == "" {
		account = "not connected"
	}
	return title + "\n" +
		mutedStyle.Render("contract ") + accentStyle.Render(m.state.AddressOrPlaceholder()) + "\n" +
		mutedStyle.Render("account  ") + account
}

func (m model) listView() string {
	if m.state.ShowLoading() {
		return m.spinner.View() + " " + mutedStyle.Render("Loading tasks...") + "\n"
	}
	if len(m.state.Tasks) == 0 {
		return mutedStyle.Render("No tasks yet") + "\n"
	}

	var b strings.Builder
	for i, t := range m.state.Tasks {
		box := mutedStyle.Render(boxUnchecked)
		text := t.Description
		if strings.TrimSpace(text) == "" {
			text = mutedStyle.Render("(empty)")
		}
		if t.Completed {
			box = successStyle.Render(boxChecked)
			text = doneStyle.Render(text)
		}

		prefix := "  "
		if m.focus == focusList && i == m.cursor {
			prefix = selectedStyle.Render(">") + " "
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, box, text)
	}
	if m.state.CompleteLoading {
		b.WriteString(m.spinner.View() + " " + mutedStyle.Render("Completing task...") + "\n")
	}
	return b.String()
}

func (m model) formView() string {
	button := buttonStyle.Render("Add")
	switch {
	case m.state.CreateLoading:
		button = buttonDisabledStyle.Render(m.spinner.View() + " Adding")
	case m.state.Busy():
		button = buttonDisabledStyle.Render("Add")
	}
	return m.input.View() + "  " + button + "\n"
}

func noticeView(n noticeMsg) string {
	switch n.kind {
	case noticeError:
		return errorStyle.Render(n.text)
	case noticeSuccess:
		return successStyle.Render(n.text)
	}
	return mutedStyle.Render(n.text)
}
