package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"chaintask/internal/tasks"
)

// formResetMsg clears the text input once a submission has settled.
type formResetMsg struct{}

// inputForm snapshots the text input for one submission. Reset is called
// from the controller goroutine, so it only posts a message to the program.
type inputForm struct {
	value string
	send  func(tea.Msg)
}

func (f *inputForm) Value() tasks.AddTaskDescription {
	return tasks.AddTaskDescription{Description: f.value}
}

func (f *inputForm) Reset() {
	f.send(formResetMsg{})
}
