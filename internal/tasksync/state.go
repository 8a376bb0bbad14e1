package tasksync

import "chaintask/internal/tasks"

// State is what the presentation layer renders.
type State struct {
	Tasks tasks.Collection

	// Loaded is set after a successful fetch and cleared by a failed one.
	// It tells "fetched and empty" apart from "nothing loaded".
	Loaded bool

	FetchLoading    bool
	CreateLoading   bool
	CompleteLoading bool

	ContractResolved bool
	ContractAddress  string
}

// AddressOrPlaceholder returns the contract address, or a placeholder while
// the contract is unresolved.
func (s State) AddressOrPlaceholder() string {
	if !s.ContractResolved {
		return AddressPlaceholder
	}
	return s.ContractAddress
}

// Busy reports whether any operation is in flight.
func (s State) Busy() bool {
	return s.FetchLoading || s.CreateLoading || s.CompleteLoading
}

// ShowLoading reports whether the task list should render as loading.
func (s State) ShowLoading() bool {
	return s.FetchLoading || !s.ContractResolved
}
